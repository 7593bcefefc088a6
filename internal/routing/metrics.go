package routing

import "sync"

// agentStats holds per-agent route counters.
type agentStats struct {
	Routes    int `json:"routes"`
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// Metrics accumulates per-agent routing outcomes for the intelligence
// dashboard.
type Metrics struct {
	mu     sync.Mutex
	agents map[string]*agentStats
}

// NewMetrics creates an empty routing metrics accumulator.
func NewMetrics() *Metrics {
	return &Metrics{agents: make(map[string]*agentStats)}
}

// RecordRoute records one specialist dispatch and its outcome.
func (m *Metrics) RecordRoute(agentID string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats, ok := m.agents[agentID]
	if !ok {
		stats = &agentStats{}
		m.agents[agentID] = stats
	}
	stats.Routes++
	if success {
		stats.Successes++
	} else {
		stats.Failures++
	}
}

// Summary returns the dashboard view: total routes, overall success rate and
// per-agent counters.
func (m *Metrics) Summary() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	totalRoutes := 0
	totalSuccesses := 0
	perAgent := make(map[string]interface{}, len(m.agents))
	for id, stats := range m.agents {
		totalRoutes += stats.Routes
		totalSuccesses += stats.Successes
		perAgent[id] = map[string]interface{}{
			"routes":    stats.Routes,
			"successes": stats.Successes,
			"failures":  stats.Failures,
		}
	}

	successRate := 0.0
	if totalRoutes > 0 {
		successRate = float64(totalSuccesses) / float64(totalRoutes)
	}

	return map[string]interface{}{
		"total_routes": totalRoutes,
		"success_rate": successRate,
		"agents":       perAgent,
	}
}
