package routing

import "sync"

// Error kinds the orchestrator classifies failures into.
const (
	ErrorKindValidation        = "validation"
	ErrorKindMissingDependency = "missing_dependency"
	ErrorKindSpecialist        = "specialist"
	ErrorKindInternal          = "internal"
)

// ErrorLog counts classified failures for the intelligence dashboard.
type ErrorLog struct {
	mu     sync.Mutex
	counts map[string]int
	total  int
}

// NewErrorLog creates an empty error log.
func NewErrorLog() *ErrorLog {
	return &ErrorLog{counts: make(map[string]int)}
}

// Record counts one failure of the given kind.
func (l *ErrorLog) Record(kind string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[kind]++
	l.total++
}

// Summary returns the dashboard view of failure counts by kind.
func (l *ErrorLog) Summary() map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	byKind := make(map[string]interface{}, len(l.counts))
	for kind, n := range l.counts {
		byKind[kind] = n
	}

	return map[string]interface{}{
		"total":   l.total,
		"by_kind": byKind,
	}
}
