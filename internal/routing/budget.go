package routing

import "sync"

// operationBudget tracks one operation's token accounting.
type operationBudget struct {
	Reserved int
	Consumed int
}

// TokenBudget tracks estimated versus consumed tokens per operation. It is
// an accounting ledger, not an enforcement mechanism: reservations come from
// route estimates and consumption from specialist execution reports.
type TokenBudget struct {
	mu         sync.Mutex
	operations map[string]*operationBudget
}

// NewTokenBudget creates an empty token budget ledger.
func NewTokenBudget() *TokenBudget {
	return &TokenBudget{operations: make(map[string]*operationBudget)}
}

// Reserve records the estimated token spend for an operation. Repeated
// reservations accumulate.
func (b *TokenBudget) Reserve(operationID string, tokens int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entry(operationID).Reserved += tokens
}

// Consume records actual token spend for an operation.
func (b *TokenBudget) Consume(operationID string, tokens int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entry(operationID).Consumed += tokens
}

func (b *TokenBudget) entry(operationID string) *operationBudget {
	e, ok := b.operations[operationID]
	if !ok {
		e = &operationBudget{}
		b.operations[operationID] = e
	}
	return e
}

// Summary returns the dashboard view of the ledger.
func (b *TokenBudget) Summary() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	totalReserved := 0
	totalConsumed := 0
	for _, e := range b.operations {
		totalReserved += e.Reserved
		totalConsumed += e.Consumed
	}

	return map[string]interface{}{
		"operations":      len(b.operations),
		"tokens_reserved": totalReserved,
		"tokens_consumed": totalConsumed,
	}
}
