package application

import "sync/atomic"

const DefaultCallCeiling = 10000

// CallBudget caps the number of requests served over the process lifetime.
// Once used reaches the ceiling the budget stays closed until restart.
type CallBudget struct {
	ceiling int64
	used    atomic.Int64
}

type BudgetOption func(*CallBudget)

// WithUsed starts the counter at n instead of zero.
func WithUsed(n int64) BudgetOption { return func(b *CallBudget) { b.used.Store(n) } }

func NewCallBudget(ceiling int64, opts ...BudgetOption) *CallBudget {
	if ceiling <= 0 {
		ceiling = DefaultCallCeiling
	}
	b := &CallBudget{ceiling: ceiling}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Allow counts one request and reports whether it may be forwarded.
// Rejected requests are not counted.
func (b *CallBudget) Allow() bool {
	for {
		n := b.used.Load()
		if n >= b.ceiling {
			return false
		}
		if b.used.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (b *CallBudget) Closed() bool   { return b.used.Load() >= b.ceiling }
func (b *CallBudget) Used() int64    { return b.used.Load() }
func (b *CallBudget) Ceiling() int64 { return b.ceiling }

func (b *CallBudget) Remaining() int64 {
	r := b.ceiling - b.used.Load()
	if r < 0 {
		return 0
	}
	return r
}
