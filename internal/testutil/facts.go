package testutil

import (
	"sync"

	"github.com/mindmatch/memoryledger/internal/model"
)

// FactRecorder captures published facts for assertions.
type FactRecorder struct {
	mu    sync.Mutex
	facts []model.Fact
}

// Notify implements facts.Subscriber
func (r *FactRecorder) Notify(fact model.Fact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.facts = append(r.facts, fact)
}

// Facts returns the facts captured so far, in emission order.
func (r *FactRecorder) Facts() []model.Fact {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Fact(nil), r.facts...)
}

// Types returns just the fact types, in emission order.
func (r *FactRecorder) Types() []model.FactType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]model.FactType, 0, len(r.facts))
	for _, f := range r.facts {
		types = append(types, f.Type)
	}
	return types
}

// Reset clears captured facts.
func (r *FactRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.facts = nil
}
