package checks

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[ID]Evaluator)
	mu       sync.RWMutex
)

func Register(e Evaluator) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[e.ID()]; exists {
		panic(fmt.Sprintf("evaluator %s already registered", e.ID()))
	}
	registry[e.ID()] = e
}

// Lookup returns the evaluator for a check id. A catalog entry with no
// registered evaluator is reported as skipped by the engine, not as an
// error.
func Lookup(id ID) (Evaluator, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[id]
	return e, ok
}

// Registered returns all registered check ids in stable order.
func Registered() []ID {
	mu.RLock()
	defer mu.RUnlock()
	ids := make([]ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
