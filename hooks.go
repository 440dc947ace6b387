package credits

import (
	"reflect"
	"sync"

	"github.com/agentstation/credits/pkg/people"
)

// Hook function types for registry events
type (
	// PersonAddedHook is called when reconciliation creates a person
	PersonAddedHook func(person people.Person)

	// PersonUpdatedHook is called when a person's record changes
	PersonUpdatedHook func(old, new people.Person)
)

// hooks manages event callbacks for registry changes
type hooks struct {
	mu              sync.RWMutex
	onPersonAdded   []PersonAddedHook
	onPersonUpdated []PersonUpdatedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnPersonAdded registers a callback for when persons are added
func (h *hooks) OnPersonAdded(fn PersonAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPersonAdded = append(h.onPersonAdded, fn)
}

// OnPersonUpdated registers a callback for when persons are updated
func (h *hooks) OnPersonUpdated(fn PersonUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPersonUpdated = append(h.onPersonUpdated, fn)
}

// triggerRegistryUpdate compares registries and fires the matching hooks.
// Persons are never removed by reconciliation, so there is no removal hook.
func (h *hooks) triggerRegistryUpdate(oldRegistry, newRegistry *people.Registry) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onPersonAdded) == 0 && len(h.onPersonUpdated) == 0 {
		return
	}

	for _, p := range newRegistry.List() {
		old, exists := oldRegistry.Get(p.Email)
		if !exists {
			for _, hook := range h.onPersonAdded {
				hook(p)
			}
			continue
		}
		if !reflect.DeepEqual(old, p) {
			for _, hook := range h.onPersonUpdated {
				hook(old, p)
			}
		}
	}
}
