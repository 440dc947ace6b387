package people

import (
	"github.com/agentstation/credits/pkg/errors"
)

// Registry is an insertion-ordered set of persons keyed by primary email.
// Order carries no meaning beyond being stable between load and save.
type Registry struct {
	persons []Person
	index   map[string]int
}

// NewRegistry creates a registry holding copies of persons, in order.
// Duplicate primary emails are rejected.
func NewRegistry(persons ...Person) (*Registry, error) {
	r := &Registry{
		persons: make([]Person, 0, len(persons)),
		index:   make(map[string]int, len(persons)),
	}
	for _, p := range persons {
		if err := r.Add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a copy of p. It fails if p's primary email is already present.
func (r *Registry) Add(p Person) error {
	if err := p.Validate(); err != nil {
		return err
	}
	key := EmailKey(p.Email)
	if _, exists := r.index[key]; exists {
		return &errors.ValidationError{
			Field:   "email",
			Value:   p.Email,
			Message: "already exists",
		}
	}
	r.index[key] = len(r.persons)
	r.persons = append(r.persons, p.Clone())
	return nil
}

// Get returns a copy of the person whose primary email is email.
func (r *Registry) Get(email string) (Person, bool) {
	if r == nil {
		return Person{}, false
	}
	i, ok := r.index[EmailKey(email)]
	if !ok {
		return Person{}, false
	}
	return r.persons[i].Clone(), true
}

// Len returns the number of persons.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.persons)
}

// List returns deep copies of all persons in insertion order.
func (r *Registry) List() []Person {
	if r == nil {
		return nil
	}
	out := make([]Person, len(r.persons))
	for i, p := range r.persons {
		out[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	c, _ := NewRegistry(r.List()...)
	return c
}
