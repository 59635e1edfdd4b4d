package schema

import (
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Registry holds the resolved schema of every registered class.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
	schemas map[string]*Schema
	mro     map[string][]string
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string]*Class),
		schemas: make(map[string]*Schema),
		mro:     make(map[string][]string),
	}
}

// Register resolves c against its already registered parents and stores
// the result.
func (r *Registry) Register(c *Class) (*Schema, error) {
	if c == nil || c.Name == "" {
		return nil, fmt.Errorf("%w: class without name", ErrMalformedDeclaration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.classes[c.Name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateClass, c.Name)
	}

	mro, err := r.linearize(c)
	if err != nil {
		return nil, err
	}

	chain := make([]*Class, 0, len(mro))
	for i := len(mro) - 1; i > 0; i-- {
		chain = append(chain, r.classes[mro[i]])
	}
	chain = append(chain, c)

	s, err := Build(chain...)
	if err != nil {
		return nil, fmt.Errorf("building class %s: %w", c.Name, err)
	}

	r.classes[c.Name] = c
	r.schemas[c.Name] = s
	r.mro[c.Name] = mro
	r.order = append(r.order, c.Name)
	return s, nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(c *Class) *Schema {
	s, err := r.Register(c)
	if err != nil {
		panic(err)
	}
	return s
}

// Schema returns the resolved schema of the named class.
func (r *Registry) Schema(name string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	return s, nil
}

// Names returns the registered class names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Schemas returns all resolved schemas sorted by class name.
func (r *Registry) Schemas() []*Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Schema, 0, len(r.schemas))
	for _, s := range r.schemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Linearization returns the method-resolution order of the named class,
// most-derived first.
func (r *Registry) Linearization(name string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mro, ok := r.mro[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, name)
	}
	return slices.Clone(mro), nil
}

// linearize computes the C3 linearization of c. Caller holds r.mu.
func (r *Registry) linearize(c *Class) ([]string, error) {
	seqs := make([][]string, 0, len(c.Parents)+1)
	for _, p := range c.Parents {
		if p == c.Name {
			return nil, fmt.Errorf("%w: %s lists itself as parent", ErrInconsistentHierarchy, c.Name)
		}
		mro, ok := r.mro[p]
		if !ok {
			return nil, fmt.Errorf("%w: %s (parent of %s)", ErrUnknownParent, p, c.Name)
		}
		seqs = append(seqs, slices.Clone(mro))
	}
	seqs = append(seqs, slices.Clone(c.Parents))

	out := []string{c.Name}
	for {
		seqs = slices.DeleteFunc(seqs, func(s []string) bool { return len(s) == 0 })
		if len(seqs) == 0 {
			return out, nil
		}

		head := ""
		for _, s := range seqs {
			if !inTail(seqs, s[0]) {
				head = s[0]
				break
			}
		}
		if head == "" {
			return nil, fmt.Errorf("%w: cannot order parents of %s", ErrInconsistentHierarchy, c.Name)
		}

		out = append(out, head)
		for i, s := range seqs {
			if s[0] == head {
				seqs[i] = s[1:]
			}
		}
	}
}

func inTail(seqs [][]string, name string) bool {
	for _, s := range seqs {
		if slices.Contains(s[1:], name) {
			return true
		}
	}
	return false
}
