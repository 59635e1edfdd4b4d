// Package memory implements a simulated agent over an ordered in-memory
// tree. It backs tests, demos and the CLI's -simulate mode.
package memory

import (
	"context"
	"fmt"
	"os"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

type entry struct {
	oid   oid.OID
	value any
}

// Counts records how many operations an Adapter served.
type Counts struct {
	Get     int
	GetNext int
	Set     int
}

// Total returns the number of operations of any kind.
func (c Counts) Total() int { return c.Get + c.GetNext + c.Set }

// Adapter is an in-memory agent. It is safe for concurrent use.
type Adapter struct {
	mu      sync.RWMutex
	entries []entry // sorted by OID
	counts  Counts
	closed  bool

	// Writable allows Set to create OIDs that do not exist yet.
	Writable bool
}

// New creates an adapter holding values keyed by dotted OID.
func New(values map[string]any) (*Adapter, error) {
	a := &Adapter{}
	for k, v := range values {
		o, err := oid.Parse(k)
		if err != nil {
			return nil, err
		}
		a.put(o, v)
	}
	return a, nil
}

// MustNew is like New but panics on error.
func MustNew(values map[string]any) *Adapter {
	a, err := New(values)
	if err != nil {
		panic(err)
	}
	return a
}

// Fixture is the YAML form of a simulated agent.
type Fixture struct {
	// Values maps dotted OIDs to their values.
	Values map[string]any `yaml:"values"`
	// Writable lets Set create missing OIDs.
	Writable bool `yaml:"writable"`
}

// ParseFixture builds an adapter from YAML.
func ParseFixture(data []byte) (*Adapter, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	a, err := New(f.Values)
	if err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	a.Writable = f.Writable
	return a, nil
}

// LoadFixture builds an adapter from a YAML file.
func LoadFixture(path string) (*Adapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseFixture(data)
}

// Factory returns an adapter.Factory that hands out a for every host.
func Factory(a *Adapter) adapter.Factory {
	return func(string, adapter.Params) (adapter.Adapter, error) {
		return a, nil
	}
}

// search returns the position of the first entry not before o.
func (a *Adapter) search(o oid.OID) (int, bool) {
	i := sort.Search(len(a.entries), func(i int) bool {
		return a.entries[i].oid.Compare(o) >= 0
	})
	return i, i < len(a.entries) && a.entries[i].oid.Equal(o)
}

func (a *Adapter) put(o oid.OID, v any) {
	i, found := a.search(o)
	if found {
		a.entries[i].value = v
		return
	}
	a.entries = slices.Insert(a.entries, i, entry{oid: o.Clone(), value: v})
}

// Put stores v at o.
func (a *Adapter) Put(o oid.OID, v any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.put(o, v)
}

// Delete removes o, reporting whether it existed.
func (a *Adapter) Delete(o oid.OID) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, found := a.search(o)
	if found {
		a.entries = slices.Delete(a.entries, i, i+1)
	}
	return found
}

// Len returns the number of stored OIDs.
func (a *Adapter) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}

// Counts returns the operations served so far.
func (a *Adapter) Counts() Counts {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.counts
}

// ResetCounts zeroes the operation counters.
func (a *Adapter) ResetCounts() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.counts = Counts{}
}

// Get implements adapter.Adapter.
func (a *Adapter) Get(ctx context.Context, o oid.OID) (any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.check(ctx); err != nil {
		return nil, err
	}
	a.counts.Get++

	i, found := a.search(o)
	if !found {
		return nil, fmt.Errorf("%w: %s", adapter.ErrNoSuchObject, o)
	}
	return a.entries[i].value, nil
}

// GetNext implements adapter.Adapter.
func (a *Adapter) GetNext(ctx context.Context, o oid.OID) (oid.OID, any, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.check(ctx); err != nil {
		return nil, nil, err
	}
	a.counts.GetNext++

	i, found := a.search(o)
	if found {
		i++
	}
	if i >= len(a.entries) {
		return nil, nil, adapter.ErrEndOfMibView
	}
	e := a.entries[i]
	return e.oid.Clone(), e.value, nil
}

// Set implements adapter.Adapter.
func (a *Adapter) Set(ctx context.Context, o oid.OID, value any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.check(ctx); err != nil {
		return err
	}
	a.counts.Set++

	i, found := a.search(o)
	switch {
	case found:
		a.entries[i].value = value
	case a.Writable:
		a.put(o, value)
	default:
		return fmt.Errorf("%w: %s", adapter.ErrNoSuchObject, o)
	}
	return nil
}

// Close marks the adapter closed; further operations fail with
// adapter.ErrClosed.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

func (a *Adapter) check(ctx context.Context) error {
	if a.closed {
		return adapter.ErrClosed
	}
	return ctx.Err()
}

var _ adapter.Adapter = (*Adapter)(nil)
