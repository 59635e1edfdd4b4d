package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

func field(name, o string) *Field {
	return NewField(name, oid.MustParse(o), nil)
}

func TestRegistryDiamond(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&Class{Name: "A", Fields: []*Field{field("x", "1.1"), field("y", "1.2")}})
	r.MustRegister(&Class{Name: "B", Parents: []string{"A"}, Fields: []*Field{field("x", "2.1")}})
	r.MustRegister(&Class{Name: "C", Parents: []string{"A"}, Fields: []*Field{field("x", "3.1"), field("y", "3.2")}})

	s, err := r.Register(&Class{Name: "D", Parents: []string{"B", "C"}})
	require.NoError(t, err)

	mro, err := r.Linearization("D")
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "B", "C", "A"}, mro)
	assert.Equal(t, []string{"A", "C", "B", "D"}, s.Lineage())

	x, _ := s.Field("x")
	assert.Equal(t, oid.MustParse("2.1"), x.OID(), "B precedes C")
	y, _ := s.Field("y")
	assert.Equal(t, oid.MustParse("3.2"), y.OID(), "C overrides A")

	assert.Equal(t, []string{"A", "B", "C", "D"}, r.Names())
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(&Class{Name: "A"})
	r.MustRegister(&Class{Name: "B", Parents: []string{"A"}})

	_, err := r.Register(&Class{Name: "A"})
	assert.True(t, errors.Is(err, ErrDuplicateClass), "duplicate: %v", err)

	_, err = r.Register(&Class{Name: "X", Parents: []string{"Missing"}})
	assert.True(t, errors.Is(err, ErrUnknownParent), "unknown parent: %v", err)

	_, err = r.Register(&Class{Name: "Y", Parents: []string{"A", "B"}})
	assert.True(t, errors.Is(err, ErrInconsistentHierarchy), "inconsistent: %v", err)

	_, err = r.Register(&Class{Name: "Z", Parents: []string{"Z"}})
	assert.True(t, errors.Is(err, ErrInconsistentHierarchy), "self parent: %v", err)

	_, err = r.Schema("nope")
	assert.True(t, errors.Is(err, ErrUnknownClass))

	_, err = r.Register(&Class{Name: "Bad", Params: map[string]any{"a b": 1}})
	assert.True(t, errors.Is(err, ErrMalformedDeclaration))
	_, err = r.Schema("Bad")
	assert.Error(t, err, "failed registration must not be stored")
}

func TestRegistryMustRegisterPanics(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() { r.MustRegister(&Class{}) })
}
