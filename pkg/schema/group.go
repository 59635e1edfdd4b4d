package schema

import (
	"context"
	"maps"
	"slices"

	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// GroupKind distinguishes tree-walked groups from locally computed ones.
type GroupKind uint8

const (
	// GroupWalked groups are read by walking the sub-tree under their prefix.
	GroupWalked GroupKind = iota

	// GroupComputed groups have no prefix; their values come from Properties.
	GroupComputed
)

// String returns the kind name.
func (k GroupKind) String() string {
	switch k {
	case GroupWalked:
		return "walked"
	case GroupComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// Scope is what a computed property can read from: the device it is
// evaluated against.
type Scope interface {
	GetAttribute(ctx context.Context, name string) (any, error)
}

// Property is a locally computed value of a computed group.
type Property struct {
	Name    string
	Compute func(ctx context.Context, s Scope) (any, error)
}

// Group is a named, ordered set of fields sharing an OID prefix.
type Group struct {
	name        string
	kind        GroupKind
	prefix      oid.OID
	fields      []*Field
	byName      map[string]*Field
	properties  []Property
	description string

	// nils counts nil fields passed to NewGroup; Build rejects them.
	nils int
}

// NewGroup declares a walked group. Field order is preserved.
func NewGroup(name string, prefix oid.OID, fields ...*Field) *Group {
	g := &Group{
		name:   name,
		kind:   GroupWalked,
		prefix: prefix.Clone(),
		fields: make([]*Field, 0, len(fields)),
		byName: make(map[string]*Field, len(fields)),
	}
	for _, f := range fields {
		g.add(f)
	}
	return g
}

// NewComputedGroup declares a group without a prefix whose values are
// produced by props in declaration order.
func NewComputedGroup(name string, props ...Property) *Group {
	return &Group{
		name:       name,
		kind:       GroupComputed,
		byName:     map[string]*Field{},
		properties: append([]Property(nil), props...),
	}
}

// add appends f, replacing an earlier field of the same name in place.
func (g *Group) add(f *Field) {
	if f == nil {
		g.nils++
		return
	}
	if _, exists := g.byName[f.name]; exists {
		for i, old := range g.fields {
			if old.name == f.name {
				g.fields[i] = f
			}
		}
	} else {
		g.fields = append(g.fields, f)
	}
	g.byName[f.name] = f
}

// WithDescription returns a copy of g carrying a human-readable description.
func (g *Group) WithDescription(desc string) *Group {
	cp := *g
	cp.prefix = g.prefix.Clone()
	cp.fields = slices.Clone(g.fields)
	cp.byName = maps.Clone(g.byName)
	cp.properties = slices.Clone(g.properties)
	cp.description = desc
	return &cp
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Kind returns the group kind.
func (g *Group) Kind() GroupKind { return g.kind }

// Prefix returns a copy of the group prefix (nil for computed groups).
func (g *Group) Prefix() oid.OID { return g.prefix.Clone() }

// Description returns the group description, if any.
func (g *Group) Description() string { return g.description }

// Field returns the field declared under name.
func (g *Group) Field(name string) (*Field, bool) {
	f, ok := g.byName[name]
	return f, ok
}

// Fields returns the fields in declaration order.
func (g *Group) Fields() []*Field {
	return append([]*Field(nil), g.fields...)
}

// FieldNames returns the field names in declaration order.
func (g *Group) FieldNames() []string {
	names := make([]string, len(g.fields))
	for i, f := range g.fields {
		names[i] = f.name
	}
	return names
}

// Properties returns the computed properties in declaration order.
func (g *Group) Properties() []Property {
	return append([]Property(nil), g.properties...)
}
