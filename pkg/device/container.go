package device

import (
	"context"

	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

// Container exposes one group of a device. Containers are created by New
// and share the device's adapter.
type Container struct {
	device *Device
	group  *schema.Group
}

// Name returns the group name.
func (c *Container) Name() string { return c.group.Name() }

// Group returns the group declaration.
func (c *Container) Group() *schema.Group { return c.group }

// Device returns the owning device.
func (c *Container) Device() *Device { return c.device }

func (c *Container) scope() string {
	return c.device.schema.Name() + "." + c.group.Name()
}

// GetAttribute reads a field (or computed property) of the group.
func (c *Container) GetAttribute(ctx context.Context, name string) (any, error) {
	if f, ok := c.group.Field(name); ok {
		return getField(ctx, c.device.adapter, c.scope(), f)
	}
	for _, p := range c.group.Properties() {
		if p.Name == name {
			return c.compute(ctx, p)
		}
	}
	return nil, notFound("get", c.scope(), name)
}

// SetAttribute writes a field of the group.
func (c *Container) SetAttribute(ctx context.Context, name string, value any) error {
	if f, ok := c.group.Field(name); ok {
		return setField(ctx, c.device.adapter, c.scope(), f, value)
	}
	for _, p := range c.group.Properties() {
		if p.Name == name {
			return &AttributeError{Op: "set", Scope: c.scope(), Name: name, Err: ErrUnsupported}
		}
	}
	return notFound("set", c.scope(), name)
}

func (c *Container) compute(ctx context.Context, p schema.Property) (any, error) {
	if p.Compute == nil {
		return nil, nil
	}
	v, err := p.Compute(ctx, c.device)
	if err != nil {
		return nil, &AttributeError{Op: "get", Scope: c.scope(), Name: p.Name, Err: err}
	}
	return v, nil
}

// Walk reads the whole group.
//
// Walked groups issue get-next from the prefix until the agent leaves it.
// OIDs equal to a scalar field yield that field; OIDs below a table field
// become its rows. Scalars come first in agent order, followed by one
// *Rows entry per table in order of first encounter. Unknown OIDs are
// skipped. Computed groups evaluate their properties in declaration order.
//
// Any error aborts the walk; no partial result is returned.
func (c *Container) Walk(ctx context.Context) ([]Entry, error) {
	if c.group.Kind() == schema.GroupComputed {
		return c.walkComputed(ctx)
	}

	scalars := make(map[string]*schema.Field)
	var tables []*schema.Field
	for _, f := range c.group.Fields() {
		if f.IsTable() {
			tables = append(tables, f)
		} else {
			scalars[f.OID().String()] = f
		}
	}

	var entries []Entry
	rows := make(map[string]*Rows)
	var order []string

	err := walk(ctx, c.device.adapter, c.group.Prefix(), func(o oid.OID, raw any) error {
		if f, ok := scalars[o.String()]; ok {
			v, err := f.Decode(raw)
			if err != nil {
				return &AttributeError{Op: "get", Scope: c.scope(), Name: f.Name(), Err: err}
			}
			entries = append(entries, Entry{Name: f.Name(), Value: v})
			return nil
		}

		f, idx := matchTable(tables, o)
		if f == nil {
			return nil
		}
		v, err := f.Decode(raw)
		if err != nil {
			return &AttributeError{Op: "get", Scope: c.scope(), Name: f.Name(), Err: err}
		}
		r, ok := rows[f.Name()]
		if !ok {
			r = &Rows{}
			rows[f.Name()] = r
			order = append(order, f.Name())
		}
		r.add(idx, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, name := range order {
		entries = append(entries, Entry{Name: name, Value: rows[name]})
	}
	return entries, nil
}

// matchTable returns the table field with the longest OID that is a proper
// prefix of o, and the row index.
func matchTable(tables []*schema.Field, o oid.OID) (*schema.Field, oid.OID) {
	var best *schema.Field
	var index oid.OID
	for _, f := range tables {
		idx, ok := o.Suffix(f.OID())
		if ok && (best == nil || len(idx) < len(index)) {
			best, index = f, idx
		}
	}
	return best, index
}

func (c *Container) walkComputed(ctx context.Context) ([]Entry, error) {
	props := c.group.Properties()
	entries := make([]Entry, 0, len(props))
	for _, p := range props {
		v, err := c.compute(ctx, p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Name: p.Name, Value: v})
	}
	return entries, nil
}
