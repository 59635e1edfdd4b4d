package schema

import (
	"github.com/snmp-orm/snmp-orm-go/pkg/codec"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// Field declares one attribute. A scalar field's OID addresses a single
// instance; a table field's OID is the prefix of one row per index.
// Fields are immutable once created.
type Field struct {
	name        string
	oid         oid.OID
	codec       codec.Codec
	table       bool
	description string
}

// NewField declares a scalar field. A nil codec passes raw values through.
func NewField(name string, o oid.OID, c codec.Codec) *Field {
	if c == nil {
		c = codec.Raw
	}
	return &Field{name: name, oid: o.Clone(), codec: c}
}

// NewTableField declares a table field whose rows live under prefix.
func NewTableField(name string, prefix oid.OID, c codec.Codec) *Field {
	f := NewField(name, prefix, c)
	f.table = true
	return f
}

// WithDescription returns a copy of f carrying a human-readable description.
func (f *Field) WithDescription(desc string) *Field {
	cp := *f
	cp.oid = f.oid.Clone()
	cp.description = desc
	return &cp
}

// Name returns the attribute name.
func (f *Field) Name() string { return f.name }

// OID returns a copy of the field's identifier (the row prefix for tables).
func (f *Field) OID() oid.OID { return f.oid.Clone() }

// Codec returns the value codec.
func (f *Field) Codec() codec.Codec { return f.codec }

// IsTable reports whether the field is an indexed table column.
func (f *Field) IsTable() bool { return f.table }

// Description returns the field description, if any.
func (f *Field) Description() string { return f.description }

// Decode converts a raw protocol value with the field's codec.
func (f *Field) Decode(raw any) (any, error) {
	return f.codec.Decode(raw)
}

// Encode converts an application value with the field's codec.
func (f *Field) Encode(value any) (any, error) {
	return f.codec.Encode(value)
}

// Kind returns "table" or "scalar".
func (f *Field) Kind() string {
	if f.table {
		return "table"
	}
	return "scalar"
}
