package device

import (
	"fmt"
	"iter"
	"strings"

	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// Row is one decoded table row.
type Row struct {
	// Index is the row suffix below the table field's OID.
	Index oid.OID
	Value any
}

// Key returns the index as reported by walks: the bare number for
// single-component indexes, the dotted form otherwise.
func (r Row) Key() any {
	if len(r.Index) == 1 {
		return r.Index[0]
	}
	return r.Index.String()
}

// Rows is an ordered set of table rows with lookup by index.
// Rows returned to callers are never modified afterwards.
type Rows struct {
	rows  []Row
	index map[string]int
}

func (r *Rows) add(index oid.OID, value any) {
	r.rows = append(r.rows, Row{Index: index, Value: value})
	r.index = nil
}

// Len returns the number of rows.
func (r *Rows) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rows)
}

// At returns the i-th row in agent order.
func (r *Rows) At(i int) Row { return r.rows[i] }

// Slice returns a copy of the rows in agent order.
func (r *Rows) Slice() []Row {
	if r == nil {
		return nil
	}
	return append([]Row(nil), r.rows...)
}

// Lookup returns the value of the row at index. The lookup table is built
// on first use.
func (r *Rows) Lookup(index oid.OID) (any, bool) {
	if r == nil {
		return nil, false
	}
	if r.index == nil {
		r.index = make(map[string]int, len(r.rows))
		for i, row := range r.rows {
			r.index[row.Index.String()] = i
		}
	}
	i, ok := r.index[index.String()]
	if !ok {
		return nil, false
	}
	return r.rows[i].Value, true
}

// All iterates index/value pairs in agent order.
func (r *Rows) All() iter.Seq2[oid.OID, any] {
	return func(yield func(oid.OID, any) bool) {
		if r == nil {
			return
		}
		for _, row := range r.rows {
			if !yield(row.Index, row.Value) {
				return
			}
		}
	}
}

// Map returns the rows keyed by Row.Key.
func (r *Rows) Map() map[any]any {
	out := make(map[any]any, r.Len())
	for _, row := range r.Slice() {
		out[row.Key()] = row.Value
	}
	return out
}

// String formats the rows as [index:value ...].
func (r *Rows) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, row := range r.Slice() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%v", row.Index, row.Value)
	}
	b.WriteByte(']')
	return b.String()
}
