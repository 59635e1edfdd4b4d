package device

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

// TableProxy is the lazily loaded value of a table field.
//
// Until loaded, Get fetches single rows with a targeted get. The first
// sequence operation (Load, Rows, Len, Contains, All, String) walks the
// column once; from then on every operation is served from memory.
// A failed load leaves the proxy unloaded.
type TableProxy struct {
	field   *schema.Field
	adapter adapter.Adapter
	loaded  bool
	rows    *Rows
}

func newTableProxy(f *schema.Field, a adapter.Adapter) *TableProxy {
	return &TableProxy{field: f, adapter: a}
}

// Field returns the table field.
func (t *TableProxy) Field() *schema.Field { return t.field }

// Loaded reports whether the column has been walked.
func (t *TableProxy) Loaded() bool { return t.loaded }

// Get returns the row at index. ok is false when the row does not exist.
func (t *TableProxy) Get(ctx context.Context, index any) (value any, ok bool, err error) {
	idx, err := ToIndex(index)
	if err != nil {
		return nil, false, err
	}

	if t.loaded {
		v, ok := t.rows.Lookup(idx)
		return v, ok, nil
	}

	raw, err := t.adapter.Get(ctx, t.field.OID().Concat(idx))
	if errors.Is(err, adapter.ErrNoSuchObject) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	v, err := t.field.Decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("row %s of %s: %w", idx, t.field.Name(), err)
	}
	return v, true, nil
}

// Load walks the column unless already loaded.
func (t *TableProxy) Load(ctx context.Context) error {
	if t.loaded {
		return nil
	}

	prefix := t.field.OID()
	rows := &Rows{}
	err := walk(ctx, t.adapter, prefix, func(o oid.OID, raw any) error {
		idx, _ := o.Suffix(prefix)
		v, err := t.field.Decode(raw)
		if err != nil {
			return fmt.Errorf("row %s of %s: %w", idx, t.field.Name(), err)
		}
		rows.add(idx, v)
		return nil
	})
	if err != nil {
		return err
	}

	t.rows = rows
	t.loaded = true
	return nil
}

// Rows returns the loaded rows.
func (t *TableProxy) Rows(ctx context.Context) (*Rows, error) {
	if err := t.Load(ctx); err != nil {
		return nil, err
	}
	return t.rows, nil
}

// Len returns the number of rows.
func (t *TableProxy) Len(ctx context.Context) (int, error) {
	if err := t.Load(ctx); err != nil {
		return 0, err
	}
	return t.rows.Len(), nil
}

// Contains reports whether a row exists at index.
func (t *TableProxy) Contains(ctx context.Context, index any) (bool, error) {
	idx, err := ToIndex(index)
	if err != nil {
		return false, err
	}
	if err := t.Load(ctx); err != nil {
		return false, err
	}
	_, ok := t.rows.Lookup(idx)
	return ok, nil
}

// All iterates the rows, loading the column first. A load failure is
// yielded as the only pair, with a nil index.
func (t *TableProxy) All(ctx context.Context) iter.Seq2[oid.OID, any] {
	return func(yield func(oid.OID, any) bool) {
		if err := t.Load(ctx); err != nil {
			yield(nil, err)
			return
		}
		for idx, v := range t.rows.All() {
			if !yield(idx, v) {
				return
			}
		}
	}
}

// String loads the column and formats it. It never issues a request once
// loaded; before that it uses a background context.
func (t *TableProxy) String() string {
	if err := t.Load(context.Background()); err != nil {
		return fmt.Sprintf("<%s: %v>", t.field.Name(), err)
	}
	return t.rows.String()
}
