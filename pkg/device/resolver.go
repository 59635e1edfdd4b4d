package device

import (
	"context"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

// Resolver reads and writes attributes by name.
//
// Reading a scalar field issues one get and returns the decoded value.
// Reading a table field returns a *TableProxy without any request.
// Writing a scalar encodes the value and issues one set; writing a table
// field fails with ErrUnsupported.
type Resolver interface {
	GetAttribute(ctx context.Context, name string) (any, error)
	SetAttribute(ctx context.Context, name string, value any) error
}

var (
	_ Resolver = (*Device)(nil)
	_ Resolver = (*Container)(nil)
)

func getField(ctx context.Context, a adapter.Adapter, scope string, f *schema.Field) (any, error) {
	if f.IsTable() {
		return newTableProxy(f, a), nil
	}
	raw, err := a.Get(ctx, f.OID())
	if err != nil {
		return nil, err
	}
	v, err := f.Decode(raw)
	if err != nil {
		return nil, &AttributeError{Op: "get", Scope: scope, Name: f.Name(), Err: err}
	}
	return v, nil
}

func setField(ctx context.Context, a adapter.Adapter, scope string, f *schema.Field, value any) error {
	if f.IsTable() {
		return &AttributeError{Op: "set", Scope: scope, Name: f.Name(), Err: ErrUnsupported}
	}
	raw, err := f.Encode(value)
	if err != nil {
		return &AttributeError{Op: "set", Scope: scope, Name: f.Name(), Err: err}
	}
	return a.Set(ctx, f.OID(), raw)
}

func notFound(op, scope, name string) error {
	return &AttributeError{Op: op, Scope: scope, Name: name, Err: ErrAttributeNotFound}
}
