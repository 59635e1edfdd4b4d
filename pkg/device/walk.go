package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// walk issues get-next from prefix until the agent leaves the sub-tree or
// runs out of OIDs, calling visit for every OID under prefix.
func walk(ctx context.Context, a adapter.Adapter, prefix oid.OID, visit func(o oid.OID, raw any) error) error {
	cur := prefix
	for {
		next, raw, err := a.GetNext(ctx, cur)
		if errors.Is(err, adapter.ErrEndOfMibView) {
			return nil
		}
		if err != nil {
			return err
		}
		if !next.HasPrefix(prefix) {
			return nil
		}
		if next.Compare(cur) <= 0 {
			return fmt.Errorf("%w: %s after %s", ErrNonIncreasing, next, cur)
		}
		if err := visit(next, raw); err != nil {
			return err
		}
		cur = next
	}
}

// Entry is one named result of a group walk. Table fields carry *Rows.
type Entry struct {
	Name  string
	Value any
}
