package device

import (
	"fmt"
	"math"

	"github.com/spf13/cast"

	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// ToIndex converts a table index argument to the row suffix it denotes.
// Integers denote a single-component index, strings a dotted index, and
// OIDs or integer slices are taken as they are.
func ToIndex(v any) (oid.OID, error) {
	switch x := v.(type) {
	case oid.OID:
		if len(x) == 0 {
			return nil, oid.ErrEmpty
		}
		return x.Clone(), nil
	case []uint32:
		return ToIndex(oid.OID(x))
	case []int:
		out := make(oid.OID, len(x))
		for i, n := range x {
			arc, err := cast.ToUint32E(n)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: index arc %d", oid.ErrInvalid, n)
			}
			out[i] = arc
		}
		return ToIndex(out)
	case string:
		return oid.Parse(x)
	case nil:
		return nil, oid.ErrEmpty
	case bool:
		return nil, fmt.Errorf("%w: index %v of type bool", oid.ErrInvalid, x)
	case float32:
		return ToIndex(float64(x))
	case float64:
		if x != math.Trunc(x) {
			return nil, fmt.Errorf("%w: index %v is not integral", oid.ErrInvalid, x)
		}
	}

	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil, fmt.Errorf("%w: index %v of type %T", oid.ErrInvalid, v, v)
	}
	if n < 0 || n > 1<<32-1 {
		return nil, fmt.Errorf("%w: index %d out of range", oid.ErrInvalid, n)
	}
	return oid.OID{uint32(n)}, nil
}
