package codec

import (
	"fmt"
	"sort"
)

// Enum maps the integer values of an enumerated INTEGER to names.
// Decoding an unknown number returns the number itself.
type Enum struct {
	names  map[int64]string
	values map[string]int64
}

// NewEnum creates an Enum codec from a number-to-name table.
func NewEnum(names map[int64]string) *Enum {
	e := &Enum{
		names:  make(map[int64]string, len(names)),
		values: make(map[string]int64, len(names)),
	}
	for n, name := range names {
		e.names[n] = name
		e.values[name] = n
	}
	return e
}

// Decode returns the name for a raw number.
func (e *Enum) Decode(raw any) (any, error) {
	n, err := toInt64(raw)
	if err != nil {
		return nil, decodeError("enum", raw, err)
	}
	if name, ok := e.names[n]; ok {
		return name, nil
	}
	return n, nil
}

// Encode accepts a name or a number.
func (e *Enum) Encode(value any) (any, error) {
	if s, ok := value.(string); ok {
		if n, ok := e.values[s]; ok {
			return int(n), nil
		}
	}
	n, err := toInt64(value)
	if err != nil {
		return nil, encodeError("enum", value, fmt.Errorf("not one of %v", e.Names()))
	}
	return int(n), nil
}

// Names returns the enumeration names ordered by value.
func (e *Enum) Names() []string {
	nums := make([]int64, 0, len(e.names))
	for n := range e.names {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })

	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = e.names[n]
	}
	return out
}
