package codec

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// toInt64 converts v to an int64. Strings are read as decimal only; cast
// would accept 0x and leading-zero octal forms.
func toInt64(v any) (int64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return cast.ToInt64E(v)
}

// toUint64 is the unsigned counterpart of toInt64.
func toUint64(v any) (uint64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	}
	return cast.ToUint64E(v)
}
