package adapter

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Params are adapter connection parameters (community, version, port, ...).
type Params map[string]any

// Merge returns a new Params holding p overlaid with each of overrides in
// order; later values win.
func (p Params) Merge(overrides ...Params) Params {
	out := maps.Clone(p)
	if out == nil {
		out = make(Params)
	}
	for _, o := range overrides {
		maps.Copy(out, o)
	}
	return out
}

// String returns the parameter key as a string, or def when absent.
func (p Params) String(key, def string) (string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def, fmt.Errorf("param %s: %w", key, err)
	}
	return s, nil
}

// Int returns the parameter key as an int, or def when absent.
func (p Params) Int(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	if s, ok := v.(string); ok {
		// Decimal only; "0161" is port 161.
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def, fmt.Errorf("param %s: %w", key, err)
		}
		return n, nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def, fmt.Errorf("param %s: %w", key, err)
	}
	return n, nil
}

// Duration returns the parameter key as a duration, or def when absent.
// Bare numbers are seconds; strings use time.ParseDuration syntax.
func (p Params) Duration(key string, def time.Duration) (time.Duration, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case time.Duration:
		return n, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		secs, err := cast.ToFloat64E(n)
		if err != nil {
			return def, fmt.Errorf("param %s: %w", key, err)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		return def, fmt.Errorf("param %s: %w", key, err)
	}
	return d, nil
}
