// Package codec converts raw protocol values to and from application values.
//
// Every schema field carries a Codec. The device layer never interprets raw
// values itself: whatever the adapter returns is handed to Decode, and
// whatever the application writes is handed to Encode before it reaches the
// adapter.
//
// Built-in codecs are registered by name so schemas loaded from YAML can
// refer to them:
//
//	raw, string, integer, unsigned, counter, gauge, truthvalue,
//	timeticks, oid, ipaddress, macaddress
package codec

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Codec errors.
var (
	ErrUnknownCodec = errors.New("unknown codec")
	ErrDecode       = errors.New("cannot decode value")
	ErrEncode       = errors.New("cannot encode value")
)

// Codec converts one field's values.
type Codec interface {
	// Decode turns a raw protocol value into an application value.
	Decode(raw any) (any, error)

	// Encode turns an application value into a raw protocol value.
	Encode(value any) (any, error)
}

// Func adapts a pair of functions to the Codec interface.
// A nil function passes the value through unchanged.
type Func struct {
	DecodeFunc func(raw any) (any, error)
	EncodeFunc func(value any) (any, error)
}

// Decode calls DecodeFunc.
func (f Func) Decode(raw any) (any, error) {
	if f.DecodeFunc == nil {
		return raw, nil
	}
	return f.DecodeFunc(raw)
}

// Encode calls EncodeFunc.
func (f Func) Encode(value any) (any, error) {
	if f.EncodeFunc == nil {
		return value, nil
	}
	return f.EncodeFunc(value)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Codec{}
)

// Register makes a codec available under name, replacing any previous one.
func Register(name string, c Codec) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = c
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NameOf returns the registered name of a built-in codec, "enum" for an
// Enum and "" for anything else. Aliases report their canonical name.
func NameOf(c Codec) string {
	switch x := c.(type) {
	case stringCodec:
		return "string"
	case integerCodec:
		return "integer"
	case unsignedCodec:
		return "unsigned"
	case truthValueCodec:
		return "truthvalue"
	case timeTicksCodec:
		return "timeticks"
	case objectIDCodec:
		return "oid"
	case ipAddressCodec:
		return "ipaddress"
	case macAddressCodec:
		return "macaddress"
	case *Enum:
		return "enum"
	case Func:
		if x.DecodeFunc == nil && x.EncodeFunc == nil {
			return "raw"
		}
	}
	return ""
}

func decodeError(name string, raw any, err error) error {
	return fmt.Errorf("%w as %s: %T(%v): %v", ErrDecode, name, raw, raw, err)
}

func encodeError(name string, value any, err error) error {
	return fmt.Errorf("%w as %s: %T(%v): %v", ErrEncode, name, value, value, err)
}
