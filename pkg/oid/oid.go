// Package oid implements SNMP object identifiers: ordered sequences of
// non-negative integers addressing one node of a device's management tree.
//
// An OID is written in dotted form, e.g. "1.3.6.1.2.1.1.4.0". A leading dot
// (as returned by most agents) is accepted by Parse and never produced by
// String.
package oid

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// OID errors.
var (
	ErrEmpty   = errors.New("empty object identifier")
	ErrInvalid = errors.New("invalid object identifier")
)

// OID is an object identifier.
type OID []uint32

// Parse parses a dotted OID string.
func Parse(s string) (OID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, ErrEmpty
	}

	parts := strings.Split(s, ".")
	o := make(OID, len(parts))
	for i, p := range parts {
		arc, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: arc %d", ErrInvalid, s, i)
		}
		o[i] = uint32(arc)
	}
	return o, nil
}

// MustParse is like Parse but panics on error.
// Intended for package-level declarations.
func MustParse(s string) OID {
	o, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return o
}

// String returns the dotted form.
func (o OID) String() string {
	if len(o) == 0 {
		return ""
	}

	var b strings.Builder
	for i, arc := range o {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.FormatUint(uint64(arc), 10))
	}
	return b.String()
}

// Clone returns a copy that shares no storage with o.
func (o OID) Clone() OID {
	if o == nil {
		return nil
	}
	return slices.Clone(o)
}

// Equal reports whether o and other have the same arcs.
func (o OID) Equal(other OID) bool {
	return slices.Equal(o, other)
}

// Compare orders OIDs lexicographically by arc, the order used by get-next.
func (o OID) Compare(other OID) int {
	return slices.Compare(o, other)
}

// HasPrefix reports whether prefix is a (not necessarily proper) prefix of o.
func (o OID) HasPrefix(prefix OID) bool {
	return len(o) >= len(prefix) && slices.Equal(o[:len(prefix)], prefix)
}

// Suffix returns the arcs of o that follow prefix.
// ok is false when prefix is not a proper prefix of o.
func (o OID) Suffix(prefix OID) (suffix OID, ok bool) {
	if len(o) <= len(prefix) || !o.HasPrefix(prefix) {
		return nil, false
	}
	return o[len(prefix):].Clone(), true
}

// Append returns a new OID made of o followed by arcs.
func (o OID) Append(arcs ...uint32) OID {
	out := make(OID, 0, len(o)+len(arcs))
	out = append(out, o...)
	return append(out, arcs...)
}

// Concat returns a new OID made of o followed by other.
func (o OID) Concat(other OID) OID {
	return o.Append(other...)
}
