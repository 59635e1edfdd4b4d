// Package adapter defines the protocol collaborator a device talks to:
// get, get-next and set of single object identifiers.
//
// Adapters own the wire protocol, connections, timeouts and retries.
// Values crossing the interface are opaque protocol payloads; field codecs
// give them meaning.
package adapter

import (
	"context"
	"errors"

	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// Protocol errors reported by adapters.
var (
	// ErrNoSuchObject is returned by Get when the agent holds no value at
	// the requested OID (noSuchObject or noSuchInstance).
	ErrNoSuchObject = errors.New("no such object")

	// ErrEndOfMibView is returned by GetNext past the last OID of the agent.
	ErrEndOfMibView = errors.New("end of mib view")

	// ErrClosed is returned by operations on a closed adapter.
	ErrClosed = errors.New("adapter closed")
)

// Adapter performs single-OID protocol operations against one agent.
type Adapter interface {
	// Get returns the value bound to o.
	Get(ctx context.Context, o oid.OID) (any, error)

	// GetNext returns the first OID strictly after o, in lexicographic
	// order, and its value.
	GetNext(ctx context.Context, o oid.OID) (oid.OID, any, error)

	// Set writes value at o.
	Set(ctx context.Context, o oid.OID, value any) error
}

// Factory creates the adapter of one device instance.
type Factory func(host string, params Params) (Adapter, error)
