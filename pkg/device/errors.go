package device

import (
	"errors"
	"fmt"
)

// Attribute errors.
var (
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrUnsupported       = errors.New("unsupported operation")

	// ErrNonIncreasing is returned by walks when an agent answers get-next
	// with an OID that does not follow the requested one.
	ErrNonIncreasing = errors.New("agent returned non-increasing oid")

	// ErrTypeMismatch is returned by Value when the decoded value has an
	// unexpected type.
	ErrTypeMismatch = errors.New("unexpected value type")
)

// AttributeError reports a failed attribute access.
type AttributeError struct {
	Op    string // "get" or "set"
	Scope string // class name, or class.group for containers
	Name  string
	Err   error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("%s %s.%s: %v", e.Op, e.Scope, e.Name, e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }
