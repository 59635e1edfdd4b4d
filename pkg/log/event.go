package log

import "time"

// Event is one protocol trace record.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the adapter instance (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"4,keyasint"`

	// Host is the agent address.
	Host string `cbor:"5,keyasint,omitempty"`

	// Payload, one of these is set.
	Request     *RequestEvent     `cbor:"10,keyasint,omitempty"`
	Response    *ResponseEvent    `cbor:"11,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"13,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn is an answer from the agent.
	DirectionIn Direction = 0
	// DirectionOut is a request to the agent.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	CategoryRequest  Category = 0
	CategoryResponse Category = 1
	CategoryState    Category = 2
	CategoryError    Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRequest:
		return "REQUEST"
	case CategoryResponse:
		return "RESPONSE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Operation is an SNMP protocol operation.
type Operation uint8

const (
	OpGet     Operation = 0
	OpGetNext Operation = 1
	OpSet     Operation = 2
)

// String returns the PDU name of the operation.
func (o Operation) String() string {
	switch o {
	case OpGet:
		return "GET"
	case OpGetNext:
		return "GETNEXT"
	case OpSet:
		return "SET"
	default:
		return "UNKNOWN"
	}
}

// ParseOperation parses an operation name as returned by String.
func ParseOperation(s string) (Operation, bool) {
	for _, op := range []Operation{OpGet, OpGetNext, OpSet} {
		if op.String() == s {
			return op, true
		}
	}
	return 0, false
}

// RequestEvent is a request sent to the agent.
type RequestEvent struct {
	Operation Operation `cbor:"1,keyasint"`

	// RequestID correlates the request with its response or error.
	RequestID uint32 `cbor:"2,keyasint"`

	// OID is the requested identifier in dotted form.
	OID string `cbor:"3,keyasint"`

	// Value is the value being written (set only).
	Value any `cbor:"4,keyasint,omitempty"`
}

// ResponseEvent is a successful answer.
type ResponseEvent struct {
	Operation Operation `cbor:"1,keyasint"`
	RequestID uint32    `cbor:"2,keyasint"`

	// OID is the answered identifier; differs from the request for get-next.
	OID string `cbor:"3,keyasint"`

	Value any `cbor:"4,keyasint,omitempty"`

	// RoundTrip is the time between request and answer.
	RoundTrip time.Duration `cbor:"5,keyasint"`
}

// StateChangeEvent captures adapter lifecycle changes.
type StateChangeEvent struct {
	OldState string `cbor:"1,keyasint,omitempty"`
	NewState string `cbor:"2,keyasint"`
	Reason   string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures a failed request.
type ErrorEventData struct {
	Operation Operation `cbor:"1,keyasint"`
	RequestID uint32    `cbor:"2,keyasint"`
	OID       string    `cbor:"3,keyasint,omitempty"`

	// Message is the error message.
	Message string `cbor:"4,keyasint"`

	// RoundTrip is the time between request and failure.
	RoundTrip time.Duration `cbor:"5,keyasint"`
}

// Operation returns the protocol operation an event belongs to.
// ok is false for state changes.
func (e Event) Operation() (op Operation, ok bool) {
	switch {
	case e.Request != nil:
		return e.Request.Operation, true
	case e.Response != nil:
		return e.Response.Operation, true
	case e.Error != nil:
		return e.Error.Operation, true
	default:
		return 0, false
	}
}

// OID returns the identifier an event refers to, if any.
func (e Event) OID() string {
	switch {
	case e.Request != nil:
		return e.Request.OID
	case e.Response != nil:
		return e.Response.OID
	case e.Error != nil:
		return e.Error.OID
	default:
		return ""
	}
}
