package adapter

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/snmp-orm/snmp-orm-go/pkg/log"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// Traced decorates an adapter, emitting one request event and one
// response or error event per operation.
type Traced struct {
	inner  Adapter
	logger log.Logger
	host   string
	connID string
	reqID  atomic.Uint32
	now    func() time.Time
}

// Trace wraps inner. A nil logger disables tracing.
func Trace(inner Adapter, logger log.Logger, host string) *Traced {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	t := &Traced{
		inner:  inner,
		logger: logger,
		host:   host,
		connID: uuid.NewString(),
		now:    time.Now,
	}
	t.state("", "OPEN", "")
	return t
}

// ConnectionID returns the identifier stamped on every event of t.
func (t *Traced) ConnectionID() string { return t.connID }

// Unwrap returns the decorated adapter.
func (t *Traced) Unwrap() Adapter { return t.inner }

// Get implements Adapter.
func (t *Traced) Get(ctx context.Context, o oid.OID) (any, error) {
	id, start := t.request(log.OpGet, o, nil)
	v, err := t.inner.Get(ctx, o)
	t.answer(log.OpGet, id, start, o, v, err)
	return v, err
}

// GetNext implements Adapter.
func (t *Traced) GetNext(ctx context.Context, o oid.OID) (oid.OID, any, error) {
	id, start := t.request(log.OpGetNext, o, nil)
	next, v, err := t.inner.GetNext(ctx, o)
	answered := next
	if err != nil {
		answered = o
	}
	t.answer(log.OpGetNext, id, start, answered, v, err)
	return next, v, err
}

// Set implements Adapter.
func (t *Traced) Set(ctx context.Context, o oid.OID, value any) error {
	id, start := t.request(log.OpSet, o, value)
	err := t.inner.Set(ctx, o, value)
	t.answer(log.OpSet, id, start, o, value, err)
	return err
}

// Close closes the decorated adapter if it holds resources.
func (t *Traced) Close() error {
	var err error
	if c, ok := t.inner.(io.Closer); ok {
		err = c.Close()
	}
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	t.state("OPEN", "CLOSED", reason)
	return err
}

func (t *Traced) request(op log.Operation, o oid.OID, value any) (uint32, time.Time) {
	id := t.reqID.Add(1)
	start := t.now()
	t.logger.Log(log.Event{
		Timestamp:    start,
		ConnectionID: t.connID,
		Direction:    log.DirectionOut,
		Category:     log.CategoryRequest,
		Host:         t.host,
		Request: &log.RequestEvent{
			Operation: op,
			RequestID: id,
			OID:       o.String(),
			Value:     traceValue(value),
		},
	})
	return id, start
}

func (t *Traced) answer(op log.Operation, id uint32, start time.Time, o oid.OID, value any, err error) {
	end := t.now()
	ev := log.Event{
		Timestamp:    end,
		ConnectionID: t.connID,
		Direction:    log.DirectionIn,
		Host:         t.host,
	}
	if err != nil {
		ev.Category = log.CategoryError
		ev.Error = &log.ErrorEventData{
			Operation: op,
			RequestID: id,
			OID:       o.String(),
			Message:   err.Error(),
			RoundTrip: end.Sub(start),
		}
	} else {
		ev.Category = log.CategoryResponse
		ev.Response = &log.ResponseEvent{
			Operation: op,
			RequestID: id,
			OID:       o.String(),
			Value:     traceValue(value),
			RoundTrip: end.Sub(start),
		}
	}
	t.logger.Log(ev)
}

func (t *Traced) state(old, next, reason string) {
	t.logger.Log(log.Event{
		Timestamp:    t.now(),
		ConnectionID: t.connID,
		Category:     log.CategoryState,
		Host:         t.host,
		StateChange:  &log.StateChangeEvent{OldState: old, NewState: next, Reason: reason},
	})
}

// traceValue reduces protocol values to CBOR-friendly forms.
func traceValue(v any) any {
	switch x := v.(type) {
	case nil, string, []byte, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return x
	case oid.OID:
		return x.String()
	case interface{ String() string }:
		return x.String()
	default:
		return x
	}
}

var _ Adapter = (*Traced)(nil)
