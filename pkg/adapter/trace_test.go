package adapter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/adapter/mocks"
	"github.com/snmp-orm/snmp-orm-go/pkg/log"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

type recorder struct {
	events []log.Event
}

func (r *recorder) Log(e log.Event) { r.events = append(r.events, e) }

func TestTraceEmitsRequestAndResponse(t *testing.T) {
	ctx := context.Background()
	inner := mocks.NewMockAdapter(t)
	rec := &recorder{}

	contact := oid.MustParse("1.3.6.1.2.1.1.4.0")
	inner.EXPECT().Get(mock.Anything, contact).Return("admin", nil).Once()
	inner.EXPECT().GetNext(mock.Anything, contact).Return(oid.MustParse("1.3.6.1.2.1.1.5.0"), "sw1", nil).Once()
	inner.EXPECT().Set(mock.Anything, contact, "ops").Return(errors.New("read only")).Once()

	tr := adapter.Trace(inner, rec, "10.0.0.1")

	v, err := tr.Get(ctx, contact)
	require.NoError(t, err)
	assert.Equal(t, "admin", v)

	next, v, err := tr.GetNext(ctx, contact)
	require.NoError(t, err)
	assert.Equal(t, oid.MustParse("1.3.6.1.2.1.1.5.0"), next)
	assert.Equal(t, "sw1", v)

	err = tr.Set(ctx, contact, "ops")
	assert.EqualError(t, err, "read only")

	require.NoError(t, tr.Close())

	// open, 3 x (request, answer), closed
	require.Len(t, rec.events, 8)
	for _, e := range rec.events {
		assert.Equal(t, tr.ConnectionID(), e.ConnectionID)
		assert.Equal(t, "10.0.0.1", e.Host)
	}

	assert.Equal(t, "OPEN", rec.events[0].StateChange.NewState)

	req := rec.events[1]
	assert.Equal(t, log.CategoryRequest, req.Category)
	assert.Equal(t, log.DirectionOut, req.Direction)
	assert.Equal(t, log.OpGet, req.Request.Operation)
	assert.Equal(t, "1.3.6.1.2.1.1.4.0", req.Request.OID)

	resp := rec.events[2]
	assert.Equal(t, log.CategoryResponse, resp.Category)
	assert.Equal(t, req.Request.RequestID, resp.Response.RequestID)
	assert.Equal(t, "admin", resp.Response.Value)

	assert.Equal(t, "1.3.6.1.2.1.1.5.0", rec.events[4].Response.OID)

	assert.Equal(t, "ops", rec.events[5].Request.Value)
	failed := rec.events[6]
	assert.Equal(t, log.CategoryError, failed.Category)
	assert.Equal(t, "read only", failed.Error.Message)
	assert.Equal(t, uint32(3), failed.Error.RequestID)

	assert.Equal(t, "CLOSED", rec.events[7].StateChange.NewState)
}

func TestTraceNilLogger(t *testing.T) {
	inner := mocks.NewMockAdapter(t)
	inner.EXPECT().Get(mock.Anything, mock.Anything).Return(int64(1), nil).Once()

	tr := adapter.Trace(inner, nil, "h")
	_, err := tr.Get(context.Background(), oid.MustParse("1.1"))
	require.NoError(t, err)
	assert.Same(t, inner, tr.Unwrap())
}

func TestTraceGetNextErrorKeepsRequestedOID(t *testing.T) {
	ctx := context.Background()
	inner := mocks.NewMockAdapter(t)
	rec := &recorder{}

	last := oid.MustParse("1.3.6.1.2.1.2.2.1.8.2")
	inner.EXPECT().GetNext(mock.Anything, last).Return(nil, nil, adapter.ErrEndOfMibView).Once()

	tr := adapter.Trace(inner, rec, "10.0.0.1")
	_, _, err := tr.GetNext(ctx, last)
	assert.ErrorIs(t, err, adapter.ErrEndOfMibView)

	// open, request, error
	require.Len(t, rec.events, 3)
	failed := rec.events[2]
	assert.Equal(t, log.CategoryError, failed.Category)
	assert.Equal(t, "1.3.6.1.2.1.2.2.1.8.2", failed.Error.OID)
	assert.Equal(t, "1.3.6.1.2.1.2.2.1.8.2", failed.OID())
}
