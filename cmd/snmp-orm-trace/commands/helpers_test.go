package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/snmp-orm/snmp-orm-go/pkg/log"
)

var baseTime = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// createTestTrace writes events to a trace file in a temp directory.
func createTestTrace(t *testing.T, events []log.Event) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.slog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

// sessionEvents is a get of sysDescr followed by a failed set.
func sessionEvents() []log.Event {
	conn := "c0ffee00-1111-2222-3333-444455556666"
	host := "10.0.0.1"
	return []log.Event{
		{
			Timestamp: baseTime, ConnectionID: conn, Host: host,
			Direction: log.DirectionOut, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{NewState: "OPEN"},
		},
		{
			Timestamp: baseTime.Add(time.Millisecond), ConnectionID: conn, Host: host,
			Direction: log.DirectionOut, Category: log.CategoryRequest,
			Request: &log.RequestEvent{Operation: log.OpGet, RequestID: 1, OID: "1.3.6.1.2.1.1.1.0"},
		},
		{
			Timestamp: baseTime.Add(3 * time.Millisecond), ConnectionID: conn, Host: host,
			Direction: log.DirectionIn, Category: log.CategoryResponse,
			Response: &log.ResponseEvent{
				Operation: log.OpGet, RequestID: 1, OID: "1.3.6.1.2.1.1.1.0",
				Value: "Linux router", RoundTrip: 2 * time.Millisecond,
			},
		},
		{
			Timestamp: baseTime.Add(4 * time.Millisecond), ConnectionID: conn, Host: host,
			Direction: log.DirectionOut, Category: log.CategoryRequest,
			Request: &log.RequestEvent{Operation: log.OpSet, RequestID: 2, OID: "1.3.6.1.2.1.1.4.0", Value: "ops"},
		},
		{
			Timestamp: baseTime.Add(9 * time.Millisecond), ConnectionID: conn, Host: host,
			Direction: log.DirectionIn, Category: log.CategoryError,
			Error: &log.ErrorEventData{
				Operation: log.OpSet, RequestID: 2, OID: "1.3.6.1.2.1.1.4.0",
				Message: "notWritable", RoundTrip: 5 * time.Millisecond,
			},
		},
	}
}
