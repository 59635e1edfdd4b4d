package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger at debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter. A nil logger means slog.Default().
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Host != "" {
		attrs = append(attrs, slog.String("host", event.Host))
	}

	switch {
	case event.Request != nil:
		attrs = append(attrs,
			slog.String("op", event.Request.Operation.String()),
			slog.Uint64("req_id", uint64(event.Request.RequestID)),
			slog.String("oid", event.Request.OID),
		)
		if event.Request.Value != nil {
			attrs = append(attrs, slog.String("value", fmt.Sprint(event.Request.Value)))
		}
	case event.Response != nil:
		attrs = append(attrs,
			slog.String("op", event.Response.Operation.String()),
			slog.Uint64("req_id", uint64(event.Response.RequestID)),
			slog.String("oid", event.Response.OID),
			slog.String("value", fmt.Sprint(event.Response.Value)),
			slog.Duration("rtt", event.Response.RoundTrip),
		)
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("op", event.Error.Operation.String()),
			slog.Uint64("req_id", uint64(event.Error.RequestID)),
			slog.String("oid", event.Error.OID),
			slog.String("error", event.Error.Message),
			slog.Duration("rtt", event.Error.RoundTrip),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "snmp", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
