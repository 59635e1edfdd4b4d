package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/snmp-orm/snmp-orm-go/pkg/log"
)

const timeLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [conn:id] DIRECTION host Type
	ts := event.Timestamp.UTC().Format(timeLayout)
	host := event.Host
	if host == "" {
		host = "-"
	}

	var typeLabel string
	switch {
	case event.Request != nil:
		typeLabel = event.Request.Operation.String()
	case event.Response != nil:
		typeLabel = event.Response.Operation.String() + "-RESPONSE"
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = event.Error.Operation.String() + "-ERROR"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [conn:%s] %-3s %s %s\n", ts, shortenConnID(event.ConnectionID), event.Direction, host, typeLabel)

	switch {
	case event.Request != nil:
		formatRequestDetails(w, event.Request)
	case event.Response != nil:
		formatResponseDetails(w, event.Response)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatRequestDetails(w io.Writer, req *log.RequestEvent) {
	fmt.Fprintf(w, "  RequestID: %d\n", req.RequestID)
	fmt.Fprintf(w, "  OID: %s\n", req.OID)
	if req.Value != nil {
		fmt.Fprintf(w, "  Value: %v\n", req.Value)
	}
}

func formatResponseDetails(w io.Writer, resp *log.ResponseEvent) {
	fmt.Fprintf(w, "  RequestID: %d\n", resp.RequestID)
	fmt.Fprintf(w, "  OID: %s\n", resp.OID)
	if resp.Value != nil {
		fmt.Fprintf(w, "  Value: %v\n", resp.Value)
	}
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(resp.RoundTrip))
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  RequestID: %d\n", e.RequestID)
	if e.OID != "" {
		fmt.Fprintf(w, "  OID: %s\n", e.OID)
	}
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(e.RoundTrip))
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunView prints the events of path that match opts.
func RunView(path string, opts FilterOptions, output io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
