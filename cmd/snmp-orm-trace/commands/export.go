package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/snmp-orm/snmp-orm-go/pkg/log"
)

// RunExport writes the matching events of path to w as jsonl or csv.
func RunExport(path, format string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	var export func(*log.Reader, io.Writer) error
	switch format {
	case "jsonl":
		export = exportJSONL
	case "csv":
		export = exportCSV
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	return export(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

var csvHeader = []string{"timestamp", "connection_id", "host", "direction", "category", "operation", "request_id", "oid", "value", "rtt", "error"}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(event log.Event) []string {
	var op, reqID, value, rtt, errMsg string
	switch {
	case event.Request != nil:
		op = event.Request.Operation.String()
		reqID = strconv.FormatUint(uint64(event.Request.RequestID), 10)
		if event.Request.Value != nil {
			value = fmt.Sprint(event.Request.Value)
		}
	case event.Response != nil:
		op = event.Response.Operation.String()
		reqID = strconv.FormatUint(uint64(event.Response.RequestID), 10)
		if event.Response.Value != nil {
			value = fmt.Sprint(event.Response.Value)
		}
		rtt = event.Response.RoundTrip.String()
	case event.Error != nil:
		op = event.Error.Operation.String()
		reqID = strconv.FormatUint(uint64(event.Error.RequestID), 10)
		rtt = event.Error.RoundTrip.String()
		errMsg = event.Error.Message
	case event.StateChange != nil:
		value = event.StateChange.NewState
	}
	return []string{
		event.Timestamp.UTC().Format(timeLayout),
		event.ConnectionID,
		event.Host,
		event.Direction.String(),
		event.Category.String(),
		op,
		reqID,
		event.OID(),
		value,
		rtt,
		errMsg,
	}
}
