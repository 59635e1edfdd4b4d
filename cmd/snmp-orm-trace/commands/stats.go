package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/snmp-orm/snmp-orm-go/pkg/log"
)

// RunStats summarizes the matching events of path and prints the result.
func RunStats(path string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Build()
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	summary, err := log.Summarize(reader)
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}

	printStats(w, summary)
	return nil
}

func printStats(w io.Writer, s *log.Summary) {
	fmt.Fprintln(w, "=== SNMP Trace Statistics ===")
	fmt.Fprintln(w)

	if s.Events > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n", s.First.Format(time.RFC3339), s.Last.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", s.Last.Sub(s.First).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", s.Events)
	fmt.Fprintf(w, "Connections:  %d\n", len(s.Connections))
	fmt.Fprintln(w)

	if len(s.Hosts) > 0 {
		fmt.Fprintln(w, "Events by Host:")
		for _, host := range sortedKeys(s.Hosts) {
			fmt.Fprintf(w, "  %-24s %d\n", host, s.Hosts[host])
		}
		fmt.Fprintln(w)
	}

	if len(s.Ops) == 0 {
		return
	}
	fmt.Fprintln(w, "Operations:")
	fmt.Fprintf(w, "  %-8s %8s %8s %8s %12s %12s\n", "OP", "REQ", "OK", "ERR", "MEAN", "MAX")
	for _, op := range s.Operations() {
		st := s.Ops[op]
		fmt.Fprintf(w, "  %-8s %8d %8d %8d %12s %12s\n",
			op, st.Requests, st.Responses, st.Errors, formatDuration(st.Mean()), formatDuration(st.Max))
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
