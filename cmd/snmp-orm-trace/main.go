// Command snmp-orm-trace views and analyzes SNMP protocol trace files.
//
// Trace files are written by snmp-orm with the -protocol-log flag, or by any
// program that wraps its adapter with adapter.Trace and a log.FileLogger.
//
// Usage:
//
//	snmp-orm-trace <command> [flags] <file.slog>
//
// Commands:
//
//	view     View trace in human-readable format
//	export   Export trace to JSON lines or CSV
//	filter   Filter trace and write to new file
//	stats    Show per-operation statistics
//
// Examples:
//
//	# View all get-next traffic under the interfaces table
//	snmp-orm-trace view -op getnext -oid 1.3.6.1.2.1.2.2 session.slog
//
//	# Only failed requests against one agent
//	snmp-orm-trace view -host 10.0.0.1 -category error session.slog
//
//	# Export to CSV
//	snmp-orm-trace export -format csv session.slog > session.csv
//
//	# Show statistics
//	snmp-orm-trace stats session.slog
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/snmp-orm/snmp-orm-go/cmd/snmp-orm-trace/commands"
)

const usage = `snmp-orm-trace - SNMP Protocol Trace Analyzer

Usage:
  snmp-orm-trace <command> [flags] <file.slog>

Commands:
  view     View trace in human-readable format
  export   Export trace to JSON lines or CSV
  filter   Filter trace and write to new file
  stats    Show per-operation statistics

Use "snmp-orm-trace <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// newFlagSet creates a flag set with the shared filter flags bound to opts.
func newFlagSet(name, synopsis string, opts *commands.FilterOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "snmp-orm-trace %s - %s\n\nUsage:\n  snmp-orm-trace %s [flags] <file.slog>\n\nFlags:\n", name, synopsis, name)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.ConnID, "conn-id", "", "Filter by connection ID")
	fs.StringVar(&opts.Host, "host", "", "Filter by agent host")
	fs.StringVar(&opts.Operation, "op", "", "Filter by operation (get, getnext, set)")
	fs.StringVar(&opts.OID, "oid", "", "Filter by OID prefix")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
	fs.StringVar(&opts.Direction, "direction", "", "Filter by direction (in, out)")
	fs.StringVar(&opts.Category, "category", "", "Filter by category (request, response, state, error)")
	return fs
}

// tracePath parses args and returns the trace file argument.
func tracePath(fs *flag.FlagSet, args []string) string {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func fail(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runView(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("view", "View trace in human-readable format", &opts)
	path := tracePath(fs, args)

	fail(commands.RunView(path, opts, os.Stdout))
}

func runExport(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("export", "Export trace to JSON lines or CSV", &opts)
	format := fs.String("format", "jsonl", "Output format (jsonl, csv)")
	output := fs.String("o", "", "Output file (default: stdout)")
	path := tracePath(fs, args)

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		fail(err)
		defer f.Close()
		w = f
	}

	fail(commands.RunExport(path, *format, opts, w))
}

func runFilter(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("filter", "Filter trace and write to new file", &opts)
	output := fs.String("o", "", "Output file (required)")
	path := tracePath(fs, args)

	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	fail(commands.RunFilter(path, *output, opts, os.Stdout))
}

func runStats(args []string) {
	var opts commands.FilterOptions
	fs := newFlagSet("stats", "Show per-operation statistics", &opts)
	path := tracePath(fs, args)

	fail(commands.RunStats(path, opts, os.Stdout))
}
