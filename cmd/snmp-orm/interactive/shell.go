// Package interactive provides the snmp-orm command shell for one device.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/snmp-orm/snmp-orm-go/cmd/snmp-orm/commands"
	"github.com/snmp-orm/snmp-orm-go/pkg/device"
	"github.com/snmp-orm/snmp-orm-go/pkg/inspect"
)

// Shell runs commands against an open device.
type Shell struct {
	app    *commands.App
	device *device.Device
	out    io.Writer
	tables map[string]*device.TableProxy
}

// New creates a shell for d writing to out.
func New(app *commands.App, d *device.Device, out io.Writer) *Shell {
	return &Shell{
		app:    app,
		device: d,
		out:    out,
		tables: make(map[string]*device.TableProxy),
	}
}

// Run reads commands until quit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.device.Schema().Name() + "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.out = rl.Stdout()

	s.printHelp()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
		if !s.Exec(ctx, line) {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
	}
}

// Exec runs one command line. It returns false when the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "get", "g":
		s.cmdGet(ctx, args)
	case "set", "s":
		s.cmdSet(ctx, args)
	case "walk", "w":
		s.cmdWalk(ctx, args)
	case "table", "t":
		s.cmdTable(ctx, args)
	case "schema", "info":
		fmt.Fprint(s.out, s.app.Formatter().FormatSchema(s.device.Schema()))
	case "groups":
		for _, name := range s.device.Schema().GroupNames() {
			fmt.Fprintln(s.out, name)
		}
	case "oids":
		s.app.Formatter().ShowOIDs = !s.app.Formatter().ShowOIDs
		fmt.Fprintf(s.out, "Show OIDs: %v\n", s.app.Formatter().ShowOIDs)
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintf(s.out, `
%s
  get <path>            - Read an attribute, group or table (e.g. system.sysName)
  set <path> <value>    - Write an attribute
  walk <group>          - Read every value of a group
  table <path> [index]  - Show a table, or one row of it
  schema                - Describe the device class
  groups                - List groups
  oids                  - Toggle OID display
  quit                  - Exit
`, s.device)
}

func (s *Shell) cmdGet(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: get <path>")
		return
	}
	p, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid path: %v\n", err)
		return
	}
	if table, ok := s.tables[p.String()]; ok {
		s.report(s.app.PrintTable(ctx, s.out, p, table, ""))
		return
	}
	s.report(s.app.PrintAttribute(ctx, s.out, s.device, p))
}

func (s *Shell) cmdSet(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.out, "Usage: set <path> <value>")
		return
	}
	p, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid path: %v\n", err)
		return
	}
	value := strings.Join(args[1:], " ")
	if err := s.device.Set(ctx, p.String(), value); err != nil {
		s.report(err)
		return
	}
	s.report(s.app.PrintAttribute(ctx, s.out, s.device, p))
}

func (s *Shell) cmdWalk(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: walk <group>")
		return
	}
	c, err := s.device.Container(args[0])
	if err != nil {
		s.report(err)
		return
	}
	s.report(s.app.PrintWalk(ctx, s.out, c))
}

// cmdTable keeps table proxies for the session, so a table is walked once
// and later row lookups are served from memory.
func (s *Shell) cmdTable(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(s.out, "Usage: table <path> [index]")
		return
	}
	p, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid path: %v\n", err)
		return
	}

	table, ok := s.tables[p.String()]
	if !ok {
		v, err := s.device.Get(ctx, p.String())
		if err != nil {
			s.report(err)
			return
		}
		if table, ok = v.(*device.TableProxy); !ok {
			fmt.Fprintf(s.out, "%s is not a table\n", p)
			return
		}
		s.tables[p.String()] = table
	}

	var index string
	if len(args) == 2 {
		index = args[1]
	}
	s.report(s.app.PrintTable(ctx, s.out, p, table, index))
}

func (s *Shell) report(err error) {
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

// completer offers commands and attribute paths of the device class.
func (s *Shell) completer() *readline.PrefixCompleter {
	sch := s.device.Schema()

	var paths []readline.PrefixCompleterInterface
	for _, f := range sch.Fields() {
		paths = append(paths, readline.PcItem(f.Name()))
	}
	var groups []readline.PrefixCompleterInterface
	for _, g := range sch.Groups() {
		groups = append(groups, readline.PcItem(g.Name()))
		for _, name := range g.FieldNames() {
			paths = append(paths, readline.PcItem(g.Name()+"."+name))
		}
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("get", paths...),
		readline.PcItem("set", paths...),
		readline.PcItem("walk", groups...),
		readline.PcItem("table", paths...),
		readline.PcItem("schema"),
		readline.PcItem("groups"),
		readline.PcItem("oids"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
