// Command snmp-orm reads and writes SNMP agents through device classes.
//
// The class of an agent is detected from its sysObjectID unless -class is
// given. Extra classes can be loaded from a YAML schema file.
//
// Usage:
//
//	snmp-orm [flags] <command> [args]
//
// Commands:
//
//	get <host> <path>                Read an attribute, group or table
//	set <host> <path> <value>        Write an attribute
//	walk <host> <group>              Read every value of a group
//	table <host> <path> [index]      Show a table, or one row of it
//	shell <host>                     Interactive shell
//	playground <host>                Show sysContact and claim the agent
//	classes                          Describe the known device classes
//
// Paths are "attr" for class-level fields or "group.attr".
//
// Examples:
//
//	# Read the system description
//	snmp-orm get 10.0.0.1 system.sysDescr
//
//	# Show the interface names of a v1 agent
//	snmp-orm -version 1 table 10.0.0.1 interfaces.ifDescr
//
//	# Try the shell against a simulated agent
//	snmp-orm -simulate cmd/snmp-orm/testdata/agent.yaml shell sim
//
//	# Record the protocol exchange
//	snmp-orm -protocol-log session.slog walk 10.0.0.1 interfaces
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/snmp-orm/snmp-orm-go/cmd/snmp-orm/commands"
	"github.com/snmp-orm/snmp-orm-go/cmd/snmp-orm/interactive"
	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
)

var (
	schemaFile  = flag.String("schema", "", "YAML file with additional device classes")
	class       = flag.String("class", "", "Device class to use instead of detecting it")
	community   = flag.String("community", "", "SNMP community (default: class params)")
	version     = flag.String("version", "", "SNMP version: 1, 2c (default: class params)")
	port        = flag.Int("port", 0, "Agent UDP port (default 161)")
	timeout     = flag.Duration("timeout", 0, "Request timeout (default 2s)")
	retries     = flag.Int("retries", -1, "Request retries (default 1)")
	simulate    = flag.String("simulate", "", "Serve every host from this YAML fixture")
	showOIDs    = flag.Bool("oids", false, "Show OIDs next to attribute names")
	logLevel    = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	protocolLog = flag.String("protocol-log", "", "File path for protocol event logging (CBOR format)")
)

const usage = `snmp-orm - SNMP devices as objects

Usage:
  snmp-orm [flags] <command> [args]

Commands:
  get <host> <path>              Read an attribute, group or table
  set <host> <path> <value>      Write an attribute
  walk <host> <group>            Read every value of a group
  table <host> <path> [index]    Show a table, or one row of it
  shell <host>                   Interactive shell
  playground <host>              Show sysContact and claim the agent
  classes                        Describe the known device classes

Flags:
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	level, err := parseLevel(*logLevel)
	if err != nil {
		fail(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	app, err := commands.New(commands.Config{
		SchemaFile:  *schemaFile,
		Class:       *class,
		Params:      flagParams(),
		Simulate:    *simulate,
		ProtocolLog: *protocolLog,
		ShowOIDs:    *showOIDs,
		Logger:      logger,
	}, os.Stdout)
	if err != nil {
		fail(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, app, flag.Arg(0), flag.Args()[1:])
	cancel()
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fail(err)
	}
}

func run(ctx context.Context, app *commands.App, cmd string, args []string) error {
	switch cmd {
	case "get":
		if err := need(cmd, args, 2, 2, "<host> <path>"); err != nil {
			return err
		}
		return app.RunGet(ctx, args[0], args[1])
	case "set":
		if err := need(cmd, args, 3, -1, "<host> <path> <value>"); err != nil {
			return err
		}
		return app.RunSet(ctx, args[0], args[1], strings.Join(args[2:], " "))
	case "walk":
		if err := need(cmd, args, 2, 2, "<host> <group>"); err != nil {
			return err
		}
		return app.RunWalk(ctx, args[0], args[1])
	case "table":
		if err := need(cmd, args, 2, 3, "<host> <path> [index]"); err != nil {
			return err
		}
		var index string
		if len(args) == 3 {
			index = args[2]
		}
		return app.RunTable(ctx, args[0], args[1], index)
	case "shell":
		if err := need(cmd, args, 1, 1, "<host>"); err != nil {
			return err
		}
		d, err := app.Open(ctx, args[0])
		if err != nil {
			return err
		}
		defer d.Close()
		return interactive.New(app, d, os.Stdout).Run(ctx)
	case "playground":
		if err := need(cmd, args, 1, 1, "<host>"); err != nil {
			return err
		}
		return app.RunPlayground(ctx, args[0])
	case "classes":
		return app.RunClasses()
	case "help":
		flag.Usage()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// need checks the argument count; hi < 0 means unbounded.
func need(cmd string, args []string, lo, hi int, synopsis string) error {
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return fmt.Errorf("usage: snmp-orm %s %s", cmd, synopsis)
	}
	return nil
}

// flagParams returns the adapter params set explicitly on the command line.
func flagParams() adapter.Params {
	p := adapter.Params{}
	if *community != "" {
		p["community"] = *community
	}
	if *version != "" {
		p["version"] = *version
	}
	if *port != 0 {
		p["port"] = *port
	}
	if *timeout != 0 {
		p["timeout"] = *timeout
	}
	if *retries >= 0 {
		p["retries"] = *retries
	}
	return p
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
