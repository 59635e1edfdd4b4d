// Package commands implements the snmp-orm CLI commands.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/adapter/memory"
	"github.com/snmp-orm/snmp-orm-go/pkg/device"
	"github.com/snmp-orm/snmp-orm-go/pkg/devices"
	"github.com/snmp-orm/snmp-orm-go/pkg/inspect"
	"github.com/snmp-orm/snmp-orm-go/pkg/log"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

// Config holds the global flags.
type Config struct {
	// SchemaFile holds extra classes loaded on top of the built-in ones.
	SchemaFile string

	// Class skips sysObjectID detection.
	Class string

	// Params override the class adapter params.
	Params adapter.Params

	// Simulate serves every host from this memory fixture.
	Simulate string

	// ProtocolLog receives a CBOR trace of every protocol operation.
	ProtocolLog string

	// ShowOIDs prints field OIDs next to names.
	ShowOIDs bool

	Logger *slog.Logger
}

// App runs commands against devices opened from a shared catalog.
type App struct {
	cfg       Config
	out       io.Writer
	catalog   *devices.Catalog
	formatter *inspect.Formatter
	factory   adapter.Factory
	trace     log.Logger
	closers   []io.Closer
	logger    *slog.Logger
}

// New prepares the catalog, simulation and protocol log described by cfg.
// Output goes to out.
func New(cfg Config, out io.Writer) (*App, error) {
	a := &App{
		cfg:       cfg,
		out:       out,
		formatter: inspect.NewFormatter(),
		logger:    cfg.Logger,
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	a.formatter.ShowOIDs = cfg.ShowOIDs

	catalog, err := devices.NewCatalog()
	if err != nil {
		return nil, err
	}
	if cfg.SchemaFile != "" {
		doc, err := schema.LoadFile(cfg.SchemaFile)
		if err != nil {
			return nil, err
		}
		if err := catalog.Load(doc); err != nil {
			return nil, fmt.Errorf("loading %s: %w", cfg.SchemaFile, err)
		}
		a.logger.Debug("schema loaded", "file", cfg.SchemaFile, "classes", len(doc.Classes))
	}
	a.catalog = catalog

	if cfg.Simulate != "" {
		sim, err := memory.LoadFixture(cfg.Simulate)
		if err != nil {
			return nil, err
		}
		a.factory = shared(sim)
		a.logger.Info("simulating agent", "fixture", cfg.Simulate, "objects", sim.Len())
	}

	if cfg.ProtocolLog != "" {
		fl, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return nil, fmt.Errorf("failed to create protocol logger: %w", err)
		}
		a.closers = append(a.closers, fl)
		a.trace = fl
		if a.logger.Enabled(context.Background(), slog.LevelDebug) {
			a.trace = log.NewMultiLogger(fl, log.NewSlogAdapter(a.logger))
		}
		a.logger.Info("protocol logging", "file", cfg.ProtocolLog)
	}
	return a, nil
}

// shared hands out sim to every device without letting a device close it.
func shared(sim *memory.Adapter) adapter.Factory {
	return func(string, adapter.Params) (adapter.Adapter, error) {
		return struct{ adapter.Adapter }{sim}, nil
	}
}

// Catalog returns the class catalog.
func (a *App) Catalog() *devices.Catalog { return a.catalog }

// Formatter returns the value formatter.
func (a *App) Formatter() *inspect.Formatter { return a.formatter }

// Open connects to host with the class given by -class, or the detected one.
func (a *App) Open(ctx context.Context, host string) (*device.Device, error) {
	opts := []device.Option{
		device.WithParams(a.cfg.Params),
		device.WithLogger(a.logger),
	}
	if a.factory != nil {
		opts = append(opts, device.WithAdapterFactory(a.factory))
	}
	if a.trace != nil {
		opts = append(opts, device.WithTrace(a.trace))
	}

	if a.cfg.Class != "" {
		s, err := a.catalog.Schema(a.cfg.Class)
		if err != nil {
			return nil, err
		}
		return device.New(host, s, opts...)
	}
	return a.catalog.Open(ctx, host, opts...)
}

// Close flushes the protocol log.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// withDevice opens host, runs fn and closes the device.
func (a *App) withDevice(ctx context.Context, host string, fn func(*device.Device) error) error {
	d, err := a.Open(ctx, host)
	if err != nil {
		return err
	}
	defer d.Close()
	a.logger.Debug("device ready", "device", d.String())
	return fn(d)
}
