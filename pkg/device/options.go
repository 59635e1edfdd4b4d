package device

import (
	"log/slog"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/log"
)

// Option configures New.
type Option func(*options)

type options struct {
	factory adapter.Factory
	adapter adapter.Adapter
	params  adapter.Params
	logger  *slog.Logger
	trace   log.Logger
}

// WithAdapterFactory replaces the SNMP adapter factory.
func WithAdapterFactory(f adapter.Factory) Option {
	return func(o *options) { o.factory = f }
}

// WithAdapter uses a instead of creating one. The device still closes it.
func WithAdapter(a adapter.Adapter) Option {
	return func(o *options) { o.adapter = a }
}

// WithParams overrides class params for this instance. Repeated options
// are merged in order.
func WithParams(p adapter.Params) Option {
	return func(o *options) { o.params = o.params.Merge(p) }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithTrace records every protocol operation to l.
func WithTrace(l log.Logger) Option {
	return func(o *options) { o.trace = l }
}
