package device

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/adapter/snmp"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

// Device is one agent viewed through a class schema.
type Device struct {
	host       string
	schema     *schema.Schema
	adapter    adapter.Adapter
	containers map[string]*Container
	logger     *slog.Logger
}

// New creates the device instance of class s for host. Unless an adapter
// is supplied, one is created by the factory (SNMP by default) from the
// class params overlaid with WithParams.
func New(host string, s *schema.Schema, opts ...Option) (*Device, error) {
	o := options{factory: snmp.Factory}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	a := o.adapter
	if a == nil {
		params := adapter.Params(s.Params()).Merge(o.params)
		var err error
		if a, err = o.factory(host, params); err != nil {
			return nil, fmt.Errorf("creating adapter for %s: %w", host, err)
		}
	}
	if o.trace != nil {
		a = adapter.Trace(a, o.trace, host)
	}

	d := &Device{
		host:       host,
		schema:     s,
		adapter:    a,
		containers: make(map[string]*Container),
		logger:     o.logger.With("host", host, "class", s.Name()),
	}
	for _, g := range s.Groups() {
		d.containers[g.Name()] = &Container{device: d, group: g}
	}

	d.logger.Debug("device opened", "groups", len(d.containers))
	return d, nil
}

// Host returns the agent address.
func (d *Device) Host() string { return d.host }

// Schema returns the resolved class schema.
func (d *Device) Schema() *schema.Schema { return d.schema }

// Adapter returns the adapter shared by the device and its containers.
func (d *Device) Adapter() adapter.Adapter { return d.adapter }

// GetAttribute reads a device-level field. A group name yields its
// *Container.
func (d *Device) GetAttribute(ctx context.Context, name string) (any, error) {
	if f, ok := d.schema.Field(name); ok {
		return getField(ctx, d.adapter, d.schema.Name(), f)
	}
	if c, ok := d.containers[name]; ok {
		return c, nil
	}
	return nil, notFound("get", d.schema.Name(), name)
}

// SetAttribute writes a device-level field.
func (d *Device) SetAttribute(ctx context.Context, name string, value any) error {
	if f, ok := d.schema.Field(name); ok {
		return setField(ctx, d.adapter, d.schema.Name(), f, value)
	}
	if _, ok := d.containers[name]; ok {
		return &AttributeError{Op: "set", Scope: d.schema.Name(), Name: name, Err: ErrUnsupported}
	}
	return notFound("set", d.schema.Name(), name)
}

// Container returns the container of group name.
func (d *Device) Container(name string) (*Container, error) {
	c, ok := d.containers[name]
	if !ok {
		return nil, notFound("get", d.schema.Name(), name)
	}
	return c, nil
}

// Containers returns the containers in schema group order.
func (d *Device) Containers() []*Container {
	names := d.schema.GroupNames()
	out := make([]*Container, len(names))
	for i, name := range names {
		out[i] = d.containers[name]
	}
	return out
}

// Get reads the attribute at path: "name" on the device or "group.name"
// on a container.
func (d *Device) Get(ctx context.Context, path string) (any, error) {
	r, name, err := d.resolve("get", path)
	if err != nil {
		return nil, err
	}
	return r.GetAttribute(ctx, name)
}

// Set writes the attribute at path, as addressed by Get.
func (d *Device) Set(ctx context.Context, path string, value any) error {
	r, name, err := d.resolve("set", path)
	if err != nil {
		return err
	}
	return r.SetAttribute(ctx, name, value)
}

func (d *Device) resolve(op, path string) (Resolver, string, error) {
	group, name, nested := strings.Cut(path, ".")
	if !nested {
		return d, path, nil
	}
	c, ok := d.containers[group]
	if !ok {
		return nil, "", notFound(op, d.schema.Name(), group)
	}
	return c, name, nil
}

// Close releases the adapter.
func (d *Device) Close() error {
	d.logger.Debug("device closed")
	if c, ok := d.adapter.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// String identifies the device by class and host.
func (d *Device) String() string {
	return fmt.Sprintf("<%s object for host %s>", d.schema.Name(), d.host)
}
