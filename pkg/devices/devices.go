// Package devices ships the built-in device classes and picks the class
// of an agent from its sysObjectID.
package devices

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"sort"
	"sync"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/device"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

// GenericClass is the class used to identify agents.
const GenericClass = "Generic"

//go:embed classes/*.yaml
var builtin embed.FS

// Catalog is a registry of device classes with sysObjectID matching.
type Catalog struct {
	registry *schema.Registry
}

// NewCatalog creates a catalog holding the built-in classes.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{registry: schema.NewRegistry()}

	files, err := fs.Glob(builtin, "classes/*.yaml")
	if err != nil {
		return nil, err
	}
	// mib2.yaml holds the roots and must come first.
	sort.Slice(files, func(i, j int) bool {
		return files[i] == "classes/mib2.yaml" || (files[j] != "classes/mib2.yaml" && files[i] < files[j])
	})

	for _, name := range files {
		data, err := builtin.ReadFile(name)
		if err != nil {
			return nil, err
		}
		doc, err := schema.ParseDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := c.Load(doc); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return c, nil
}

// Default returns the shared built-in catalog.
var Default = sync.OnceValue(func() *Catalog {
	c, err := NewCatalog()
	if err != nil {
		panic(fmt.Sprintf("loading built-in device classes: %v", err))
	}
	return c
})

// Load registers additional classes. They may extend built-in ones.
func (c *Catalog) Load(doc *schema.Document) error {
	_, err := c.registry.LoadDocument(doc)
	return err
}

// Register adds a class declared in Go.
func (c *Catalog) Register(class *schema.Class) (*schema.Schema, error) {
	return c.registry.Register(class)
}

// Registry returns the underlying registry.
func (c *Catalog) Registry() *schema.Registry { return c.registry }

// Schema returns the schema of the named class.
func (c *Catalog) Schema(name string) (*schema.Schema, error) {
	return c.registry.Schema(name)
}

// Match returns the class whose classId is the longest prefix of id.
// Among equally long prefixes the class registered last wins.
func (c *Catalog) Match(id oid.OID) (*schema.Schema, bool) {
	var best *schema.Schema
	for _, name := range c.registry.Names() {
		s, err := c.registry.Schema(name)
		if err != nil {
			continue
		}
		cid := s.ClassID()
		if len(cid) == 0 || !id.HasPrefix(cid) {
			continue
		}
		if best == nil || len(cid) >= len(best.ClassID()) {
			best = s
		}
	}
	return best, best != nil
}

// Identify reads sysObjectID through a and matches it. Agents that match
// nothing are treated as generic.
func (c *Catalog) Identify(ctx context.Context, a adapter.Adapter) (*schema.Schema, error) {
	generic, err := c.registry.Schema(GenericClass)
	if err != nil {
		return nil, err
	}
	f, ok := generic.Field("sysObjectID")
	if !ok {
		return nil, fmt.Errorf("class %s declares no sysObjectID", GenericClass)
	}

	raw, err := a.Get(ctx, f.OID())
	if err != nil {
		return nil, err
	}
	v, err := f.Decode(raw)
	if err != nil {
		return nil, err
	}
	id, ok := v.(oid.OID)
	if !ok {
		return nil, fmt.Errorf("sysObjectID decoded to %T", v)
	}

	if s, ok := c.Match(id); ok {
		return s, nil
	}
	return generic, nil
}

// Detect connects to host as a generic device and identifies its class.
func (c *Catalog) Detect(ctx context.Context, host string, opts ...device.Option) (*schema.Schema, error) {
	d, err := c.openGeneric(host, opts)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	s, err := c.Identify(ctx, d.Adapter())
	if err != nil {
		return nil, fmt.Errorf("detecting class of %s: %w", host, err)
	}
	return s, nil
}

// Open identifies the class of host and returns a device of that class.
// The adapter opened for identification is kept, so the detected class's
// own params do not apply; pass them with device.WithParams if needed.
func (c *Catalog) Open(ctx context.Context, host string, opts ...device.Option) (*device.Device, error) {
	d, err := c.openGeneric(host, opts)
	if err != nil {
		return nil, err
	}

	s, err := c.Identify(ctx, d.Adapter())
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("detecting class of %s: %w", host, err)
	}
	if s.Name() == GenericClass {
		return d, nil
	}

	opts = append(slices.Clone(opts), device.WithAdapter(d.Adapter()), device.WithTrace(nil))
	return device.New(host, s, opts...)
}

// Open identifies host against the built-in catalog and opens it.
func Open(ctx context.Context, host string, opts ...device.Option) (*device.Device, error) {
	return Default().Open(ctx, host, opts...)
}

func (c *Catalog) openGeneric(host string, opts []device.Option) (*device.Device, error) {
	generic, err := c.registry.Schema(GenericClass)
	if err != nil {
		return nil, err
	}
	return device.New(host, generic, opts...)
}
