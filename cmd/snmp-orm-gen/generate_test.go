package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

const routerYAML = `
classes:
  - name: Router
    description: Edge router
    fields:
      - {name: sysName, oid: 1.3.6.1.2.1.1.5.0, codec: string, description: Administrative name}
      - {name: sysUpTime, oid: 1.3.6.1.2.1.1.3.0, codec: timeticks}
    groups:
      - name: interfaces
        prefix: 1.3.6.1.2.1.2
        fields:
          - {name: ifNumber, oid: 1.3.6.1.2.1.2.1.0, codec: integer}
          - {name: ifDescr, oid: 1.3.6.1.2.1.2.2.1.2, codec: string, table: true}
          - name: ifOperStatus
            oid: 1.3.6.1.2.1.2.2.1.8
            table: true
            enum: {1: up, 2: down}
      - name: ip
        prefix: 1.3.6.1.2.1.4.20.1
        fields:
          - {name: ipAdEntAddr, oid: 1.3.6.1.2.1.4.20.1.1, codec: ipaddress, table: true}
`

func loadYAML(t *testing.T, src string) []*schema.Schema {
	t.Helper()
	doc, err := schema.ParseDocument([]byte(src))
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}
	schemas, err := schema.NewRegistry().LoadDocument(doc)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	return schemas
}

func generateRouter(t *testing.T) string {
	t.Helper()
	output, err := Generate(loadYAML(t, routerYAML), "netdev", "router.yaml")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return output
}

func TestGenerateHeader(t *testing.T) {
	output := generateRouter(t)

	mustContain(t, output, "// Code generated by snmp-orm-gen from router.yaml. DO NOT EDIT.")
	mustContain(t, output, "package netdev")
	mustContain(t, output, `"github.com/snmp-orm/snmp-orm-go/pkg/device"`)
}

func TestGenerateClassType(t *testing.T) {
	output := generateRouter(t)

	mustContain(t, output, `const ClassRouter = "Router"`)
	mustContain(t, output, "// Router is a typed view of a device of class Router: edge router.")
	mustContain(t, output, "type Router struct {")
	mustContain(t, output, "func AsRouter(d *device.Device) (*Router, error) {")
	mustContain(t, output, "if !slices.Contains(d.Schema().Lineage(), ClassRouter) {")
}

func TestGenerateScalarAccessors(t *testing.T) {
	output := generateRouter(t)

	mustContain(t, output, "// SysName reads sysName (1.3.6.1.2.1.1.5.0).")
	mustContain(t, output, "// Administrative name")
	mustContain(t, output, "func (r *Router) SysName(ctx context.Context) (string, error) {")
	mustContain(t, output, `return device.Value[string](ctx, r.Device, "sysName")`)
	mustContain(t, output, "func (r *Router) SetSysName(ctx context.Context, value string) error {")
	mustContain(t, output, `return r.Device.SetAttribute(ctx, "sysName", value)`)
	mustContain(t, output, "func (r *Router) SysUpTime(ctx context.Context) (time.Duration, error) {")
}

func TestGenerateGroups(t *testing.T) {
	output := generateRouter(t)

	mustContain(t, output, "func (r *Router) Interfaces() *RouterInterfaces {")
	mustContain(t, output, `grp, err := r.Device.Container("interfaces")`)
	mustContain(t, output, "return &RouterInterfaces{Container: grp}")
	mustContain(t, output, "type RouterInterfaces struct {")
	mustContain(t, output, "func (r *RouterInterfaces) IfNumber(ctx context.Context) (int64, error) {")
	mustContain(t, output, `return device.Value[int64](ctx, r.Container, "ifNumber")`)

	// Initialisms stay upper case.
	mustContain(t, output, "func (r *Router) IP() *RouterIP {")
}

func TestGenerateTables(t *testing.T) {
	output := generateRouter(t)

	mustContain(t, output, "// IfDescr returns the ifDescr table (1.3.6.1.2.1.2.2.1.2).")
	mustContain(t, output, "func (r *RouterInterfaces) IfDescr(ctx context.Context) (*device.TableProxy, error) {")
	mustNotContain(t, output, "SetIfDescr")
	mustNotContain(t, output, "SetIpAdEntAddr")
}

func TestGenerateEnumIsUntyped(t *testing.T) {
	output := generateRouter(t)

	mustContain(t, output, "func (r *RouterInterfaces) IfOperStatus(ctx context.Context) (*device.TableProxy, error) {")

	schemas := loadYAML(t, `
classes:
  - name: Switch
    fields:
      - name: portState
        oid: 1.3.6.1.4.1.9.5.1.0
        enum: {1: enabled, 2: disabled}
`)
	output, err := Generate(schemas, "netdev", "switch.yaml")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	mustContain(t, output, "func (s *Switch) PortState(ctx context.Context) (any, error) {")
	mustContain(t, output, "func (s *Switch) SetPortState(ctx context.Context, value any) error {")
}

func TestGenerateComputedGroup(t *testing.T) {
	r := schema.NewRegistry()
	s, err := r.Register(&schema.Class{
		Name: "Probe",
		Groups: []*schema.Group{
			schema.NewComputedGroup("health", schema.Property{
				Name: "healthy",
				Compute: func(context.Context, schema.Scope) (any, error) {
					return true, nil
				},
			}),
		},
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	output, err := Generate([]*schema.Schema{s}, "netdev", "probe")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	mustContain(t, output, "// Healthy computes healthy.")
	mustContain(t, output, "func (p *ProbeHealth) Healthy(ctx context.Context) (any, error) {")
	mustNotContain(t, output, "SetHealthy")
}

func TestGenerateMethodClash(t *testing.T) {
	schemas := loadYAML(t, `
classes:
  - name: Odd
    fields:
      - {name: if_index, oid: 1.3.6.1.2.1.2.2.1.1.1, codec: integer}
      - {name: ifIndex, oid: 1.3.6.1.2.1.2.2.1.1.2, codec: integer}
`)
	_, err := Generate(schemas, "netdev", "odd.yaml")
	if err == nil {
		t.Fatal("expected clash error")
	}
	mustContain(t, err.Error(), "generated method IfIndex clashes")
}

func TestGenerateReservedName(t *testing.T) {
	schemas := loadYAML(t, `
classes:
  - name: Odd
    fields:
      - {name: device, oid: 1.3.6.1.4.1.1.1.0, codec: string}
`)
	_, err := Generate(schemas, "netdev", "odd.yaml")
	if err == nil {
		t.Fatal("expected clash error")
	}
	mustContain(t, err.Error(), "generated method Device clashes")
}

func TestGenerateTypeClash(t *testing.T) {
	schemas := loadYAML(t, `
classes:
  - name: Router
    groups:
      - name: core
        prefix: 1.3.6.1.4.1.1
        fields:
          - {name: coreTemp, oid: 1.3.6.1.4.1.1.1.0, codec: integer}
  - name: RouterCore
`)
	_, err := Generate(schemas, "netdev", "odd.yaml")
	if err == nil {
		t.Fatal("expected clash error")
	}
	mustContain(t, err.Error(), "generated name RouterCore already used by group Router.core")
}

func TestLoadSchemasOnBuiltins(t *testing.T) {
	path := filepath.Join("testdata", "router.yaml")

	schemas, err := loadSchemas(path, false)
	if err != nil {
		t.Fatalf("loadSchemas failed: %v", err)
	}
	if len(schemas) != 1 || schemas[0].Name() != "EdgeRouter" {
		t.Fatalf("schemas = %v, want [EdgeRouter]", schemas)
	}

	output, err := Generate(schemas, "netdev", "router.yaml")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	// Inherited groups are generated on the derived class.
	mustContain(t, output, "func (e *EdgeRouter) Memory() *EdgeRouterMemory {")
	mustContain(t, output, "func (e *EdgeRouterSystem) SysContact(ctx context.Context) (string, error) {")
	mustContain(t, output, "// Physical location")
}

func TestLoadSchemasAll(t *testing.T) {
	schemas, err := loadSchemas(filepath.Join("testdata", "router.yaml"), true)
	if err != nil {
		t.Fatalf("loadSchemas failed: %v", err)
	}

	names := make([]string, 0, len(schemas))
	for _, s := range schemas {
		names = append(names, s.Name())
	}
	mustContain(t, strings.Join(names, ","), "EdgeRouter")
	mustContain(t, strings.Join(names, ","), "Generic")

	if _, err := Generate(schemas, "netdev", "router.yaml"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
}

func TestGoName(t *testing.T) {
	cases := map[string]string{
		"sysDescr": "SysDescr",
		"cpu_load": "CPULoad",
		"if-index": "IfIndex",
		"ip":       "IP",
		"sysORID":  "SysORID",
		"memory":   "Memory",
	}
	for in, want := range cases {
		if got := goName(in); got != want {
			t.Errorf("goName(%q) = %q, want %q", in, got, want)
		}
	}
}

func mustContain(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Errorf("output does not contain %q\nOutput (first 3000 chars):\n%s", substr, truncate(output, 3000))
	}
}

func mustNotContain(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Errorf("output should not contain %q", substr)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
