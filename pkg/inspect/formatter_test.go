package inspect

import (
	"context"
	"net"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter/memory"
	"github.com/snmp-orm/snmp-orm-go/pkg/codec"
	"github.com/snmp-orm/snmp-orm-go/pkg/device"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
	"github.com/snmp-orm/snmp-orm-go/pkg/schema"
)

func TestFormatValue(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "null"},
		{"string", "core-1", `"core-1"`},
		{"printable bytes", []byte("eth0"), `"eth0"`},
		{"binary bytes", []byte{0x00, 0xff}, "0x00ff"},
		{"int64", int64(-3), "-3"},
		{"bool", true, "true"},
		{"uptime", 26*time.Hour + 3*time.Minute + 4560*time.Millisecond, "1d 02:03:04.56"},
		{"oid", oid.MustParse("1.3.6.1.4.1.9"), "1.3.6.1.4.1.9"},
		{"mac", net.HardwareAddr{0, 0x1a, 0x2b, 0x3c, 0x4d, 0x5e}, "00:1a:2b:3c:4d:5e"},
		{"ip", netip.MustParseAddr("192.0.2.1"), "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatValue(tt.value); got != tt.expected {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestFormatTimeTicks(t *testing.T) {
	if got := FormatTimeTicks(90 * time.Second); got != "00:01:30.00" {
		t.Errorf("FormatTimeTicks(90s) = %q", got)
	}
}

func testDevice(t *testing.T) *device.Device {
	t.Helper()
	s, err := schema.Build(&schema.Class{
		Name:    "Demo",
		ClassID: oid.MustParse("1.3.6.1.4.1.99"),
		Fields:  []*schema.Field{schema.NewField("sysName", oid.MustParse("1.3.6.1.2.1.1.5.0"), codec.String)},
		Groups: []*schema.Group{
			schema.NewGroup("system", oid.MustParse("1.3.6.1.2.1.1"),
				schema.NewField("sysName", oid.MustParse("1.3.6.1.2.1.1.5.0"), codec.String),
				schema.NewTableField("sysORDescr", oid.MustParse("1.3.6.1.2.1.1.9.1.3"), codec.String),
			),
			schema.NewComputedGroup("info", schema.Property{Name: "vendor"}),
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	agent := memory.MustNew(map[string]any{
		"1.3.6.1.2.1.1.5.0":     "sw1",
		"1.3.6.1.2.1.1.9.1.3.1": "SNMPv2-MIB",
		"1.3.6.1.2.1.1.9.1.3.2": "IF-MIB",
	})
	d, err := device.New("h", s, device.WithAdapter(agent))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestFormatEntries(t *testing.T) {
	d := testDevice(t)
	system, _ := d.Container("system")
	entries, err := system.Walk(context.Background())
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}

	f := NewFormatter()
	want := `  sysName: "sw1"
  sysORDescr: (2 rows)
    [1] "SNMPv2-MIB"
    [2] "IF-MIB"
`
	if got := f.FormatEntries(system.Group(), entries); got != want {
		t.Errorf("FormatEntries() =\n%s\nwant\n%s", got, want)
	}

	f.ShowOIDs = true
	if got := f.FormatEntries(system.Group(), entries); !strings.Contains(got, "sysName [1.3.6.1.2.1.1.5.0]") {
		t.Errorf("FormatEntries() with OIDs missing oid:\n%s", got)
	}

	if got := f.FormatEntries(nil, nil); got != "  (no values)\n" {
		t.Errorf("FormatEntries(empty) = %q", got)
	}
}

func TestFormatTableProxy(t *testing.T) {
	d := testDevice(t)
	ctx := context.Background()
	v, err := d.Get(ctx, "system.sysORDescr")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	proxy := v.(*device.TableProxy)

	f := NewFormatter()
	if got := f.FormatValue(proxy); got != "<table sysORDescr>" {
		t.Errorf("unloaded proxy = %q", got)
	}

	rows, err := proxy.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if got := f.FormatValue(rows); got != `{1="SNMPv2-MIB", 2="IF-MIB"}` {
		t.Errorf("rows = %q", got)
	}
	if got := f.FormatValue(proxy); got != "[1:SNMPv2-MIB 2:IF-MIB]" {
		t.Errorf("loaded proxy = %q", got)
	}
}

func TestFormatSchema(t *testing.T) {
	d := testDevice(t)
	f := NewFormatter()
	f.ShowOIDs = true

	want := `Demo (classId 1.3.6.1.4.1.99)
  lineage: Demo
  scalar sysName [1.3.6.1.2.1.1.5.0]
  group system [1.3.6.1.2.1.1]
    scalar sysName [1.3.6.1.2.1.1.5.0]
    table sysORDescr [1.3.6.1.2.1.1.9.1.3]
  group info (computed)
    vendor
`
	if got := f.FormatSchema(d.Schema()); got != want {
		t.Errorf("FormatSchema() =\n%s\nwant\n%s", got, want)
	}
}
