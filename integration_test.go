package snmporm_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/adapter/memory"
	"github.com/snmp-orm/snmp-orm-go/pkg/device"
	"github.com/snmp-orm/snmp-orm-go/pkg/devices"
	"github.com/snmp-orm/snmp-orm-go/pkg/log"
)

func netSnmpAgent() *memory.Adapter {
	return memory.MustNew(map[string]any{
		"1.3.6.1.2.1.1.1.0":      "Linux edge 6.1.0",
		"1.3.6.1.2.1.1.2.0":      "1.3.6.1.4.1.8072.3.2.10",
		"1.3.6.1.2.1.1.3.0":      12345,
		"1.3.6.1.2.1.1.4.0":      "root@localhost",
		"1.3.6.1.2.1.1.5.0":      "edge",
		"1.3.6.1.2.1.2.1.0":      2,
		"1.3.6.1.2.1.2.2.1.1.1":  1,
		"1.3.6.1.2.1.2.2.1.1.2":  2,
		"1.3.6.1.2.1.2.2.1.2.1":  "lo",
		"1.3.6.1.2.1.2.2.1.2.2":  "eth0",
		"1.3.6.1.2.1.2.2.1.8.1":  1,
		"1.3.6.1.2.1.2.2.1.8.2":  2,
		"1.3.6.1.4.1.2021.4.5.0": 2048000,
		"1.3.6.1.4.1.2021.4.6.0": 512000,
	})
}

func openAgent(t *testing.T, agent *memory.Adapter, opts ...device.Option) *device.Device {
	t.Helper()

	catalog, err := devices.NewCatalog()
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	opts = append(opts, device.WithAdapterFactory(memory.Factory(agent)))
	d, err := catalog.Open(context.Background(), "10.0.0.1", opts...)
	if err != nil {
		t.Fatalf("Failed to open device: %v", err)
	}
	return d
}

// TestE2E_DetectAndRead opens an agent through the catalog and reads
// scalars of the detected vendor class.
func TestE2E_DetectAndRead(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	d := openAgent(t, netSnmpAgent())
	defer d.Close()

	if got := d.Schema().Name(); got != "NetSnmp" {
		t.Fatalf("Detected class = %s, want NetSnmp", got)
	}

	name, err := device.Value[string](ctx, d, "sysName")
	if err != nil {
		t.Fatalf("Failed to read sysName: %v", err)
	}
	if name != "edge" {
		t.Errorf("sysName mismatch: expected edge, got %s", name)
	}

	uptime, err := device.Value[time.Duration](ctx, d, "sysUpTime")
	if err != nil {
		t.Fatalf("Failed to read sysUpTime: %v", err)
	}
	if uptime != 123450*time.Millisecond {
		t.Errorf("sysUpTime mismatch: expected 2m3.45s, got %s", uptime)
	}

	total, err := d.Get(ctx, "memory.memTotalReal")
	if err != nil {
		t.Fatalf("Failed to read memory.memTotalReal: %v", err)
	}
	if total != int64(2048000) {
		t.Errorf("memTotalReal mismatch: expected 2048000, got %v", total)
	}
}

// TestE2E_WalkAndTable walks a group and reads a table both before and
// after loading it.
func TestE2E_WalkAndTable(t *testing.T) {
	ctx := context.Background()

	agent := netSnmpAgent()
	d := openAgent(t, agent)
	defer d.Close()

	interfaces, err := d.Container("interfaces")
	if err != nil {
		t.Fatalf("Failed to get interfaces: %v", err)
	}
	entries, err := interfaces.Walk(ctx)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("Walk returned %d entries, want 4", len(entries))
	}
	if entries[0].Name != "ifNumber" || entries[0].Value != int64(2) {
		t.Errorf("First entry = %+v, want ifNumber=2", entries[0])
	}
	descr, ok := entries[2].Value.(*device.Rows)
	if entries[2].Name != "ifDescr" || !ok {
		t.Fatalf("Third entry = %+v, want ifDescr rows", entries[2])
	}
	if descr.Len() != 2 {
		t.Errorf("ifDescr has %d rows, want 2", descr.Len())
	}

	v, err := d.Get(ctx, "interfaces.ifOperStatus")
	if err != nil {
		t.Fatalf("Failed to get ifOperStatus: %v", err)
	}
	status, ok := v.(*device.TableProxy)
	if !ok {
		t.Fatalf("ifOperStatus is %T, want *device.TableProxy", v)
	}

	agent.ResetCounts()
	got, found, err := status.Get(ctx, 2)
	if err != nil || !found {
		t.Fatalf("Get(2) = %v, %v, %v", got, found, err)
	}
	if got != "down" {
		t.Errorf("ifOperStatus.2 mismatch: expected down, got %v", got)
	}
	if c := agent.Counts(); c.Get != 1 || c.GetNext != 0 {
		t.Errorf("Unloaded lookup used %+v, want a single get", c)
	}

	if err := status.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	agent.ResetCounts()
	got, found, err = status.Get(ctx, 1)
	if err != nil || !found || got != "up" {
		t.Errorf("Get(1) after load = %v, %v, %v", got, found, err)
	}
	if c := agent.Counts(); c.Total() != 0 {
		t.Errorf("Loaded lookup used %+v, want no requests", c)
	}
}

// TestE2E_SetAndTrace writes an attribute through a traced device and
// summarizes the resulting protocol trace.
func TestE2E_SetAndTrace(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	trace := log.NewStreamLogger(&buf)
	d := openAgent(t, netSnmpAgent(), device.WithTrace(trace))

	if err := d.Set(ctx, "system.sysContact", "noc@example.net"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	contact, err := d.Get(ctx, "system.sysContact")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if contact != "noc@example.net" {
		t.Errorf("sysContact mismatch: expected noc@example.net, got %v", contact)
	}

	if err := d.Set(ctx, "system.sysLocation", "Rack 9"); err == nil {
		t.Error("Set of a missing object should fail")
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := d.Get(ctx, "sysName"); err == nil {
		t.Error("Get after Close should fail")
	} else if !errors.Is(err, adapter.ErrClosed) {
		t.Errorf("Get after Close = %v, want adapter.ErrClosed", err)
	}
	trace.Close()

	summary, err := log.Summarize(log.NewStreamReader(&buf, log.Filter{}))
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.Hosts["10.0.0.1"] == 0 {
		t.Errorf("No events recorded for host: %+v", summary.Hosts)
	}
	if len(summary.Connections) != 1 {
		t.Errorf("Trace has %d connections, want 1", len(summary.Connections))
	}

	set := summary.Ops[log.OpSet]
	if set == nil {
		t.Fatal("No SET operations traced")
	}
	if set.Requests != 2 || set.Responses != 1 || set.Errors != 1 {
		t.Errorf("SET stats = %+v, want 2 requests, 1 response, 1 error", *set)
	}
}
