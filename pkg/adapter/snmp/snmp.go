// Package snmp implements adapter.Adapter over SNMP v1/v2c using gosnmp.
package snmp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// Defaults for absent params.
const (
	DefaultCommunity = "public"
	DefaultPort      = 161
	DefaultTimeout   = 2 * time.Second
	DefaultRetries   = 1
)

// Typed forces the BER type of a value written with Set.
type Typed struct {
	Type  gosnmp.Asn1BER
	Value any
}

// Config is the resolved connection configuration of an Adapter.
type Config struct {
	Community string
	Version   gosnmp.SnmpVersion
	Port      uint16
	Timeout   time.Duration
	Retries   int
	MaxOids   int
}

// ParseConfig resolves params (community, version, port, timeout,
// retries, maxOids) against the defaults.
func ParseConfig(params adapter.Params) (Config, error) {
	cfg := Config{Version: gosnmp.Version2c}
	var err error

	if cfg.Community, err = params.String("community", DefaultCommunity); err != nil {
		return cfg, err
	}

	version, err := params.String("version", "2c")
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(version) {
	case "1", "v1":
		cfg.Version = gosnmp.Version1
	case "2", "2c", "v2c":
		cfg.Version = gosnmp.Version2c
	default:
		return cfg, fmt.Errorf("param version: unsupported SNMP version %q", version)
	}

	port, err := params.Int("port", DefaultPort)
	if err != nil {
		return cfg, err
	}
	if port <= 0 || port > 65535 {
		return cfg, fmt.Errorf("param port: %d out of range", port)
	}
	cfg.Port = uint16(port)

	if cfg.Timeout, err = params.Duration("timeout", DefaultTimeout); err != nil {
		return cfg, err
	}
	if cfg.Retries, err = params.Int("retries", DefaultRetries); err != nil {
		return cfg, err
	}
	if cfg.MaxOids, err = params.Int("maxOids", gosnmp.MaxOids); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Adapter talks to one agent over UDP. Operations are serialized.
type Adapter struct {
	mu     sync.Mutex
	client *gosnmp.GoSNMP
	closed bool
}

// New parses params and connects to host.
func New(host string, params adapter.Params) (*Adapter, error) {
	cfg, err := ParseConfig(params)
	if err != nil {
		return nil, err
	}

	client := &gosnmp.GoSNMP{
		Target:    host,
		Port:      cfg.Port,
		Community: cfg.Community,
		Version:   cfg.Version,
		Timeout:   cfg.Timeout,
		Retries:   cfg.Retries,
		MaxOids:   cfg.MaxOids,
		Context:   context.Background(),
	}
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", host, err)
	}
	return &Adapter{client: client}, nil
}

// Factory creates SNMP adapters; it satisfies adapter.Factory.
func Factory(host string, params adapter.Params) (adapter.Adapter, error) {
	return New(host, params)
}

// Get implements adapter.Adapter.
func (a *Adapter) Get(ctx context.Context, o oid.OID) (any, error) {
	pdu, err := a.do(ctx, func(c *gosnmp.GoSNMP) (*gosnmp.SnmpPacket, error) {
		return c.Get([]string{"." + o.String()})
	})
	if err != nil {
		return nil, mapError(err, adapter.ErrNoSuchObject)
	}
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
		return nil, fmt.Errorf("%w: %s", adapter.ErrNoSuchObject, o)
	}
	return normalize(pdu)
}

// GetNext implements adapter.Adapter.
func (a *Adapter) GetNext(ctx context.Context, o oid.OID) (oid.OID, any, error) {
	pdu, err := a.do(ctx, func(c *gosnmp.GoSNMP) (*gosnmp.SnmpPacket, error) {
		return c.GetNext([]string{"." + o.String()})
	})
	if err != nil {
		return nil, nil, mapError(err, adapter.ErrEndOfMibView)
	}
	if pdu.Type == gosnmp.EndOfMibView {
		return nil, nil, adapter.ErrEndOfMibView
	}
	next, err := oid.Parse(pdu.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("agent returned bad oid: %w", err)
	}
	v, err := normalize(pdu)
	return next, v, err
}

// Set implements adapter.Adapter.
func (a *Adapter) Set(ctx context.Context, o oid.OID, value any) error {
	pdu, err := toPDU(o, value)
	if err != nil {
		return err
	}
	_, err = a.do(ctx, func(c *gosnmp.GoSNMP) (*gosnmp.SnmpPacket, error) {
		return c.Set([]gosnmp.SnmpPDU{pdu})
	})
	return mapError(err, adapter.ErrNoSuchObject)
}

// Close closes the UDP socket.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	if a.client.Conn == nil {
		return nil
	}
	return a.client.Conn.Close()
}

// errPacket carries a non-zero error-status of a response PDU.
type errPacket struct {
	status gosnmp.SNMPError
	index  uint8
}

func (e *errPacket) Error() string {
	return fmt.Sprintf("agent error %v at index %d", e.status, e.index)
}

func (a *Adapter) do(ctx context.Context, op func(*gosnmp.GoSNMP) (*gosnmp.SnmpPacket, error)) (gosnmp.SnmpPDU, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return gosnmp.SnmpPDU{}, adapter.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return gosnmp.SnmpPDU{}, err
	}

	a.client.Context = ctx
	defer func() { a.client.Context = context.Background() }()

	pkt, err := op(a.client)
	if err != nil {
		return gosnmp.SnmpPDU{}, err
	}
	if pkt.Error != gosnmp.NoError {
		return gosnmp.SnmpPDU{}, &errPacket{status: pkt.Error, index: pkt.ErrorIndex}
	}
	if len(pkt.Variables) == 0 {
		return gosnmp.SnmpPDU{}, errors.New("agent returned no variables")
	}
	return pkt.Variables[0], nil
}

// mapError turns v1 noSuchName answers into notFound.
func mapError(err error, notFound error) error {
	var pe *errPacket
	if errors.As(err, &pe) && pe.status == gosnmp.NoSuchName {
		return fmt.Errorf("%w: %v", notFound, err)
	}
	return err
}

// normalize converts gosnmp values to the forms codecs expect.
func normalize(pdu gosnmp.SnmpPDU) (any, error) {
	switch pdu.Type {
	case gosnmp.ObjectIdentifier:
		s, ok := pdu.Value.(string)
		if !ok {
			return nil, fmt.Errorf("object identifier value of type %T", pdu.Value)
		}
		return oid.Parse(s)
	case gosnmp.Null:
		return nil, nil
	default:
		return pdu.Value, nil
	}
}

// toPDU infers the BER type of value.
func toPDU(o oid.OID, value any) (gosnmp.SnmpPDU, error) {
	pdu := gosnmp.SnmpPDU{Name: "." + o.String()}
	switch v := value.(type) {
	case Typed:
		pdu.Type, pdu.Value = v.Type, v.Value
	case string:
		pdu.Type, pdu.Value = gosnmp.OctetString, v
	case []byte:
		pdu.Type, pdu.Value = gosnmp.OctetString, v
	case int:
		pdu.Type, pdu.Value = gosnmp.Integer, v
	case int32:
		pdu.Type, pdu.Value = gosnmp.Integer, int(v)
	case int64:
		pdu.Type, pdu.Value = gosnmp.Integer, int(v)
	case uint:
		pdu.Type, pdu.Value = gosnmp.Gauge32, v
	case uint32:
		pdu.Type, pdu.Value = gosnmp.Gauge32, uint(v)
	case uint64:
		pdu.Type, pdu.Value = gosnmp.Counter64, v
	case oid.OID:
		pdu.Type, pdu.Value = gosnmp.ObjectIdentifier, "."+v.String()
	case netip.Addr:
		pdu.Type, pdu.Value = gosnmp.IPAddress, v.String()
	case time.Duration:
		ticks := v / (10 * time.Millisecond)
		if ticks < 0 || ticks > math.MaxUint32 {
			return pdu, fmt.Errorf("duration %s out of TimeTicks range", v)
		}
		pdu.Type, pdu.Value = gosnmp.TimeTicks, uint32(ticks)
	case nil:
		pdu.Type = gosnmp.Null
	default:
		return pdu, fmt.Errorf("cannot infer SNMP type of %T", value)
	}
	return pdu, nil
}

var _ adapter.Adapter = (*Adapter)(nil)
