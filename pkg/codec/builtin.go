package codec

import (
	"fmt"
	"math"
	"net"
	"net/netip"
	"time"

	"github.com/spf13/cast"

	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

// Built-in codecs.
var (
	Raw        Codec = Func{}
	String     Codec = stringCodec{}
	Integer    Codec = integerCodec{}
	Unsigned   Codec = unsignedCodec{}
	TruthValue Codec = truthValueCodec{}
	TimeTicks  Codec = timeTicksCodec{}
	ObjectID   Codec = objectIDCodec{}
	IPAddress  Codec = ipAddressCodec{}
	MACAddress Codec = macAddressCodec{}
)

func init() {
	Register("raw", Raw)
	Register("string", String)
	Register("integer", Integer)
	Register("unsigned", Unsigned)
	Register("counter", Unsigned)
	Register("gauge", Unsigned)
	Register("truthvalue", TruthValue)
	Register("timeticks", TimeTicks)
	Register("oid", ObjectID)
	Register("ipaddress", IPAddress)
	Register("macaddress", MACAddress)
}

// stringCodec handles DisplayString and other octet strings meant as text.
type stringCodec struct{}

func (stringCodec) Decode(raw any) (any, error) {
	s, err := cast.ToStringE(raw)
	if err != nil {
		return nil, decodeError("string", raw, err)
	}
	return s, nil
}

func (stringCodec) Encode(value any) (any, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, encodeError("string", value, err)
	}
	return s, nil
}

// integerCodec handles INTEGER / Integer32.
type integerCodec struct{}

func (integerCodec) Decode(raw any) (any, error) {
	v, err := toInt64(raw)
	if err != nil {
		return nil, decodeError("integer", raw, err)
	}
	return v, nil
}

func (integerCodec) Encode(value any) (any, error) {
	v, err := toInt64(value)
	if err != nil {
		return nil, encodeError("integer", value, err)
	}
	return int(v), nil
}

// unsignedCodec handles Counter32/64, Gauge32 and Unsigned32.
type unsignedCodec struct{}

func (unsignedCodec) Decode(raw any) (any, error) {
	v, err := toUint64(raw)
	if err != nil {
		return nil, decodeError("unsigned", raw, err)
	}
	return v, nil
}

func (unsignedCodec) Encode(value any) (any, error) {
	v, err := toUint64(value)
	if err != nil {
		return nil, encodeError("unsigned", value, err)
	}
	return uint(v), nil
}

// truthValueCodec handles the SNMPv2-TC TruthValue: 1 is true, 2 is false.
type truthValueCodec struct{}

func (truthValueCodec) Decode(raw any) (any, error) {
	v, err := toInt64(raw)
	if err != nil {
		return nil, decodeError("truthvalue", raw, err)
	}
	switch v {
	case 1:
		return true, nil
	case 2:
		return false, nil
	default:
		return nil, decodeError("truthvalue", raw, fmt.Errorf("out of range"))
	}
}

func (truthValueCodec) Encode(value any) (any, error) {
	b, err := cast.ToBoolE(value)
	if err != nil {
		return nil, encodeError("truthvalue", value, err)
	}
	if b {
		return 1, nil
	}
	return 2, nil
}

// timeTicksCodec converts hundredths of a second to time.Duration.
type timeTicksCodec struct{}

const tick = 10 * time.Millisecond

func (timeTicksCodec) Decode(raw any) (any, error) {
	v, err := toUint64(raw)
	if err != nil {
		return nil, decodeError("timeticks", raw, err)
	}
	return time.Duration(v) * tick, nil
}

func (timeTicksCodec) Encode(value any) (any, error) {
	if d, ok := value.(time.Duration); ok {
		if d < 0 {
			return nil, encodeError("timeticks", value, fmt.Errorf("negative duration"))
		}
		if d/tick > math.MaxUint32 {
			return nil, encodeError("timeticks", value, fmt.Errorf("exceeds %d ticks", uint32(math.MaxUint32)))
		}
		return uint32(d / tick), nil
	}
	v, err := toInt64(value)
	if err != nil {
		return nil, encodeError("timeticks", value, err)
	}
	if v < 0 || v > math.MaxUint32 {
		return nil, encodeError("timeticks", value, fmt.Errorf("out of range"))
	}
	return uint32(v), nil
}

// objectIDCodec handles OBJECT IDENTIFIER values.
type objectIDCodec struct{}

func (objectIDCodec) Decode(raw any) (any, error) {
	o, err := toOID(raw)
	if err != nil {
		return nil, decodeError("oid", raw, err)
	}
	return o, nil
}

func (objectIDCodec) Encode(value any) (any, error) {
	o, err := toOID(value)
	if err != nil {
		return nil, encodeError("oid", value, err)
	}
	return o, nil
}

func toOID(v any) (oid.OID, error) {
	switch x := v.(type) {
	case oid.OID:
		return x.Clone(), nil
	case []uint32:
		return oid.OID(x).Clone(), nil
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		return oid.Parse(s)
	}
}

// ipAddressCodec handles IpAddress values as netip.Addr.
type ipAddressCodec struct{}

func (ipAddressCodec) Decode(raw any) (any, error) {
	switch x := raw.(type) {
	case netip.Addr:
		return x, nil
	case []byte:
		addr, ok := netip.AddrFromSlice(x)
		if !ok {
			return nil, decodeError("ipaddress", raw, fmt.Errorf("bad length %d", len(x)))
		}
		return addr.Unmap(), nil
	default:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return nil, decodeError("ipaddress", raw, err)
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, decodeError("ipaddress", raw, err)
		}
		return addr, nil
	}
}

func (ipAddressCodec) Encode(value any) (any, error) {
	switch x := value.(type) {
	case netip.Addr:
		return x.String(), nil
	case net.IP:
		return x.String(), nil
	default:
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, encodeError("ipaddress", value, err)
		}
		if _, err := netip.ParseAddr(s); err != nil {
			return nil, encodeError("ipaddress", value, err)
		}
		return s, nil
	}
}

// macAddressCodec handles PhysAddress / MacAddress octet strings.
type macAddressCodec struct{}

func (macAddressCodec) Decode(raw any) (any, error) {
	switch x := raw.(type) {
	case []byte:
		return net.HardwareAddr(x), nil
	case net.HardwareAddr:
		return x, nil
	default:
		s, err := cast.ToStringE(raw)
		if err != nil {
			return nil, decodeError("macaddress", raw, err)
		}
		hw, err := net.ParseMAC(s)
		if err != nil {
			// Agents commonly return the six raw octets as a string.
			return net.HardwareAddr(s), nil
		}
		return hw, nil
	}
}

func (macAddressCodec) Encode(value any) (any, error) {
	switch x := value.(type) {
	case net.HardwareAddr:
		return []byte(x), nil
	case []byte:
		return x, nil
	default:
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, encodeError("macaddress", value, err)
		}
		hw, err := net.ParseMAC(s)
		if err != nil {
			return nil, encodeError("macaddress", value, err)
		}
		return []byte(hw), nil
	}
}
