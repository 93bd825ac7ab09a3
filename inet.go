package wiretype

import (
	"net"

	"github.com/pkg/errors"
)

// PostgreSQL address families. The IPv6 family is AF_INET + 1, regardless of
// the host's own AF_INET6 value.
const (
	inetFamilyIPv4 = 2
	inetFamilyIPv6 = 3
)

// InetCodec transcodes *net.IPNet as family, prefix bits, a cidr flag, and
// the raw address bytes.
type InetCodec struct{}

func (InetCodec) OID() uint32 { return InetOID }

func (InetCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(*net.IPNet)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as inet", value)
	}

	ip := v.IP
	if ipv4 := ip.To4(); ipv4 != nil {
		ip = ipv4
	}

	var family byte
	switch len(ip) {
	case net.IPv4len:
		family = inetFamilyIPv4
	case net.IPv6len:
		family = inetFamilyIPv6
	default:
		return nil, errors.Errorf("invalid IP length %d for inet", len(ip))
	}

	ones, _ := v.Mask.Size()

	buf = append(buf, family)
	buf = append(buf, byte(ones))
	buf = append(buf, 0) // is_cidr, informational only
	buf = append(buf, byte(len(ip)))
	return append(buf, ip...), nil
}

func (InetCodec) Decode(src []byte) (any, error) {
	if len(src) != 8 && len(src) != 20 {
		return nil, &MalformedScalarError{TypeName: "inet", Expected: -1, Got: len(src)}
	}

	bits := int(src[1])
	addressLength := int(src[3])
	if len(src[4:]) != addressLength {
		return nil, &MalformedScalarError{TypeName: "inet", Expected: -1, Got: len(src)}
	}
	if bits > addressLength*8 {
		return nil, &MalformedScalarError{TypeName: "inet", Expected: -1, Got: len(src)}
	}

	var ipnet net.IPNet
	ipnet.IP = make(net.IP, addressLength)
	copy(ipnet.IP, src[4:])
	if ipv4 := ipnet.IP.To4(); ipv4 != nil && bits <= 32 {
		ipnet.IP = ipv4
	}
	ipnet.Mask = net.CIDRMask(bits, len(ipnet.IP)*8)

	return &ipnet, nil
}
