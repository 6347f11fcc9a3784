package mlscrypto

import "encoding/binary"

// Wire encoding shared with the protocol's serialization framework:
// integers are fixed-width big-endian, byte strings are prefixed with an
// MLS variable-length integer (RFC 9420 section 2.1.2). A varint's top two
// bits select a 1, 2, or 4 byte encoding and the minimum-width encoding is
// required on the wire.

const (
	varintMax1 = 1<<6 - 1
	varintMax2 = 1<<14 - 1
	varintMax4 = 1<<30 - 1
)

func appendUint16(b []byte, v uint16) []byte {
	return binary.BigEndian.AppendUint16(b, v)
}

func appendVarint(b []byte, n int) ([]byte, error) {
	switch {
	case n < 0 || n > varintMax4:
		return nil, invalidParameterf("length %d out of varint range", n)
	case n <= varintMax1:
		return append(b, byte(n)), nil
	case n <= varintMax2:
		return binary.BigEndian.AppendUint16(b, uint16(n)|0x4000), nil
	default:
		return binary.BigEndian.AppendUint32(b, uint32(n)|0x80000000), nil
	}
}

func readVarint(b []byte) (n int, rest []byte, err error) {
	if len(b) == 0 {
		return 0, nil, invalidParameterf("truncated varint")
	}
	switch b[0] >> 6 {
	case 0:
		return int(b[0]), b[1:], nil
	case 1:
		if len(b) < 2 {
			return 0, nil, invalidParameterf("truncated varint")
		}
		n = int(binary.BigEndian.Uint16(b[:2]) & 0x3fff)
		if n <= varintMax1 {
			return 0, nil, invalidParameterf("non-minimal varint")
		}
		return n, b[2:], nil
	case 2:
		if len(b) < 4 {
			return 0, nil, invalidParameterf("truncated varint")
		}
		n = int(binary.BigEndian.Uint32(b[:4]) & 0x3fffffff)
		if n <= varintMax2 {
			return 0, nil, invalidParameterf("non-minimal varint")
		}
		return n, b[4:], nil
	default:
		return 0, nil, invalidParameterf("invalid varint prefix")
	}
}

func appendOpaque(b, data []byte) ([]byte, error) {
	b, err := appendVarint(b, len(data))
	if err != nil {
		return nil, err
	}
	return append(b, data...), nil
}

func readOpaque(b []byte) (data, rest []byte, err error) {
	n, rest, err := readVarint(b)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) < n {
		return nil, nil, invalidParameterf("truncated opaque value")
	}
	data = make([]byte, n)
	copy(data, rest[:n])
	return data, rest[n:], nil
}
