package wiretype

import (
	"encoding/binary"
	"math"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

// Int2Codec transcodes int16 as 2 bytes in network byte order.
type Int2Codec struct{}

func (Int2Codec) OID() uint32 { return Int2OID }

func (Int2Codec) Encode(value any, buf []byte) ([]byte, error) {
	var n int16
	switch v := value.(type) {
	case int16:
		n = v
	case int:
		if v > math.MaxInt16 {
			return nil, errors.Errorf("%d is greater than maximum value for int2", v)
		}
		if v < math.MinInt16 {
			return nil, errors.Errorf("%d is less than minimum value for int2", v)
		}
		n = int16(v)
	default:
		return nil, errors.Errorf("cannot encode %T as int2", value)
	}

	return pgio.AppendInt16(buf, n), nil
}

func (Int2Codec) Decode(src []byte) (any, error) {
	if len(src) != 2 {
		return nil, &MalformedScalarError{TypeName: "int2", Expected: 2, Got: len(src)}
	}

	return int16(binary.BigEndian.Uint16(src)), nil
}

// Int4Codec transcodes int32 as 4 bytes in network byte order.
type Int4Codec struct{}

func (Int4Codec) OID() uint32 { return Int4OID }

func (Int4Codec) Encode(value any, buf []byte) ([]byte, error) {
	var n int32
	switch v := value.(type) {
	case int32:
		n = v
	case int:
		if v > math.MaxInt32 {
			return nil, errors.Errorf("%d is greater than maximum value for int4", v)
		}
		if v < math.MinInt32 {
			return nil, errors.Errorf("%d is less than minimum value for int4", v)
		}
		n = int32(v)
	default:
		return nil, errors.Errorf("cannot encode %T as int4", value)
	}

	return pgio.AppendInt32(buf, n), nil
}

func (Int4Codec) Decode(src []byte) (any, error) {
	if len(src) != 4 {
		return nil, &MalformedScalarError{TypeName: "int4", Expected: 4, Got: len(src)}
	}

	return int32(binary.BigEndian.Uint32(src)), nil
}

// Int8Codec transcodes int64 as 8 bytes in network byte order.
type Int8Codec struct{}

func (Int8Codec) OID() uint32 { return Int8OID }

func (Int8Codec) Encode(value any, buf []byte) ([]byte, error) {
	var n int64
	switch v := value.(type) {
	case int64:
		n = v
	case int:
		n = int64(v)
	default:
		return nil, errors.Errorf("cannot encode %T as int8", value)
	}

	return pgio.AppendInt64(buf, n), nil
}

func (Int8Codec) Decode(src []byte) (any, error) {
	if len(src) != 8 {
		return nil, &MalformedScalarError{TypeName: "int8", Expected: 8, Got: len(src)}
	}

	return int64(binary.BigEndian.Uint64(src)), nil
}
