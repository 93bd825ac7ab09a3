package wiretype

import (
	"encoding/binary"
	"math"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

// Float4Codec transcodes float32 as its IEEE 754 bits in network byte order.
type Float4Codec struct{}

func (Float4Codec) OID() uint32 { return Float4OID }

func (Float4Codec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(float32)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as float4", value)
	}

	return pgio.AppendUint32(buf, math.Float32bits(v)), nil
}

func (Float4Codec) Decode(src []byte) (any, error) {
	if len(src) != 4 {
		return nil, &MalformedScalarError{TypeName: "float4", Expected: 4, Got: len(src)}
	}

	return math.Float32frombits(binary.BigEndian.Uint32(src)), nil
}

// Float8Codec transcodes float64 as its IEEE 754 bits in network byte order.
type Float8Codec struct{}

func (Float8Codec) OID() uint32 { return Float8OID }

func (Float8Codec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(float64)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as float8", value)
	}

	return pgio.AppendUint64(buf, math.Float64bits(v)), nil
}

func (Float8Codec) Decode(src []byte) (any, error) {
	if len(src) != 8 {
		return nil, &MalformedScalarError{TypeName: "float8", Expected: 8, Got: len(src)}
	}

	return math.Float64frombits(binary.BigEndian.Uint64(src)), nil
}
