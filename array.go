package wiretype

import (
	"encoding/binary"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

// The array wire format is a header (number of dimensions, a contains-null
// flag, the element type OID, and a length plus lower bound per dimension)
// followed by the elements flattened in row-major order, each length-prefixed
// or -1 for NULL. See PostgreSQL's arrayfuncs.c (array_send). Lower bounds
// are always written as 1.

// ArrayCodec transcodes []any as an array of a homogeneous element type.
// A nil Shape accepts any length and records it on the wire; a non-nil Shape
// declares fixed, possibly multi-dimensional bounds, with values supplied as
// nested []any in row-major order.
type ArrayCodec struct {
	Element    FieldCodec
	ElementOID uint32
	Shape      []int32

	oid uint32
}

func (c *ArrayCodec) OID() uint32 { return c.oid }

func (c *ArrayCodec) Encode(value any, buf []byte) ([]byte, error) {
	seq, ok := value.([]any)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as array", value)
	}

	var dims []int32
	var elements []any
	if c.Shape != nil {
		var err error
		elements, err = flattenFixed(seq, c.Shape, make([]any, 0, cardinality(c.Shape)))
		if err != nil {
			return nil, err
		}
		dims = c.Shape
	} else {
		elements = seq
		if len(seq) > 0 {
			dims = []int32{int32(len(seq))}
		}
	}
	if cardinality(dims) == 0 {
		dims = nil
	}

	// Validate element nullness up front so nothing is written for a
	// rejected value.
	containsNull := false
	for i, elem := range elements {
		if elem == nil {
			if !c.Element.Nullable {
				return nil, errors.Wrapf(&UnexpectedNullError{}, "array element %d", i)
			}
			containsNull = true
		}
	}

	buf = pgio.AppendInt32(buf, int32(len(dims)))
	if containsNull {
		buf = pgio.AppendInt32(buf, 1)
	} else {
		buf = pgio.AppendInt32(buf, 0)
	}
	buf = pgio.AppendUint32(buf, c.ElementOID)
	for _, d := range dims {
		buf = pgio.AppendInt32(buf, d)
		buf = pgio.AppendInt32(buf, 1)
	}

	for i, elem := range elements {
		if elem == nil {
			buf = pgio.AppendInt32(buf, -1)
			continue
		}

		sp := len(buf)
		buf = pgio.AppendInt32(buf, -1)
		var err error
		buf, err = c.Element.Codec.Encode(elem, buf)
		if err != nil {
			return nil, errors.Wrapf(err, "array element %d", i)
		}
		pgio.SetInt32(buf[sp:], int32(len(buf[sp:])-4))
	}

	return buf, nil
}

func (c *ArrayCodec) Decode(src []byte) (any, error) {
	if len(src) < 12 {
		return nil, &MalformedScalarError{TypeName: "array", Expected: -1, Got: len(src)}
	}

	rp := 0
	numDims := int(int32(binary.BigEndian.Uint32(src[rp:])))
	rp += 4
	rp += 4 // contains-null flag, implied by the element payloads
	elementOID := binary.BigEndian.Uint32(src[rp:])
	rp += 4

	if c.ElementOID != 0 && elementOID != c.ElementOID {
		return nil, &TypeMismatchError{Expected: c.ElementOID, Got: elementOID}
	}

	if numDims < 0 || len(src[rp:]) < numDims*8 {
		return nil, &MalformedScalarError{TypeName: "array", Expected: -1, Got: len(src)}
	}
	dims := make([]int32, numDims)
	for i := range dims {
		dims[i] = int32(binary.BigEndian.Uint32(src[rp:]))
		rp += 4
		rp += 4 // lower bound
		if dims[i] < 0 {
			return nil, &MalformedScalarError{TypeName: "array", Expected: -1, Got: len(src)}
		}
	}

	if c.Shape != nil && !dimsMatch(c.Shape, dims) {
		return nil, &ArrayShapeError{Expected: c.Shape, Got: dims}
	}

	// Every element costs at least its 4 byte length prefix, so the payload
	// bounds the element count the header may declare. Checking after each
	// multiply also keeps the product from overflowing.
	count := 0
	if numDims > 0 {
		count = 1
		for _, d := range dims {
			count *= int(d)
			if count > len(src[rp:])/4 {
				return nil, &MalformedScalarError{TypeName: "array", Expected: -1, Got: len(src)}
			}
		}
	}
	flat := make([]any, 0, count)
	for i := 0; i < count; i++ {
		if len(src[rp:]) < 4 {
			return nil, &MalformedScalarError{TypeName: "array", Expected: -1, Got: len(src)}
		}
		elemLen := int(int32(binary.BigEndian.Uint32(src[rp:])))
		rp += 4

		var elemSrc []byte
		if elemLen >= 0 {
			if len(src[rp:]) < elemLen {
				return nil, &MalformedScalarError{TypeName: "array", Expected: -1, Got: len(src)}
			}
			elemSrc = src[rp : rp+elemLen]
			rp += elemLen
		}

		v, err := c.Element.Decode(elemSrc)
		if err != nil {
			return nil, errors.Wrapf(err, "array element %d", i)
		}
		flat = append(flat, v)
	}

	if rp != len(src) {
		return nil, &MalformedScalarError{TypeName: "array", Expected: -1, Got: len(src)}
	}

	if len(dims) <= 1 {
		return flat, nil
	}
	return nestElements(flat, dims), nil
}

// flattenFixed validates seq against the declared shape and appends its
// leaves to out in row-major order.
func flattenFixed(seq []any, shape []int32, out []any) ([]any, error) {
	if int32(len(seq)) != shape[0] {
		return nil, &ArrayShapeError{Expected: shape, Got: []int32{int32(len(seq))}}
	}

	if len(shape) == 1 {
		return append(out, seq...), nil
	}

	for _, sub := range seq {
		inner, ok := sub.([]any)
		if !ok {
			return nil, errors.Errorf("expected nested []any for %d remaining array dimensions, got %T", len(shape), sub)
		}
		var err error
		out, err = flattenFixed(inner, shape[1:], out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// nestElements rebuilds the nested sequence for a multi-dimensional array:
// the outermost dimension takes dims[0] sub-arrays of the remaining
// dimensions.
func nestElements(flat []any, dims []int32) []any {
	if len(dims) == 1 {
		return flat
	}

	stride := cardinality(dims[1:])
	out := make([]any, 0, dims[0])
	for i := 0; i < int(dims[0]); i++ {
		out = append(out, any(nestElements(flat[i*stride:(i+1)*stride], dims[1:])))
	}
	return out
}

func cardinality(dims []int32) int {
	if len(dims) == 0 {
		return 0
	}

	elementCount := 1
	for _, d := range dims {
		elementCount *= int(d)
	}
	return elementCount
}

func dimsMatch(shape, dims []int32) bool {
	if len(dims) == 0 {
		return cardinality(shape) == 0
	}
	if len(dims) != len(shape) {
		return false
	}
	for i := range dims {
		if dims[i] != shape[i] {
			return false
		}
	}
	return true
}
