package wiretype

import (
	"github.com/pkg/errors"
)

// BoolCodec transcodes bool as a single wire byte.
type BoolCodec struct{}

func (BoolCodec) OID() uint32 { return BoolOID }

func (BoolCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(bool)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as bool", value)
	}

	if v {
		return append(buf, 1), nil
	}
	return append(buf, 0), nil
}

func (BoolCodec) Decode(src []byte) (any, error) {
	if len(src) != 1 {
		return nil, &MalformedScalarError{TypeName: "bool", Expected: 1, Got: len(src)}
	}

	return src[0] == 1, nil
}
