package wiretype

import (
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
)

// UUIDCodec transcodes uuid.UUID as its 16 raw bytes.
type UUIDCodec struct{}

func (UUIDCodec) OID() uint32 { return UUIDOID }

func (UUIDCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(uuid.UUID)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as uuid", value)
	}

	return append(buf, v.Bytes()...), nil
}

func (UUIDCodec) Decode(src []byte) (any, error) {
	if len(src) != 16 {
		return nil, &MalformedScalarError{TypeName: "uuid", Expected: 16, Got: len(src)}
	}

	v, err := uuid.FromBytes(src)
	if err != nil {
		return nil, err
	}
	return v, nil
}
