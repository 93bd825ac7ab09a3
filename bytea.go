package wiretype

import (
	"github.com/pkg/errors"
)

// ByteaCodec transcodes []byte as raw bytes with no escaping.
type ByteaCodec struct{}

func (ByteaCodec) OID() uint32 { return ByteaOID }

func (ByteaCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.([]byte)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as bytea", value)
	}

	return append(buf, v...), nil
}

func (ByteaCodec) Decode(src []byte) (any, error) {
	// src is borrowed, the returned value is not.
	out := make([]byte, len(src))
	copy(out, src)
	return out, nil
}
