package wiretype

import (
	"github.com/pkg/errors"
)

// TextCodec transcodes string as raw bytes with no escaping. It serves both
// the text and varchar types, which share a wire representation.
type TextCodec struct {
	name string
	oid  uint32
}

func (c TextCodec) OID() uint32 { return c.oid }

func (c TextCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(string)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as %s", value, c.name)
	}

	return append(buf, v...), nil
}

func (c TextCodec) Decode(src []byte) (any, error) {
	return string(src), nil
}
