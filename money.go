package wiretype

import (
	"encoding/binary"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

// MoneyCodec transcodes money as a signed 8 byte count of the currency's
// minor unit (cents for a two-decimal currency).
type MoneyCodec struct{}

func (MoneyCodec) OID() uint32 { return MoneyOID }

func (MoneyCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(int64)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as money", value)
	}

	return pgio.AppendInt64(buf, v), nil
}

func (MoneyCodec) Decode(src []byte) (any, error) {
	if len(src) != 8 {
		return nil, &MalformedScalarError{TypeName: "money", Expected: 8, Got: len(src)}
	}

	return int64(binary.BigEndian.Uint64(src)), nil
}
