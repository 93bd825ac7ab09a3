package wiretype

import (
	"encoding/binary"
	"time"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

const microsecondsPerDay = 24 * 60 * 60 * 1000000

// TimeCodec transcodes a time of day, held as a time.Duration offset from
// midnight, as a signed microsecond count.
type TimeCodec struct{}

func (TimeCodec) OID() uint32 { return TimeOID }

func (TimeCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(time.Duration)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as time", value)
	}

	usec := int64(v / time.Microsecond)
	if usec < 0 || usec > microsecondsPerDay {
		return nil, errors.Errorf("time %v is out of range", v)
	}

	return pgio.AppendInt64(buf, usec), nil
}

func (TimeCodec) Decode(src []byte) (any, error) {
	if len(src) != 8 {
		return nil, &MalformedScalarError{TypeName: "time", Expected: 8, Got: len(src)}
	}

	usec := int64(binary.BigEndian.Uint64(src))
	if usec < 0 || usec > microsecondsPerDay {
		return nil, &MalformedScalarError{TypeName: "time", Expected: -1, Got: len(src)}
	}

	return time.Duration(usec) * time.Microsecond, nil
}
