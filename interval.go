package wiretype

import (
	"encoding/binary"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

// Interval is the application value for the interval type. Microseconds,
// days, and months are carried independently, as on the wire; a day is not a
// fixed number of microseconds and a month is not a fixed number of days.
type Interval struct {
	Microseconds int64
	Days         int32
	Months       int32
}

// IntervalCodec transcodes Interval as 16 wire bytes: microseconds, days,
// months.
type IntervalCodec struct{}

func (IntervalCodec) OID() uint32 { return IntervalOID }

func (IntervalCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(Interval)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as interval", value)
	}

	buf = pgio.AppendInt64(buf, v.Microseconds)
	buf = pgio.AppendInt32(buf, v.Days)
	buf = pgio.AppendInt32(buf, v.Months)
	return buf, nil
}

func (IntervalCodec) Decode(src []byte) (any, error) {
	if len(src) != 16 {
		return nil, &MalformedScalarError{TypeName: "interval", Expected: 16, Got: len(src)}
	}

	return Interval{
		Microseconds: int64(binary.BigEndian.Uint64(src)),
		Days:         int32(binary.BigEndian.Uint32(src[8:])),
		Months:       int32(binary.BigEndian.Uint32(src[12:])),
	}, nil
}
