package wiretype

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

const (
	secondsPerDay = 86400

	// Day offsets PostgreSQL reserves for infinity and -infinity.
	infinityDayOffset         = math.MaxInt32
	negativeInfinityDayOffset = math.MinInt32
)

// DateCodec transcodes time.Time as a signed count of days from 2000-01-01.
// Values are taken calendar-date-only; decoded values are midnight UTC.
type DateCodec struct{}

func (DateCodec) OID() uint32 { return DateOID }

func (DateCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(time.Time)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as date", value)
	}

	tUnix := time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC).Unix()
	dateEpoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Unix()

	daysSinceDateEpoch := (tUnix - dateEpoch) / secondsPerDay
	return pgio.AppendInt32(buf, int32(daysSinceDateEpoch)), nil
}

func (DateCodec) Decode(src []byte) (any, error) {
	if len(src) != 4 {
		return nil, &MalformedScalarError{TypeName: "date", Expected: 4, Got: len(src)}
	}

	dayOffset := int32(binary.BigEndian.Uint32(src))
	switch dayOffset {
	case infinityDayOffset:
		return nil, errors.New("cannot decode date infinity into time.Time")
	case negativeInfinityDayOffset:
		return nil, errors.New("cannot decode date -infinity into time.Time")
	}

	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, int(dayOffset)), nil
}
