package wiretype

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

const microsecFromUnixEpochToY2K = 946684800 * 1000000

// Microsecond offsets PostgreSQL reserves for infinity and -infinity.
const (
	infinityMicrosecondOffset         = math.MaxInt64
	negativeInfinityMicrosecondOffset = math.MinInt64
)

// TimestampCodec transcodes time.Time as a signed microsecond offset from
// 2000-01-01 00:00:00. It serves both timestamp and timestamptz, which share
// a wire representation; decoded values are UTC. Precision beyond one
// microsecond is truncated at encode time, as the wire format cannot carry
// it.
type TimestampCodec struct {
	name string
	oid  uint32
}

func (c TimestampCodec) OID() uint32 { return c.oid }

func (c TimestampCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(time.Time)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as %s", value, c.name)
	}

	microsecSinceUnixEpoch := v.Unix()*1000000 + int64(v.Nanosecond())/1000
	return pgio.AppendInt64(buf, microsecSinceUnixEpoch-microsecFromUnixEpochToY2K), nil
}

func (c TimestampCodec) Decode(src []byte) (any, error) {
	if len(src) != 8 {
		return nil, &MalformedScalarError{TypeName: c.name, Expected: 8, Got: len(src)}
	}

	microsecSinceY2K := int64(binary.BigEndian.Uint64(src))
	switch microsecSinceY2K {
	case infinityMicrosecondOffset:
		return nil, errors.Errorf("cannot decode %s infinity into time.Time", c.name)
	case negativeInfinityMicrosecondOffset:
		return nil, errors.Errorf("cannot decode %s -infinity into time.Time", c.name)
	}

	return time.Unix(
		microsecFromUnixEpochToY2K/1000000+microsecSinceY2K/1000000,
		(microsecSinceY2K%1000000)*1000,
	).UTC(), nil
}
