package wiretype_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wirepg/wiretype"
)

func TestDateTranscode(t *testing.T) {
	for _, d := range []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		time.Date(1815, 12, 10, 0, 0, 0, 0, time.UTC),
	} {
		require.Equal(t, d, mustTranscode(t, wiretype.TypeDate, d))
	}
}

func TestDateWireBytes(t *testing.T) {
	buf, err := wiretype.DateCodec{}.Encode(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, buf)

	buf, err = wiretype.DateCodec{}.Encode(time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, buf)
}

func TestDateDecodeInfinity(t *testing.T) {
	_, err := wiretype.DateCodec{}.Decode([]byte{0x7f, 0xff, 0xff, 0xff})
	require.Error(t, err)

	_, err = wiretype.DateCodec{}.Decode([]byte{0x80, 0, 0, 0})
	require.Error(t, err)
}

func TestTimeTranscode(t *testing.T) {
	for _, d := range []time.Duration{
		0,
		time.Microsecond,
		12*time.Hour + 34*time.Minute + 56*time.Second + 789012*time.Microsecond,
		24*time.Hour - time.Microsecond,
	} {
		require.Equal(t, d, mustTranscode(t, wiretype.TypeTime, d))
	}
}

func TestTimeEncodeOutOfRange(t *testing.T) {
	_, err := wiretype.TimeCodec{}.Encode(-time.Second, nil)
	require.Error(t, err)

	_, err = wiretype.TimeCodec{}.Encode(25*time.Hour, nil)
	require.Error(t, err)
}

func TestTimestampTranscode(t *testing.T) {
	for _, typ := range []wiretype.Scalar{wiretype.TypeTimestamp, wiretype.TypeTimestamptz} {
		for _, ts := range []time.Time{
			time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 12, 34, 56, 789012000, time.UTC),
			time.Date(1815, 12, 10, 23, 59, 59, 1000, time.UTC),
		} {
			require.Equalf(t, ts, mustTranscode(t, typ, ts), "%s %s", typ, ts)
		}
	}
}

func TestTimestampWireBytes(t *testing.T) {
	c := wiretype.NewMap()
	codec, err := c.PlanCodec(wiretype.TypeTimestamp)
	require.NoError(t, err)

	buf, err := codec.Encode(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, buf)

	// One microsecond past the epoch.
	buf, err = codec.Encode(time.Date(2000, 1, 1, 0, 0, 0, 1000, time.UTC), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, buf)
}

func TestTimestampDecodeInfinity(t *testing.T) {
	c := wiretype.NewMap()
	codec, err := c.PlanCodec(wiretype.TypeTimestamp)
	require.NoError(t, err)

	_, err = codec.Decode([]byte{0x7f, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})
	require.Error(t, err)

	_, err = codec.Decode([]byte{0x80, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)
}

func TestIntervalTranscode(t *testing.T) {
	for _, iv := range []wiretype.Interval{
		{},
		{Microseconds: 1},
		{Microseconds: -5000000, Days: 3, Months: -2},
		{Microseconds: 86399999999, Days: 30, Months: 14},
	} {
		require.Equal(t, iv, mustTranscode(t, wiretype.TypeInterval, iv))
	}
}

func TestIntervalDecodeWrongWidth(t *testing.T) {
	_, err := wiretype.IntervalCodec{}.Decode(make([]byte, 12))

	var malformed *wiretype.MalformedScalarError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 16, malformed.Expected)
}
