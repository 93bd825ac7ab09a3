package wiretype_test

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wirepg/wiretype"
)

func TestUUIDTranscode(t *testing.T) {
	for _, s := range []string{
		"00000000-0000-0000-0000-000000000000",
		"123e4567-e89b-12d3-a456-426614174000",
	} {
		v := uuid.FromStringOrNil(s)
		require.Equal(t, v, mustTranscode(t, wiretype.TypeUUID, v))
	}
}

func TestUUIDWireBytes(t *testing.T) {
	v := uuid.FromStringOrNil("123e4567-e89b-12d3-a456-426614174000")
	buf, err := wiretype.UUIDCodec{}.Encode(v, nil)
	require.NoError(t, err)
	require.Equal(t, v.Bytes(), buf)
}

func TestUUIDDecodeWrongWidth(t *testing.T) {
	_, err := wiretype.UUIDCodec{}.Decode(make([]byte, 15))

	var malformed *wiretype.MalformedScalarError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, 16, malformed.Expected)
}
