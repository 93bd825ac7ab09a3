package wiretype_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wirepg/wiretype"
)

func moodType() wiretype.EnumType {
	return wiretype.EnumType{Name: "mood", Labels: []string{"sad", "ok", "happy"}}
}

func TestEnumTranscodeEveryLabel(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("mood", 16385)

	codec, err := m.PlanCodec(moodType())
	require.NoError(t, err)
	require.EqualValues(t, 16385, codec.OID())

	for _, label := range moodType().Labels {
		buf, err := codec.Encode(label, nil)
		require.NoError(t, err)
		require.Equal(t, []byte(label), buf)

		got, err := codec.Decode(buf)
		require.NoError(t, err)
		require.Equal(t, label, got)
	}
}

func TestEnumUnknownLabel(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("mood", 16385)

	codec, err := m.PlanCodec(moodType())
	require.NoError(t, err)

	var unknown *wiretype.UnknownEnumLabelError

	_, err = codec.Encode("angry", nil)
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "angry", unknown.Label)

	_, err = codec.Decode([]byte("angry"))
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "angry", unknown.Label)
	require.Equal(t, "mood", unknown.TypeName)
}

func TestEnumInsideArray(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterArrayType("mood", 16386, 16385)

	codec, err := m.PlanCodec(wiretype.ArrayType{Elem: wiretype.Null(moodType())})
	require.NoError(t, err)
	require.EqualValues(t, 16386, codec.OID())

	values := []any{"happy", nil, "sad"}

	buf, err := codec.Encode(values, nil)
	require.NoError(t, err)

	got, err := codec.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, got)
}
