package wiretype_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wirepg/wiretype"
)

func personType() wiretype.CompositeType {
	return wiretype.CompositeType{
		Name: "person",
		Fields: []wiretype.CompositeField{
			{Name: "name", Type: wiretype.NotNull(wiretype.TypeText)},
			{Name: "age", Type: wiretype.NotNull(wiretype.TypeInt4)},
		},
	}
}

func TestCompositeWireBytes(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("person", 16385)

	codec, err := m.PlanCodec(personType())
	require.NoError(t, err)
	require.EqualValues(t, 16385, codec.OID())

	buf, err := codec.Encode([]any{"Faisal", int32(24)}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0, 0, 0, 2, // field count
		0, 0, 0, 25, // text OID
		0, 0, 0, 6,
		'F', 'a', 'i', 's', 'a', 'l',
		0, 0, 0, 23, // int4 OID
		0, 0, 0, 4,
		0, 0, 0, 24,
	}, buf)

	got, err := codec.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, []any{"Faisal", int32(24)}, got)
}

func TestCompositeMixedNullsTranscode(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("sample", 16390)

	codec, err := m.PlanCodec(wiretype.CompositeType{
		Name: "sample",
		Fields: []wiretype.CompositeField{
			{Name: "a", Type: wiretype.Null(wiretype.TypeText)},
			{Name: "b", Type: wiretype.NotNull(wiretype.TypeInt8)},
			{Name: "c", Type: wiretype.Null(wiretype.TypeBool)},
		},
	})
	require.NoError(t, err)

	values := []any{nil, int64(7), true}

	buf, err := codec.Encode(values, nil)
	require.NoError(t, err)

	got, err := codec.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestCompositeEncodeArityMismatch(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("person", 16385)

	codec, err := m.PlanCodec(personType())
	require.NoError(t, err)

	_, err = codec.Encode([]any{"Faisal"}, nil)

	var count *wiretype.FieldCountError
	require.ErrorAs(t, err, &count)
	require.Equal(t, 2, count.Expected)
	require.Equal(t, 1, count.Got)
}

func TestCompositeDecodeFieldCountMismatch(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("person", 16385)
	m.RegisterType("triple", 16386)

	person, err := m.PlanCodec(personType())
	require.NoError(t, err)

	triple, err := m.PlanCodec(wiretype.CompositeType{
		Name: "triple",
		Fields: []wiretype.CompositeField{
			{Name: "name", Type: wiretype.NotNull(wiretype.TypeText)},
			{Name: "age", Type: wiretype.NotNull(wiretype.TypeInt4)},
			{Name: "active", Type: wiretype.NotNull(wiretype.TypeBool)},
		},
	})
	require.NoError(t, err)

	buf, err := person.Encode([]any{"Faisal", int32(24)}, nil)
	require.NoError(t, err)

	_, err = triple.Decode(buf)

	var count *wiretype.FieldCountError
	require.ErrorAs(t, err, &count)
	require.Equal(t, 3, count.Expected)
	require.Equal(t, 2, count.Got)
}

func TestCompositeDecodeFieldTagMismatch(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("person", 16385)
	m.RegisterType("person8", 16387)

	person, err := m.PlanCodec(personType())
	require.NoError(t, err)

	person8, err := m.PlanCodec(wiretype.CompositeType{
		Name: "person8",
		Fields: []wiretype.CompositeField{
			{Name: "name", Type: wiretype.NotNull(wiretype.TypeText)},
			{Name: "age", Type: wiretype.NotNull(wiretype.TypeInt8)},
		},
	})
	require.NoError(t, err)

	buf, err := person.Encode([]any{"Faisal", int32(24)}, nil)
	require.NoError(t, err)

	_, err = person8.Decode(buf)

	var mismatch *wiretype.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "age", mismatch.Field)
	require.EqualValues(t, wiretype.Int8OID, mismatch.Expected)
	require.EqualValues(t, wiretype.Int4OID, mismatch.Got)
}

func TestCompositeNotNullFieldRejectsNil(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("person", 16385)

	codec, err := m.PlanCodec(personType())
	require.NoError(t, err)

	_, err = codec.Encode([]any{nil, int32(24)}, nil)

	var unexpectedNull *wiretype.UnexpectedNullError
	require.ErrorAs(t, err, &unexpectedNull)
	require.Equal(t, "name", unexpectedNull.Field)
}

func TestCompositeOfArray(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("tagged", 16391)

	codec, err := m.PlanCodec(wiretype.CompositeType{
		Name: "tagged",
		Fields: []wiretype.CompositeField{
			{Name: "id", Type: wiretype.NotNull(wiretype.TypeInt8)},
			{Name: "tags", Type: wiretype.NotNull(wiretype.ArrayType{Elem: wiretype.NotNull(wiretype.TypeText)})},
		},
	})
	require.NoError(t, err)

	values := []any{int64(9), []any{"red", "blue"}}

	buf, err := codec.Encode(values, nil)
	require.NoError(t, err)

	got, err := codec.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestCompositeScanner(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("person", 16385)

	codec, err := m.PlanCodec(personType())
	require.NoError(t, err)

	buf, err := codec.Encode([]any{"Faisal", int32(24)}, nil)
	require.NoError(t, err)

	scanner := wiretype.NewCompositeScanner(buf)
	require.NoError(t, scanner.Err())
	require.Equal(t, 2, scanner.FieldCount())

	require.True(t, scanner.Next())
	require.EqualValues(t, wiretype.TextOID, scanner.OID())
	require.Equal(t, []byte("Faisal"), scanner.Bytes())

	require.True(t, scanner.Next())
	require.EqualValues(t, wiretype.Int4OID, scanner.OID())

	require.False(t, scanner.Next())
	require.NoError(t, scanner.Err())
}

func TestCompositeDecodeTruncated(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("person", 16385)

	codec, err := m.PlanCodec(personType())
	require.NoError(t, err)

	buf, err := codec.Encode([]any{"Faisal", int32(24)}, nil)
	require.NoError(t, err)

	_, err = codec.Decode(buf[:len(buf)-2])
	require.Error(t, err)
}

func TestCompositeDecodeTrailingBytes(t *testing.T) {
	m := wiretype.NewMap()
	m.RegisterType("person", 16385)

	codec, err := m.PlanCodec(personType())
	require.NoError(t, err)

	buf, err := codec.Encode([]any{"Faisal", int32(24)}, nil)
	require.NoError(t, err)
	buf = append(buf, 0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef)

	_, err = codec.Decode(buf)

	var malformed *wiretype.MalformedScalarError
	require.ErrorAs(t, err, &malformed)
}
