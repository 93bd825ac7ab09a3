package wiretype

import (
	"github.com/pkg/errors"
)

// PostgreSQL OIDs for the supported types.
const (
	BoolOID             = 16
	ByteaOID            = 17
	Int8OID             = 20
	Int2OID             = 21
	Int4OID             = 23
	TextOID             = 25
	JSONOID             = 114
	JSONArrayOID        = 199
	Float4OID           = 700
	Float8OID           = 701
	MoneyOID            = 790
	MoneyArrayOID       = 791
	InetOID             = 869
	BoolArrayOID        = 1000
	ByteaArrayOID       = 1001
	Int2ArrayOID        = 1005
	Int4ArrayOID        = 1007
	TextArrayOID        = 1009
	VarcharArrayOID     = 1015
	Int8ArrayOID        = 1016
	Float4ArrayOID      = 1021
	Float8ArrayOID      = 1022
	InetArrayOID        = 1041
	VarcharOID          = 1043
	DateOID             = 1082
	TimeOID             = 1083
	TimestampOID        = 1114
	TimestampArrayOID   = 1115
	TimeArrayOID        = 1183
	DateArrayOID        = 1182
	TimestamptzOID      = 1184
	TimestamptzArrayOID = 1185
	IntervalOID         = 1186
	IntervalArrayOID    = 1187
	NumericArrayOID     = 1231
	NumericOID          = 1700
	RecordOID           = 2249
	UUIDOID             = 2950
	UUIDArrayOID        = 2951
	JSONBOID            = 3802
	JSONBArrayOID       = 3807
)

// Type describes one database-level type. It is immutable and fully known
// before any encode or decode call, mirroring the target schema exactly. The
// only implementations are Scalar, ArrayType, CompositeType, and EnumType.
type Type interface {
	String() string
	isType()
}

// Scalar is a named primitive type.
type Scalar string

const (
	TypeBool        Scalar = "bool"
	TypeBytea       Scalar = "bytea"
	TypeInt2        Scalar = "int2"
	TypeInt4        Scalar = "int4"
	TypeInt8        Scalar = "int8"
	TypeFloat4      Scalar = "float4"
	TypeFloat8      Scalar = "float8"
	TypeNumeric     Scalar = "numeric"
	TypeMoney       Scalar = "money"
	TypeText        Scalar = "text"
	TypeVarchar     Scalar = "varchar"
	TypeDate        Scalar = "date"
	TypeTime        Scalar = "time"
	TypeTimestamp   Scalar = "timestamp"
	TypeTimestamptz Scalar = "timestamptz"
	TypeInterval    Scalar = "interval"
	TypeUUID        Scalar = "uuid"
	TypeInet        Scalar = "inet"
	TypeJSON        Scalar = "json"
	TypeJSONB       Scalar = "jsonb"
)

func (s Scalar) String() string { return string(s) }
func (Scalar) isType()          {}

// FieldType pairs a Type with its declared nullability. Decoding a wire NULL
// into a NOT NULL FieldType is an error, never a default value.
type FieldType struct {
	Type     Type
	Nullable bool
}

// NotNull describes a NOT NULL field of type t.
func NotNull(t Type) FieldType { return FieldType{Type: t} }

// Null describes a nullable field of type t.
func Null(t Type) FieldType { return FieldType{Type: t, Nullable: true} }

// ArrayType describes an array of a homogeneous element type. A nil Shape is
// a variable-length one-dimensional array whose length is recorded on the
// wire at encode time. A non-nil Shape declares fixed, possibly
// multi-dimensional bounds that values are validated against.
type ArrayType struct {
	Elem  FieldType
	Shape []int32
}

func (t ArrayType) String() string { return t.Elem.Type.String() + "[]" }
func (ArrayType) isType()          {}

// CompositeField is one named field of a composite type. Field order, not
// name, determines wire position.
type CompositeField struct {
	Name string
	Type FieldType
}

// CompositeType describes a composite (row) type. Name is the schema name the
// type's OID is registered under; it may be empty for an anonymous record.
type CompositeType struct {
	Name   string
	Fields []CompositeField
}

func (t CompositeType) String() string {
	if t.Name != "" {
		return t.Name
	}
	return "record"
}
func (CompositeType) isType() {}

// EnumType describes an enumerated type as its ordered label set.
type EnumType struct {
	Name   string
	Labels []string
}

func (t EnumType) String() string { return t.Name }
func (EnumType) isType()          {}

// Codec encodes and decodes values of a single logical type in the PostgreSQL
// binary format. Implementations are stateless after construction and safe
// for concurrent use.
type Codec interface {
	// OID returns the type's object identifier, or 0 when it is not known.
	OID() uint32

	// Encode appends the binary format of value to buf and returns the
	// extended buffer. It does not retain value.
	Encode(value any, buf []byte) ([]byte, error)

	// Decode returns the value represented by src. src must contain exactly
	// one value in binary format. Decode borrows src for the duration of the
	// call only and never retains it.
	Decode(src []byte) (any, error)
}

// Map resolves type names to OIDs and type descriptions to codecs. Built-in
// scalar and array OIDs are seeded by NewMap; user-defined enum and composite
// OIDs are registered once the schema is known. A Map must not be modified
// concurrently with use, but is safe for concurrent reads afterwards.
type Map struct {
	nameToOID map[string]uint32
	arrayOIDs map[uint32]uint32 // element OID -> array OID
}

type builtinType struct {
	name     string
	oid      uint32
	arrayOID uint32
}

var builtinTypes = []builtinType{
	{"bool", BoolOID, BoolArrayOID},
	{"bytea", ByteaOID, ByteaArrayOID},
	{"int2", Int2OID, Int2ArrayOID},
	{"int4", Int4OID, Int4ArrayOID},
	{"int8", Int8OID, Int8ArrayOID},
	{"float4", Float4OID, Float4ArrayOID},
	{"float8", Float8OID, Float8ArrayOID},
	{"numeric", NumericOID, NumericArrayOID},
	{"money", MoneyOID, MoneyArrayOID},
	{"text", TextOID, TextArrayOID},
	{"varchar", VarcharOID, VarcharArrayOID},
	{"date", DateOID, DateArrayOID},
	{"time", TimeOID, TimeArrayOID},
	{"timestamp", TimestampOID, TimestampArrayOID},
	{"timestamptz", TimestamptzOID, TimestamptzArrayOID},
	{"interval", IntervalOID, IntervalArrayOID},
	{"uuid", UUIDOID, UUIDArrayOID},
	{"inet", InetOID, InetArrayOID},
	{"json", JSONOID, JSONArrayOID},
	{"jsonb", JSONBOID, JSONBArrayOID},
}

// NewMap returns a Map seeded with the built-in scalar and array types.
func NewMap() *Map {
	m := &Map{
		nameToOID: make(map[string]uint32, 2*len(builtinTypes)),
		arrayOIDs: make(map[uint32]uint32, len(builtinTypes)),
	}

	for _, t := range builtinTypes {
		m.RegisterArrayType(t.name, t.arrayOID, t.oid)
	}

	return m
}

// RegisterType records the OID of a user-defined type, keyed by name.
// Registration happens at setup time, typically after the OID is resolved
// from the database schema.
func (m *Map) RegisterType(name string, oid uint32) {
	m.nameToOID[name] = oid
}

// RegisterArrayType records an array type's OID along with its element type's
// OID so that values of the element type can be tagged when nested inside an
// array. The array itself is registered under the PostgreSQL "_name"
// convention.
func (m *Map) RegisterArrayType(elementName string, oid, elementOID uint32) {
	m.nameToOID[elementName] = elementOID
	m.nameToOID["_"+elementName] = oid
	m.arrayOIDs[elementOID] = oid
}

// OIDForName returns the registered OID for a type name.
func (m *Map) OIDForName(name string) (uint32, bool) {
	oid, ok := m.nameToOID[name]
	return oid, ok
}

// ArrayOID returns the OID of the array type whose elements have elementOID.
func (m *Map) ArrayOID(elementOID uint32) (uint32, bool) {
	oid, ok := m.arrayOIDs[elementOID]
	return oid, ok
}

var scalarCodecs = map[Scalar]Codec{
	TypeBool:        BoolCodec{},
	TypeBytea:       ByteaCodec{},
	TypeInt2:        Int2Codec{},
	TypeInt4:        Int4Codec{},
	TypeInt8:        Int8Codec{},
	TypeFloat4:      Float4Codec{},
	TypeFloat8:      Float8Codec{},
	TypeNumeric:     NumericCodec{},
	TypeMoney:       MoneyCodec{},
	TypeText:        TextCodec{name: "text", oid: TextOID},
	TypeVarchar:     TextCodec{name: "varchar", oid: VarcharOID},
	TypeDate:        DateCodec{},
	TypeTime:        TimeCodec{},
	TypeTimestamp:   TimestampCodec{name: "timestamp", oid: TimestampOID},
	TypeTimestamptz: TimestampCodec{name: "timestamptz", oid: TimestamptzOID},
	TypeInterval:    IntervalCodec{},
	TypeUUID:        UUIDCodec{},
	TypeInet:        InetCodec{},
	TypeJSON:        JSONCodec{name: "json", oid: JSONOID},
	TypeJSONB:       JSONCodec{name: "jsonb", oid: JSONBOID},
}

// PlanCodec builds a Codec for t, resolving the OIDs of user-defined and
// array types through the Map. Codecs for composite and array types recurse
// into their field and element types. The returned Codec is reusable and safe
// for concurrent use.
func (m *Map) PlanCodec(t Type) (Codec, error) {
	switch t := t.(type) {
	case Scalar:
		c, ok := scalarCodecs[t]
		if !ok {
			return nil, errors.Errorf("no codec for scalar type %q", t)
		}
		return c, nil
	case ArrayType:
		elem, err := m.PlanFieldCodec(t.Elem)
		if err != nil {
			return nil, errors.Wrapf(err, "array of %s", t.Elem.Type)
		}
		shape := t.Shape
		if len(shape) == 0 {
			shape = nil
		}
		for _, d := range shape {
			if d < 0 {
				return nil, errors.Errorf("array of %s: negative dimension %d", t.Elem.Type, d)
			}
		}
		elementOID := elem.Codec.OID()
		oid := m.arrayOIDs[elementOID]
		return &ArrayCodec{Element: elem, ElementOID: elementOID, Shape: shape, oid: oid}, nil
	case CompositeType:
		oid := uint32(RecordOID)
		if t.Name != "" {
			registered, ok := m.OIDForName(t.Name)
			if !ok {
				return nil, errors.Errorf("composite type %q is not registered", t.Name)
			}
			oid = registered
		}
		fields := make([]compositeFieldCodec, len(t.Fields))
		for i, f := range t.Fields {
			fc, err := m.PlanFieldCodec(f.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "composite %s field %q", t, f.Name)
			}
			fields[i] = compositeFieldCodec{name: f.Name, oid: fc.Codec.OID(), codec: fc}
		}
		return &CompositeCodec{TypeName: t.String(), fields: fields, oid: oid}, nil
	case EnumType:
		oid, ok := m.OIDForName(t.Name)
		if !ok {
			return nil, errors.Errorf("enum type %q is not registered", t.Name)
		}
		return NewEnumCodec(t.Name, t.Labels, oid), nil
	default:
		return nil, errors.Errorf("unknown type description %T", t)
	}
}

// PlanFieldCodec builds the nullability-aware codec for a FieldType.
func (m *Map) PlanFieldCodec(ft FieldType) (FieldCodec, error) {
	c, err := m.PlanCodec(ft.Type)
	if err != nil {
		return FieldCodec{}, err
	}
	return FieldCodec{Codec: c, Nullable: ft.Nullable}, nil
}
