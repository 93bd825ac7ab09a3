package wiretype

import (
	"fmt"
)

// MalformedScalarError reports a scalar payload whose byte length does not
// match the wire format for its type.
type MalformedScalarError struct {
	TypeName string
	Expected int // expected byte width, -1 when variable
	Got      int
}

func (e *MalformedScalarError) Error() string {
	if e.Expected >= 0 {
		return fmt.Sprintf("malformed %s: expected %d bytes, got %d", e.TypeName, e.Expected, e.Got)
	}
	return fmt.Sprintf("malformed %s: invalid payload of %d bytes", e.TypeName, e.Got)
}

// UnexpectedNullError reports a NULL where the declared type is NOT NULL.
// Field is the column or composite field name when known.
type UnexpectedNullError struct {
	Field string
}

func (e *UnexpectedNullError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("unexpected NULL for NOT NULL field %q", e.Field)
	}
	return "unexpected NULL for NOT NULL value"
}

// TypeMismatchError reports a wire-declared type OID that disagrees with the
// OID expected from the static type description.
type TypeMismatchError struct {
	Field    string // composite field name, empty for array elements
	Expected uint32
	Got      uint32
}

func (e *TypeMismatchError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("field %q: wire type OID %d does not match expected OID %d", e.Field, e.Got, e.Expected)
	}
	return fmt.Sprintf("wire type OID %d does not match expected OID %d", e.Got, e.Expected)
}

// FieldCountError reports a composite or row whose field count disagrees with
// the declared arity.
type FieldCountError struct {
	Expected int
	Got      int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("field count mismatch: expected %d, got %d", e.Expected, e.Got)
}

// UnknownEnumLabelError reports a label outside the enum's declared label set.
type UnknownEnumLabelError struct {
	TypeName string
	Label    string
}

func (e *UnknownEnumLabelError) Error() string {
	return fmt.Sprintf("unknown label %q for enum %s", e.Label, e.TypeName)
}

// JSONError reports a json or jsonb payload that failed to serialize or parse.
type JSONError struct {
	Err error
}

func (e *JSONError) Error() string {
	return fmt.Sprintf("invalid json: %v", e.Err)
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

// ArrayShapeError reports an array whose dimensions disagree with the declared
// fixed shape.
type ArrayShapeError struct {
	Expected []int32
	Got      []int32
}

func (e *ArrayShapeError) Error() string {
	return fmt.Sprintf("array shape mismatch: expected dimensions %v, got %v", e.Expected, e.Got)
}
