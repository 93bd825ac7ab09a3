// Package wiretype converts between Go values and the PostgreSQL binary wire
// format.
//
// A caller describes the database side of a conversion with a Type: a Scalar
// such as TypeInt4, an ArrayType, a CompositeType, or an EnumType. A FieldType
// pairs a Type with its declared nullability. Map.PlanCodec builds a Codec for
// a Type once, up front; the resulting codecs are stateless and safe for
// concurrent use.
//
// Throughout the package a nil []byte represents the SQL NULL wire marker and
// a nil value represents an absent Go value. A zero-length, non-nil []byte is
// an empty payload (for example an empty string), never NULL.
//
// RowCodec is the top-level entry point for result rows and query parameters.
// It applies one FieldCodec per column and reassembles decoded values into a
// Record whose field names were matched against the declared columns when the
// RowCodec was constructed.
package wiretype
