package wiretype

import (
	"encoding/binary"

	"github.com/jackc/pgio"
	"github.com/pkg/errors"
)

// The composite wire format is an int32 field count followed by, per field in
// declared order, the field type's OID, an int32 payload length or -1 for
// NULL, and the payload. See PostgreSQL's rowtypes.c (record_send).

type compositeFieldCodec struct {
	name  string
	oid   uint32
	codec FieldCodec
}

// CompositeCodec transcodes []any as a composite value with named, ordered
// fields. Field order determines wire position; names appear only in error
// context.
type CompositeCodec struct {
	TypeName string

	fields []compositeFieldCodec
	oid    uint32
}

func (c *CompositeCodec) OID() uint32 { return c.oid }

// Arity returns the declared field count.
func (c *CompositeCodec) Arity() int { return len(c.fields) }

func (c *CompositeCodec) Encode(value any, buf []byte) ([]byte, error) {
	values, ok := value.([]any)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as composite %s", value, c.TypeName)
	}
	if len(values) != len(c.fields) {
		return nil, &FieldCountError{Expected: len(c.fields), Got: len(values)}
	}

	buf = pgio.AppendInt32(buf, int32(len(c.fields)))

	for i, f := range c.fields {
		buf = pgio.AppendUint32(buf, f.oid)

		v := values[i]
		if v == nil {
			if !f.codec.Nullable {
				return nil, &UnexpectedNullError{Field: f.name}
			}
			buf = pgio.AppendInt32(buf, -1)
			continue
		}

		sp := len(buf)
		buf = pgio.AppendInt32(buf, -1)
		var err error
		buf, err = f.codec.Codec.Encode(v, buf)
		if err != nil {
			return nil, errors.Wrapf(err, "composite %s field %q", c.TypeName, f.name)
		}
		pgio.SetInt32(buf[sp:], int32(len(buf[sp:])-4))
	}

	return buf, nil
}

func (c *CompositeCodec) Decode(src []byte) (any, error) {
	scanner := NewCompositeScanner(src)
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if scanner.FieldCount() != len(c.fields) {
		return nil, &FieldCountError{Expected: len(c.fields), Got: scanner.FieldCount()}
	}

	values := make([]any, 0, len(c.fields))
	for _, f := range c.fields {
		if !scanner.Next() {
			if err := scanner.Err(); err != nil {
				return nil, err
			}
			return nil, &FieldCountError{Expected: len(c.fields), Got: len(values)}
		}

		// The wire tag is redundant with the static description, but when the
		// expected OID is known a disagreement means the value is not what
		// the schema says it is.
		if f.oid != 0 && f.oid != RecordOID && scanner.OID() != f.oid {
			return nil, &TypeMismatchError{Field: f.name, Expected: f.oid, Got: scanner.OID()}
		}

		v, err := f.codec.Decode(scanner.Bytes())
		if err != nil {
			return nil, errors.Wrapf(err, "composite %s field %q", c.TypeName, f.name)
		}
		values = append(values, v)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if scanner.Remaining() != 0 {
		return nil, &MalformedScalarError{TypeName: "composite", Expected: -1, Got: len(src)}
	}

	return values, nil
}

// CompositeScanner is a cursor over the fields of a binary encoded composite
// value.
type CompositeScanner struct {
	rp  int
	src []byte

	fieldCount int32
	fieldOID   uint32
	fieldBytes []byte
	err        error
}

// NewCompositeScanner returns a scanner positioned before the first field.
func NewCompositeScanner(src []byte) *CompositeScanner {
	if len(src) < 4 {
		return &CompositeScanner{err: &MalformedScalarError{TypeName: "composite", Expected: -1, Got: len(src)}}
	}

	fieldCount := int32(binary.BigEndian.Uint32(src))
	return &CompositeScanner{rp: 4, src: src, fieldCount: fieldCount}
}

// Next advances the scanner to the next field. It returns false after the
// last field is read or an error occurs; Err reports which.
func (cs *CompositeScanner) Next() bool {
	if cs.err != nil {
		return false
	}

	if cs.rp == len(cs.src) {
		return false
	}

	if len(cs.src[cs.rp:]) < 8 {
		cs.err = &MalformedScalarError{TypeName: "composite", Expected: -1, Got: len(cs.src)}
		return false
	}
	cs.fieldOID = binary.BigEndian.Uint32(cs.src[cs.rp:])
	cs.rp += 4

	fieldLen := int(int32(binary.BigEndian.Uint32(cs.src[cs.rp:])))
	cs.rp += 4

	if fieldLen >= 0 {
		if len(cs.src[cs.rp:]) < fieldLen {
			cs.err = &MalformedScalarError{TypeName: "composite", Expected: -1, Got: len(cs.src)}
			return false
		}
		cs.fieldBytes = cs.src[cs.rp : cs.rp+fieldLen]
		cs.rp += fieldLen
	} else {
		cs.fieldBytes = nil
	}

	return true
}

// Remaining returns the number of unread bytes past the scanner's position.
func (cs *CompositeScanner) Remaining() int {
	return len(cs.src) - cs.rp
}

// FieldCount returns the wire-declared number of fields.
func (cs *CompositeScanner) FieldCount() int {
	return int(cs.fieldCount)
}

// OID returns the type OID of the field most recently read by Next.
func (cs *CompositeScanner) OID() uint32 {
	return cs.fieldOID
}

// Bytes returns the payload of the field most recently read by Next, or nil
// for a NULL field.
func (cs *CompositeScanner) Bytes() []byte {
	return cs.fieldBytes
}

// Err returns any error encountered by the scanner.
func (cs *CompositeScanner) Err() error {
	return cs.err
}
