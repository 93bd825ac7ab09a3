package wiretype

// FieldCodec applies a declared nullability on top of a value Codec. It is
// the single-field unit every higher codec (array elements, composite fields,
// row columns) is built from.
type FieldCodec struct {
	Codec    Codec
	Nullable bool
}

// Encode returns the wire payload for value, or a nil slice for SQL NULL.
// Encoding nil into a NOT NULL field fails before any bytes are produced.
func (fc FieldCodec) Encode(value any) ([]byte, error) {
	if value == nil {
		if !fc.Nullable {
			return nil, &UnexpectedNullError{}
		}
		return nil, nil
	}

	buf, err := fc.Codec.Encode(value, nil)
	if err != nil {
		return nil, err
	}
	if buf == nil {
		// A zero-length payload (empty text, empty bytea) must stay
		// distinguishable from the nil NULL marker.
		buf = []byte{}
	}
	return buf, nil
}

// Decode returns the value for a wire payload, where a nil src is the SQL
// NULL marker. Decoding NULL into a NOT NULL field is an error, never a
// default value.
func (fc FieldCodec) Decode(src []byte) (any, error) {
	if src == nil {
		if !fc.Nullable {
			return nil, &UnexpectedNullError{}
		}
		return nil, nil
	}

	return fc.Codec.Decode(src)
}
