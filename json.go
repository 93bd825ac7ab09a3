package wiretype

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const jsonbVersion = 1

// JSONCodec transcodes JSON payloads. The json wire format is the raw
// serialized text; jsonb prefixes it with a one-byte version number. Raw
// inputs (string, []byte, json.RawMessage) are passed through; any other
// value is serialized first. Decode validates that the payload parses and
// returns it as json.RawMessage.
type JSONCodec struct {
	name string
	oid  uint32
}

func (c JSONCodec) OID() uint32 { return c.oid }

func (c JSONCodec) Encode(value any, buf []byte) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		serialized, err := json.Marshal(v)
		if err != nil {
			return nil, &JSONError{Err: err}
		}
		data = serialized
	}

	if c.oid == JSONBOID {
		buf = append(buf, jsonbVersion)
	}
	return append(buf, data...), nil
}

func (c JSONCodec) Decode(src []byte) (any, error) {
	if c.oid == JSONBOID {
		if len(src) == 0 {
			return nil, &MalformedScalarError{TypeName: c.name, Expected: -1, Got: len(src)}
		}
		if src[0] != jsonbVersion {
			return nil, errors.Errorf("unknown jsonb version number %d", src[0])
		}
		src = src[1:]
	}

	var parsed any
	if err := json.Unmarshal(src, &parsed); err != nil {
		return nil, &JSONError{Err: err}
	}

	out := make(json.RawMessage, len(src))
	copy(out, src)
	return out, nil
}
