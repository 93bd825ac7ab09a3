package wiretype

import (
	"github.com/pkg/errors"
)

// EnumCodec transcodes string labels of an enumerated type as the text wire
// format, checked against the declared label set in both directions. Label
// order defines the type's identity; matching is plain equality.
type EnumCodec struct {
	TypeName string
	Labels   []string

	members map[string]struct{}
	oid     uint32
}

// NewEnumCodec returns a codec for the enum named typeName with the given
// ordered labels and resolved OID.
func NewEnumCodec(typeName string, labels []string, oid uint32) *EnumCodec {
	members := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		members[l] = struct{}{}
	}
	return &EnumCodec{TypeName: typeName, Labels: labels, members: members, oid: oid}
}

func (c *EnumCodec) OID() uint32 { return c.oid }

func (c *EnumCodec) Encode(value any, buf []byte) ([]byte, error) {
	v, ok := value.(string)
	if !ok {
		return nil, errors.Errorf("cannot encode %T as enum %s", value, c.TypeName)
	}

	if _, ok := c.members[v]; !ok {
		return nil, &UnknownEnumLabelError{TypeName: c.TypeName, Label: v}
	}

	return append(buf, v...), nil
}

func (c *EnumCodec) Decode(src []byte) (any, error) {
	label := string(src)
	if _, ok := c.members[label]; !ok {
		return nil, &UnknownEnumLabelError{TypeName: c.TypeName, Label: label}
	}

	return label, nil
}
