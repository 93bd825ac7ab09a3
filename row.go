package wiretype

import (
	"github.com/pkg/errors"
)

// Column describes one column of a result row or one query parameter.
type Column struct {
	Name string
	Type FieldType
}

// Record is an ordered set of named values, the decoded form of a row.
type Record struct {
	names  []string
	values []any
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.values) }

// Name returns the name of field i.
func (r Record) Name(i int) string { return r.names[i] }

// Value returns the value of field i.
func (r Record) Value(i int) any { return r.values[i] }

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for i, n := range r.names {
		if n == name {
			return r.values[i], true
		}
	}
	return nil, false
}

// NewRecord builds a Record for encoding. names and values must be the same
// length, values in name order.
func NewRecord(names []string, values []any) (Record, error) {
	if len(names) != len(values) {
		return Record{}, &FieldCountError{Expected: len(names), Got: len(values)}
	}
	return Record{names: names, values: values}, nil
}

// RowCodec transcodes whole rows: one FieldCodec per declared column, with
// decoded values reassembled into a Record shaped by the target field names.
// Name matching between columns and shape happens once, at construction;
// per-row work is a precomputed permutation.
type RowCodec struct {
	columns []Column
	codecs  []FieldCodec
	shape   []string
	perm    []int // column index -> record field index
}

// NewRowCodec builds a codec for the given columns. shape lists the target
// record's field names; each must correspond to a declared column. A nil
// shape targets the columns in their own order.
func NewRowCodec(m *Map, columns []Column, shape []string) (*RowCodec, error) {
	if shape == nil {
		shape = make([]string, len(columns))
		for i, col := range columns {
			shape[i] = col.Name
		}
	}

	if len(shape) != len(columns) {
		return nil, &FieldCountError{Expected: len(columns), Got: len(shape)}
	}

	index := make(map[string]int, len(shape))
	for i, name := range shape {
		if _, dup := index[name]; dup {
			return nil, errors.Errorf("duplicate field %q in target shape", name)
		}
		index[name] = i
	}

	codecs := make([]FieldCodec, len(columns))
	perm := make([]int, len(columns))
	for i, col := range columns {
		fc, err := m.PlanFieldCodec(col.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", col.Name)
		}
		codecs[i] = fc

		j, ok := index[col.Name]
		if !ok {
			return nil, errors.Errorf("column %q has no field in target shape", col.Name)
		}
		perm[i] = j
	}

	return &RowCodec{columns: columns, codecs: codecs, shape: shape, perm: perm}, nil
}

// Columns returns the declared columns.
func (rc *RowCodec) Columns() []Column { return rc.columns }

// OIDs returns each column's resolved type OID in column order, for tagging
// the wire message that carries the encoded values.
func (rc *RowCodec) OIDs() []uint32 {
	oids := make([]uint32, len(rc.codecs))
	for i, fc := range rc.codecs {
		oids[i] = fc.Codec.OID()
	}
	return oids
}

// DecodeRow decodes one wire payload per column, in column order, where a
// nil payload is the SQL NULL marker. A failing column fails the row without
// corrupting sibling decodes; the error names the column.
func (rc *RowCodec) DecodeRow(srcs [][]byte) (Record, error) {
	if len(srcs) != len(rc.columns) {
		return Record{}, &FieldCountError{Expected: len(rc.columns), Got: len(srcs)}
	}

	values := make([]any, len(rc.columns))
	for i, src := range srcs {
		v, err := rc.codecs[i].Decode(src)
		if err != nil {
			return Record{}, errors.Wrapf(err, "column %q", rc.columns[i].Name)
		}
		values[rc.perm[i]] = v
	}

	return Record{names: rc.shape, values: values}, nil
}

// EncodeRow encodes one value per column, in column order, into wire
// payloads ready for transmission. A nil value encodes as the SQL NULL
// marker for nullable columns and is rejected otherwise.
func (rc *RowCodec) EncodeRow(values []any) ([][]byte, error) {
	if len(values) != len(rc.columns) {
		return nil, &FieldCountError{Expected: len(rc.columns), Got: len(values)}
	}

	out := make([][]byte, len(rc.columns))
	for i, v := range values {
		buf, err := rc.codecs[i].Encode(v)
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", rc.columns[i].Name)
		}
		out[i] = buf
	}

	return out, nil
}

// EncodeRecord encodes a Record produced for this codec's shape, resolving
// each column's value through the construction-time permutation.
func (rc *RowCodec) EncodeRecord(rec Record) ([][]byte, error) {
	if rec.Len() != len(rc.columns) {
		return nil, &FieldCountError{Expected: len(rc.columns), Got: rec.Len()}
	}

	values := make([]any, len(rc.columns))
	for i := range rc.columns {
		values[i] = rec.values[rc.perm[i]]
	}
	return rc.EncodeRow(values)
}
