package manifest

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
	"go.trai.ch/locksmith/internal/core/domain"
)

// field is one top-level member of a JSON object with its raw value.
type field struct {
	key string
	raw []byte
}

// object is a JSON object whose member order and raw values are preserved.
type object struct {
	fields []field
}

func parseObject(data []byte) (*object, error) {
	obj := &object{}
	if len(bytes.TrimSpace(data)) == 0 {
		return obj, nil
	}

	in := jlexer.Lexer{Data: data}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.String()
		in.WantColon()
		raw := slices.Clone(in.Raw())
		obj.fields = append(obj.fields, field{key: key, raw: raw})
		in.WantComma()
	}
	in.Delim('}')
	in.Consumed()

	if err := in.Error(); err != nil {
		return nil, err
	}
	return obj, nil
}

// get returns the value of key. With duplicate keys the last one wins.
func (o *object) get(key string) ([]byte, bool) {
	for i := len(o.fields) - 1; i >= 0; i-- {
		if o.fields[i].key == key {
			return o.fields[i].raw, true
		}
	}
	return nil, false
}

// set replaces the value of key in place, appending it when absent. With
// duplicate keys the last one, the one get reads, is replaced.
func (o *object) set(key string, raw []byte) {
	for i := len(o.fields) - 1; i >= 0; i-- {
		if o.fields[i].key == key {
			o.fields[i].raw = raw
			return
		}
	}
	o.fields = append(o.fields, field{key: key, raw: raw})
}

func (o *object) encode() []byte {
	w := jwriter.Writer{NoEscapeHTML: true}
	w.RawByte('{')
	for i, f := range o.fields {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(f.key)
		w.RawByte(':')
		w.Raw(f.raw, nil)
	}
	w.RawByte('}')
	out, _ := w.BuildBytes()
	return out
}

// indent renders data with two-space indentation and a trailing newline.
func indent(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// parseDependencyMap decodes a name to specifier object. A JSON null is an absent map.
func parseDependencyMap(raw []byte) (*domain.DependencyMap, error) {
	in := jlexer.Lexer{Data: raw}
	if in.IsNull() {
		in.Skip()
		return nil, in.Error()
	}

	deps := domain.NewDependencyMap()
	in.Delim('{')
	for !in.IsDelim('}') {
		name := in.String()
		in.WantColon()
		deps.Set(name, in.String())
		in.WantComma()
	}
	in.Delim('}')
	in.Consumed()

	if err := in.Error(); err != nil {
		return nil, err
	}
	return deps, nil
}

func encodeDependencyMap(deps *domain.DependencyMap) []byte {
	w := jwriter.Writer{NoEscapeHTML: true}
	w.RawByte('{')
	first := true
	for name, spec := range deps.All() {
		if !first {
			w.RawByte(',')
		}
		first = false
		w.String(name)
		w.RawByte(':')
		w.String(spec)
	}
	w.RawByte('}')
	out, _ := w.BuildBytes()
	return out
}
