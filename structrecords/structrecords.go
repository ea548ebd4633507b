/*
Package structrecords reads transliteration table resources from structured
documents (JSON or YAML).

A resource is a list of flat objects:

	[
	  {"alphabet": "k", "consonant": "ᰀ", "signs": null},
	  {"alphabet": "u", "consonant": null, "signs": "ᰪ"}
	]

Null values, NaN literals (JSON NaN as written by Python, YAML .nan) and
absent keys are read as missing values. Numbers and booleans are kept in their
literal form. Note that YAML reads unquoted y, n, on, off as
booleans; quote such alphabet characters.
*/
package structrecords

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	jsoniter "github.com/json-iterator/go"
	"github.com/npillmayer/schuko/tracing"
	"sigs.k8s.io/yaml"

	"github.com/npillmayer/indicenc"
)

// tracer writes to trace with key 'indicenc.records'
func tracer() tracing.Trace {
	return tracing.Select("indicenc.records")
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Reader streams records from a JSON array of objects.
type Reader struct {
	iter  *jsoniter.Iterator
	err   error // sticky error
	index int
	done  bool
}

// NewJSONReader creates a record reader for JSON input.
func NewJSONReader(reader io.Reader) *Reader {
	data, err := io.ReadAll(reader)
	if err != nil {
		return &Reader{err: err}
	}
	return newReader(data)
}

// NewYAMLReader creates a record reader for YAML input. The YAML document is
// converted to JSON first, so the same rules for values apply.
func NewYAMLReader(reader io.Reader) *Reader {
	data, err := io.ReadAll(reader)
	if err != nil {
		return &Reader{err: err}
	}
	if data, err = yaml.YAMLToJSON(yamlNaNToNull(data)); err != nil {
		return &Reader{err: fmt.Errorf("yaml records: %w", err)}
	}
	return newReader(data)
}

func newReader(data []byte) *Reader {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Reader{done: true}
	}
	return &Reader{iter: jsoniter.ParseBytes(json, nanToNull(data))}
}

var nanLiterals = [][]byte{[]byte("-NaN"), []byte("NaN"), []byte("-nan"), []byte("nan")}

// nanToNull replaces bare NaN literals, which are not valid JSON, with null.
// String contents are left alone.
func nanToNull(data []byte) []byte {
	var out []byte
	inString, escaped := false, false
	last := 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			continue
		}
		n := nanLength(data[i:])
		if n == 0 {
			continue
		}
		out = append(out, data[last:i]...)
		out = append(out, "null"...)
		i += n - 1
		last = i + 1
	}
	if out == nil {
		return data
	}
	return append(out, data[last:]...)
}

func nanLength(b []byte) int {
	for _, lit := range nanLiterals {
		if bytes.HasPrefix(b, lit) && (len(b) == len(lit) || !isWordByte(b[len(lit)])) {
			return len(lit)
		}
	}
	return 0
}

func isWordByte(c byte) bool {
	return c == '_' || '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

var yamlNaN = regexp.MustCompile(`\.(?:nan|NaN|NAN)`)

// yamlNaNToNull replaces YAML NaN scalars with null (~). JSON has no NaN, so
// conversion would fail on them otherwise.
func yamlNaNToNull(data []byte) []byte {
	matches := yamlNaN.FindAllIndex(data, -1)
	if matches == nil {
		return data
	}
	out := make([]byte, 0, len(data))
	last := 0
	for _, m := range matches {
		if !isYAMLScalar(data, m[0], m[1]) {
			continue
		}
		out = append(out, data[last:m[0]]...)
		out = append(out, '~')
		last = m[1]
	}
	return append(out, data[last:]...)
}

// isYAMLScalar is true if data[start:end] is a complete plain scalar, i.e. a
// value of its own and not part of a longer or quoted one.
func isYAMLScalar(data []byte, start, end int) bool {
	before := bytes.TrimRight(data[:start], " \t")
	if len(before) > 0 {
		switch c := before[len(before)-1]; {
		case c == '\n' || c == '[' || c == '{' || c == ',':
		case (c == ':' || c == '-') && len(before) < start: // indicators need a blank
		default:
			return false
		}
	}
	after := bytes.TrimLeft(data[end:], " \t")
	return len(after) == 0 || bytes.IndexByte([]byte("\r\n,]}#"), after[0]) >= 0
}

// LoadJSONTable parses JSON data for the three table resources and returns a
// ready-to-use table.
func LoadJSONTable(name string, mappings, priorities, prefixes io.Reader) (*indicenc.Table, error) {
	return indicenc.LoadTable(name, NewJSONReader(mappings), NewJSONReader(priorities),
		NewJSONReader(prefixes))
}

// LoadYAMLTable parses YAML data for the three table resources and returns a
// ready-to-use table.
func LoadYAMLTable(name string, mappings, priorities, prefixes io.Reader) (*indicenc.Table, error) {
	return indicenc.LoadTable(name, NewYAMLReader(mappings), NewYAMLReader(priorities),
		NewYAMLReader(prefixes))
}

// Next returns the next record. It returns io.EOF when exhausted.
func (r *Reader) Next() (indicenc.Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.done {
		return nil, io.EOF
	}
	if r.index == 0 {
		switch next := r.iter.WhatIsNext(); next {
		case jsoniter.ArrayValue:
		case jsoniter.NilValue: // e.g., an empty YAML document
			r.done = true
			return nil, io.EOF
		default:
			return nil, r.fail("expected a list of records")
		}
	}
	if !r.iter.ReadArray() {
		if r.iter.Error != nil && r.iter.Error != io.EOF {
			return nil, r.fail(r.iter.Error.Error())
		}
		r.done = true
		return nil, io.EOF
	}
	if r.iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, r.fail("record is not an object")
	}
	rec := make(indicenc.Record)
	var fieldErr error
	r.iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		rec[field], fieldErr = readField(it)
		return fieldErr == nil
	})
	if fieldErr != nil {
		return nil, r.fail(fmt.Sprintf("field: %v", fieldErr))
	}
	if r.iter.Error != nil && r.iter.Error != io.EOF {
		return nil, r.fail(r.iter.Error.Error())
	}
	r.index++
	return rec, nil
}

func readField(it *jsoniter.Iterator) (indicenc.Field, error) {
	switch it.WhatIsNext() {
	case jsoniter.StringValue:
		return indicenc.Value(it.ReadString()), nil
	case jsoniter.NilValue:
		it.ReadNil()
		return indicenc.Missing, nil
	case jsoniter.NumberValue:
		return indicenc.Value(it.ReadNumber().String()), nil
	case jsoniter.BoolValue:
		return indicenc.Value(fmt.Sprint(it.ReadBool())), nil
	}
	it.Skip()
	return indicenc.Missing, fmt.Errorf("nested values are not supported")
}

func (r *Reader) fail(msg string) error {
	r.err = fmt.Errorf("structured records, record #%d: %s", r.index, msg)
	tracer().Debugf("%v", r.err)
	return r.err
}
