package indicenc

import (
	"io"
	"strings"
)

// Field is a single cell value of a tabular resource. Loaders normalize every
// flavour of "no value" (empty CSV cell, JSON null, absent key, NaN) to the
// zero Field.
type Field struct {
	Value string
	Valid bool // false means the value is missing
}

// Value creates a present field.
func Value(s string) Field {
	return Field{Value: s, Valid: true}
}

// Missing is the absent field value.
var Missing = Field{}

func (f Field) String() string {
	if !f.Valid {
		return "<missing>"
	}
	return f.Value
}

// Record maps field names to field values. A name not contained in a record
// is treated as Missing.
type Record map[string]Field

// Field names used by the table resources.
const (
	FieldAlphabet  = "alphabet"
	FieldConsonant = "consonant"
	FieldSigns     = "signs"
	FieldUnicode   = "unicode"
)

// Get returns the field for name, or Missing.
func (rec Record) Get(name string) Field {
	return rec[name]
}

// RecordReader yields table records one-by-one.
// It should return io.EOF when the stream is exhausted.
type RecordReader interface {
	Next() (Record, error)
}

// RecordList wraps an in-memory slice of records as a RecordReader.
func RecordList(records []Record) RecordReader {
	return &sliceRecordReader{records: records}
}

type sliceRecordReader struct {
	records []Record
	index   int
}

func (r *sliceRecordReader) Next() (Record, error) {
	if r.index >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.index]
	r.index++
	return rec, nil
}

const zwnj = "\u200c"

// Sanitize trims surrounding white space and removes every zero-width
// non-joiner from s. Trimming happens first, a ZWNJ is not white space.
func Sanitize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), zwnj, "")
}
