/*
Package csvrecords reads transliteration table resources in CSV format.

The first row of a file is the header and names the fields. Empty cells and
the usual spreadsheet spellings of "not available" ("NaN", "NA", "null", …)
are read as missing values.

	alphabet,consonant,signs
	k,ᰀ,
	u,,ᰪ
*/
package csvrecords

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/indicenc"
)

// tracer writes to trace with key 'indicenc.records'
func tracer() tracing.Trace {
	return tracing.Select("indicenc.records")
}

// Reader streams records from CSV input.
type Reader struct {
	csv    *csv.Reader
	header []string
	line   int
}

// missingValues are cell contents read as missing values.
var missingValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// LoadTable parses CSV data for the three table resources and returns a
// ready-to-use table.
func LoadTable(name string, mappings, priorities, prefixes io.Reader) (*indicenc.Table, error) {
	return indicenc.LoadTable(name, NewReader(mappings), NewReader(priorities), NewReader(prefixes))
}

// NewReader creates a record reader for CSV input.
func NewReader(reader io.Reader) *Reader {
	r := csv.NewReader(reader)
	r.ReuseRecord = true
	return &Reader{csv: r}
}

// Header returns the field names, available after the first call to Next.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next record. It returns io.EOF when exhausted.
func (r *Reader) Next() (indicenc.Record, error) {
	if r.header == nil {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}
	row, err := r.csv.Read()
	if err != nil {
		return nil, r.wrap(err)
	}
	r.line++
	rec := make(indicenc.Record, len(r.header))
	for i, name := range r.header {
		rec[name] = cell(row[i])
	}
	return rec, nil
}

func (r *Reader) readHeader() error {
	row, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF // empty input has no records
		}
		return r.wrap(err)
	}
	r.line++
	header := make([]string, len(row))
	for i, name := range row {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff") // byte order mark
		}
		header[i] = strings.TrimSpace(name)
	}
	r.header = header
	return nil
}

func (r *Reader) wrap(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	err = fmt.Errorf("csv records, after line %d: %w", r.line, err)
	tracer().Debugf("%v", err)
	return err
}

func cell(value string) indicenc.Field {
	if _, ok := missingValues[value]; ok {
		return indicenc.Missing
	}
	return indicenc.Value(value)
}

