/*
Package resource loads complete transliteration tables from files.

A table is described by three resource identifiers, one each for character
mappings, sign priorities and prefix signs. Identifiers are paths within an
fs.FS; the file format is determined by the file extension:

	.csv            comma separated values, see package csvrecords
	.json           JSON list of objects, see package structrecords
	.yaml, .yml     YAML list of maps, see package structrecords
*/
package resource

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/indicenc"
	"github.com/npillmayer/indicenc/csvrecords"
	"github.com/npillmayer/indicenc/structrecords"
)

// tracer writes to trace with key 'indicenc.resource'
func tracer() tracing.Trace {
	return tracing.Select("indicenc.resource")
}

// Resources identifies the three resources a table is built from.
type Resources struct {
	Mappings   string // alphabet, consonant, signs
	Priorities string // unicode, in order of priority
	Prefixes   string // unicode
}

// UnsupportedFormatError is returned for resources with a file extension
// that no record reader exists for.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q of %s, please use files of type csv, json or yaml",
		e.Ext, e.Path)
}

// Open opens a resource and returns a record reader for it. The caller has
// to close the returned io.Closer after reading.
func Open(fsys fs.FS, name string) (indicenc.RecordReader, io.Closer, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	var reader func(io.Reader) indicenc.RecordReader
	switch ext {
	case "csv":
		reader = func(r io.Reader) indicenc.RecordReader { return csvrecords.NewReader(r) }
	case "json":
		reader = func(r io.Reader) indicenc.RecordReader { return structrecords.NewJSONReader(r) }
	case "yaml", "yml":
		reader = func(r io.Reader) indicenc.RecordReader { return structrecords.NewYAMLReader(r) }
	default:
		return nil, nil, &UnsupportedFormatError{Path: name, Ext: ext}
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, nil, err
	}
	tracer().Debugf("opened %s resource %s", ext, name)
	return reader(f), f, nil
}

// Build loads the three resources from fsys and builds a table named name.
// All three resources are required.
func Build(name string, fsys fs.FS, res Resources) (*indicenc.Table, error) {
	ids := []struct {
		resource, path string
	}{
		{indicenc.ResourceMappings, res.Mappings},
		{indicenc.ResourcePriorities, res.Priorities},
		{indicenc.ResourcePrefixes, res.Prefixes},
	}
	readers := make([]indicenc.RecordReader, len(ids))
	for i, id := range ids {
		if id.path == "" {
			return nil, &indicenc.ValidationError{
				Resource: id.resource,
				Index:    -1,
				Reason:   "no resource configured",
			}
		}
		r, closer, err := Open(fsys, id.path)
		if err != nil {
			return nil, err
		}
		defer closer.Close()
		readers[i] = r
	}
	table, err := indicenc.LoadTable(name, readers[0], readers[1], readers[2])
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return table, nil
}
