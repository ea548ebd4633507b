package structrecords

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/indicenc"
)

func readAll(t *testing.T, r indicenc.RecordReader) []indicenc.Record {
	t.Helper()
	var recs []indicenc.Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return recs
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}
}

func TestJSONReader(t *testing.T) {
	src := `[
	  {"alphabet": "k", "consonant": "ᰀ", "signs": null},
	  {"alphabet": "u", "signs": "ᰪ"},
	  {"alphabet": 1, "consonant": true}
	]`
	recs := readAll(t, NewJSONReader(strings.NewReader(src)))
	require.Len(t, recs, 3)
	assert.Equal(t, indicenc.Value("k"), recs[0].Get(indicenc.FieldAlphabet))
	assert.Equal(t, indicenc.Value("ᰀ"), recs[0].Get(indicenc.FieldConsonant))
	assert.Equal(t, indicenc.Missing, recs[0].Get(indicenc.FieldSigns))
	assert.Equal(t, indicenc.Missing, recs[1].Get(indicenc.FieldConsonant))
	assert.Equal(t, indicenc.Value("1"), recs[2].Get(indicenc.FieldAlphabet))
	assert.Equal(t, indicenc.Value("true"), recs[2].Get(indicenc.FieldConsonant))
}

func TestJSONReaderNaN(t *testing.T) {
	src := `[
	  {"alphabet": "b", "consonant": NaN, "signs": "s"},
	  {"alphabet": "NaN", "consonant": -NaN, "signs": nan},
	  {"alphabet": "\\\" NaN", "consonant": [NaN]}
	]`
	r := NewJSONReader(strings.NewReader(src))
	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, indicenc.Missing, rec.Get(indicenc.FieldConsonant))
	assert.Equal(t, indicenc.Value("s"), rec.Get(indicenc.FieldSigns))

	rec, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, indicenc.Value("NaN"), rec.Get(indicenc.FieldAlphabet), "strings are kept")
	assert.Equal(t, indicenc.Missing, rec.Get(indicenc.FieldConsonant))
	assert.Equal(t, indicenc.Missing, rec.Get(indicenc.FieldSigns))

	_, err = r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested values")
}

func TestJSONReaderEmpty(t *testing.T) {
	assert.Empty(t, readAll(t, NewJSONReader(strings.NewReader(""))))
	assert.Empty(t, readAll(t, NewJSONReader(strings.NewReader("[]"))))
}

func TestJSONReaderRejectsNonList(t *testing.T) {
	r := NewJSONReader(strings.NewReader(`{"alphabet": "k"}`))
	_, err := r.Next()
	require.Error(t, err)
	_, again := r.Next()
	assert.Equal(t, err, again, "errors should be sticky")
}

func TestJSONReaderRejectsNestedValues(t *testing.T) {
	r := NewJSONReader(strings.NewReader(`[{"alphabet": ["k"]}]`))
	_, err := r.Next()
	assert.Error(t, err)
}

func TestYAMLReader(t *testing.T) {
	src := `
- alphabet: k
  consonant: ᰀ
  signs: ~
- alphabet: u
  consonant:
  signs: ᰪ
`
	recs := readAll(t, NewYAMLReader(strings.NewReader(src)))
	require.Len(t, recs, 2)
	assert.Equal(t, indicenc.Value("ᰀ"), recs[0].Get(indicenc.FieldConsonant))
	assert.Equal(t, indicenc.Missing, recs[0].Get(indicenc.FieldSigns))
	assert.Equal(t, indicenc.Missing, recs[1].Get(indicenc.FieldConsonant))
	assert.Equal(t, indicenc.Value("ᰪ"), recs[1].Get(indicenc.FieldSigns))
}

func TestYAMLReaderNaN(t *testing.T) {
	src := `
- alphabet: b
  consonant: .nan
  signs: s
- {alphabet: '.nan', consonant: .NaN, signs: .NAN}   # flow style
- alphabet: a
  consonant: x.nan
  signs: ".nan"
`
	recs := readAll(t, NewYAMLReader(strings.NewReader(src)))
	require.Len(t, recs, 3)
	assert.Equal(t, indicenc.Missing, recs[0].Get(indicenc.FieldConsonant))
	assert.Equal(t, indicenc.Value("s"), recs[0].Get(indicenc.FieldSigns))
	assert.Equal(t, indicenc.Value(".nan"), recs[1].Get(indicenc.FieldAlphabet))
	assert.Equal(t, indicenc.Missing, recs[1].Get(indicenc.FieldConsonant))
	assert.Equal(t, indicenc.Missing, recs[1].Get(indicenc.FieldSigns))
	assert.Equal(t, indicenc.Value("x.nan"), recs[2].Get(indicenc.FieldConsonant))
	assert.Equal(t, indicenc.Value(".nan"), recs[2].Get(indicenc.FieldSigns))
}

func TestYAMLReaderEmptyDocument(t *testing.T) {
	assert.Empty(t, readAll(t, NewYAMLReader(strings.NewReader("# nothing here\n"))))
}

func TestLoadJSONTable(t *testing.T) {
	table, err := LoadJSONTable("json-test",
		strings.NewReader(`[{"alphabet":"a","consonant":"C","signs":null},
			{"alphabet":"b","consonant":null,"signs":"s"}]`),
		strings.NewReader(`[{"unicode":"s"}]`),
		strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Equal(t, "sC", table.Transliterate("ba"))
}

func TestLoadJSONTableNaN(t *testing.T) {
	table, err := LoadJSONTable("json-nan",
		strings.NewReader(`[{"alphabet":"a","consonant":"C","signs":NaN},
			{"alphabet":"b","consonant":NaN,"signs":"s"}]`),
		strings.NewReader(`[{"unicode":"s"}]`),
		strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Equal(t, "sC", table.Transliterate("ba"))
}

func TestLoadYAMLTable(t *testing.T) {
	table, err := LoadYAMLTable("yaml-test",
		strings.NewReader("- {alphabet: a, consonant: C}\n- {alphabet: b, signs: s}\n"),
		strings.NewReader("- unicode: s\n"),
		strings.NewReader("- unicode: s\n"))
	require.NoError(t, err)
	assert.Equal(t, "Cs", table.Transliterate("ba"))
}
