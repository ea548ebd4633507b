package indicenc

import (
	"bufio"
	"io"
	"strings"
)

// Encoder transliterates romanized text to Unicode, driven by a Table.
//
// An Encoder holds no state between calls and may be used concurrently.
type Encoder struct {
	table *Table
}

// NewEncoder creates an encoder for table. A nil table is treated as an empty
// one: every character passes through unchanged.
func NewEncoder(table *Table) *Encoder {
	return &Encoder{table: table}
}

// Table returns the table the encoder uses.
func (enc *Encoder) Table() *Table {
	return enc.table
}

// Transliterate converts input to Unicode using table.
func Transliterate(table *Table, input string) string {
	return NewEncoder(table).Transliterate(input)
}

// Transliterate converts input to Unicode using this table.
func (table *Table) Transliterate(input string) string {
	return NewEncoder(table).Transliterate(input)
}

// Transliterate converts input to Unicode.
//
// Input is scanned character by character. Signs are collected until the next
// consonant (or an unmapped character, or the end of input) flushes them in
// priority order. Prefix signs, and all signs of composite rules, are carried
// over and attach after the next consonant.
// Characters not part of the table's alphabet are copied unchanged; they
// flush pending signs and discard any carried-over signs.
//
// Example, with 'b' mapping to a sign s and 'a' mapping to a consonant C:
//
//	"ba" => "sC"    if s is an ordinary sign
//	"ba" => "Cs"    if s is a prefix sign
func (enc *Encoder) Transliterate(input string) string {
	st := state{table: enc.table}
	st.out.Grow(len(input) * 3) // most target scripts encode as 3 bytes in UTF-8
	st.write(input)
	st.flush()
	return st.out.String()
}

// TransliterateLines reads text line by line from r and writes its
// transliteration to w. Line terminators are kept as they are, and the output
// is the same as Transliterate would produce for the whole text. Output
// written so far is flushed to w even if reading fails.
func (enc *Encoder) TransliterateLines(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	st := state{table: enc.table}
	for {
		line, err := br.ReadString('\n')
		st.write(line)
		if err == io.EOF {
			st.flush()
		}
		if _, werr := bw.WriteString(st.take()); werr != nil {
			return werr
		}
		if err != nil {
			if ferr := bw.Flush(); ferr != nil || err == io.EOF {
				return ferr
			}
			return err
		}
	}
}

// state is the transient state of one transliteration run. Input may be
// written in pieces.
type state struct {
	table *Table
	out   strings.Builder
	signs []rune // pending, flushed before the next consonant
	carry []rune // attach after the next consonant
}

func (st *state) write(input string) {
	table := st.table
	for _, ch := range input {
		rule, ok := table.Rule(ch)
		if !ok {
			table.writeSigns(&st.out, st.signs)
			st.out.WriteRune(ch)
			st.signs, st.carry = st.signs[:0], st.carry[:0]
			continue
		}
		if rule.Signs.Valid {
			composite := rule.IsComposite()
			for _, sign := range rule.Signs.Value {
				if composite || table.IsPrefixSign(sign) {
					st.carry = append(st.carry, sign)
				} else {
					st.signs = append(st.signs, sign)
				}
			}
		}
		if rule.Consonant.Valid {
			table.writeSigns(&st.out, st.signs)
			st.out.WriteString(rule.Consonant.Value)
			st.signs, st.carry = st.carry, st.signs[:0] // swap buffers, pending signs have been written
		}
	}
}

// flush writes pending signs at the end of input. Carried-over signs without
// a following consonant are dropped.
func (st *state) flush() {
	st.table.writeSigns(&st.out, st.signs)
	st.signs, st.carry = st.signs[:0], st.carry[:0]
}

// take returns the output produced so far and resets it.
func (st *state) take() string {
	s := st.out.String()
	st.out.Reset()
	return s
}
