package indicenc

import (
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/npillmayer/indicenc/runemap"
)

// Rule is the encoding rule for one alphabet character.
//
// Consonant is the base glyph the alphabet character maps to, Signs are
// diacritic marks attached to it. Either may be missing. A rule carrying both
// is called composite: its signs always follow its own consonant.
type Rule struct {
	Alphabet  rune
	Consonant Field
	Signs     Field
}

// IsComposite is true if the rule has both a consonant and signs.
func (r Rule) IsComposite() bool {
	return r.Consonant.Valid && r.Signs.Valid
}

// Table is a loaded transliteration table. A table is immutable after
// construction and may be shared between goroutines.
type Table struct {
	Identifier string           // identifies the table
	rules      []Rule           // in order of the mapping resource
	alphabet   runemap.PagedMap // alphabet character => position in rules + 1
	priorities []rune           // sign priority order, highest priority first
	ranks      map[rune]int     // sign => position in priorities
	prefixes   map[rune]struct{}
}

// BuildTable creates a table from in-memory records: character mappings,
// sign priorities and prefix signs.
//
// Mapping records must carry field "alphabet"; "consonant" and "signs" are
// optional. Priority and prefix records carry field "unicode", of which only
// the first character is used.
func BuildTable(mappings, priorities, prefixes []Record) (*Table, error) {
	return LoadTable("", RecordList(mappings), RecordList(priorities), RecordList(prefixes))
}

// LoadTable creates a table from streaming, format-agnostic sources.
//
// All values are sanitized (see Sanitize) before use. Any malformed record
// aborts construction with a *ValidationError.
func LoadTable(name string, mappings, priorities, prefixes RecordReader) (*Table, error) {
	table := &Table{
		Identifier: fmt.Sprintf("table: %s", name),
		ranks:      make(map[rune]int),
	}
	if err := table.loadMappings(mappings); err != nil {
		tracer().Errorf("cannot load %s: %v", table.Identifier, err)
		return nil, err
	}
	prio, err := loadSigns(ResourcePriorities, priorities)
	if err != nil {
		tracer().Errorf("cannot load %s: %v", table.Identifier, err)
		return nil, err
	}
	table.priorities = prio
	for i, sign := range prio {
		if _, seen := table.ranks[sign]; !seen { // first occurrence wins
			table.ranks[sign] = i
		}
	}
	prefix, err := loadSigns(ResourcePrefixes, prefixes)
	if err != nil {
		tracer().Errorf("cannot load %s: %v", table.Identifier, err)
		return nil, err
	}
	table.prefixes = lo.Keyify(prefix)
	tracer().Infof("%s: %d rules, %d sign priorities, %d prefix signs, %d alphabet pages",
		table.Identifier, len(table.rules), len(table.priorities), len(table.prefixes),
		table.alphabet.NumPages())
	return table, nil
}

func (table *Table) loadMappings(reader RecordReader) error {
	if reader == nil {
		return invalid(ResourceMappings, -1, "", "no record source")
	}
	for i := 0; ; i++ {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &ValidationError{Resource: ResourceMappings, Index: i, Reason: "cannot read record", Err: err}
		}
		rule, verr := ruleFromRecord(rec, i)
		if verr != nil {
			return verr
		}
		if table.alphabet.Contains(rule.Alphabet) {
			return invalid(ResourceMappings, i, FieldAlphabet,
				fmt.Sprintf("duplicate alphabet character %q", rule.Alphabet))
		}
		if len(table.rules) >= math.MaxUint16 {
			return invalid(ResourceMappings, i, "", "too many rules")
		}
		table.rules = append(table.rules, rule)
		table.alphabet.Set(rule.Alphabet, uint16(len(table.rules)))
	}
}

func ruleFromRecord(rec Record, index int) (Rule, error) {
	a := rec.Get(FieldAlphabet)
	if !a.Valid {
		return Rule{}, invalid(ResourceMappings, index, FieldAlphabet, "missing value")
	}
	alphabet := Sanitize(a.Value)
	if alphabet == "" {
		return Rule{}, invalid(ResourceMappings, index, FieldAlphabet, "blank value")
	}
	ch, size := utf8.DecodeRuneInString(alphabet)
	if ch == utf8.RuneError && size == 1 {
		return Rule{}, invalid(ResourceMappings, index, FieldAlphabet, "invalid UTF-8")
	}
	if size != len(alphabet) {
		return Rule{}, invalid(ResourceMappings, index, FieldAlphabet,
			fmt.Sprintf("%q is not a single character", alphabet))
	}
	return Rule{
		Alphabet:  ch,
		Consonant: sanitizeField(rec.Get(FieldConsonant)),
		Signs:     sanitizeField(rec.Get(FieldSigns)),
	}, nil
}

func sanitizeField(f Field) Field {
	if !f.Valid {
		return Missing
	}
	return Value(Sanitize(f.Value))
}

// loadSigns reads records with a "unicode" field and keeps the first
// character of each value.
func loadSigns(resource string, reader RecordReader) ([]rune, error) {
	if reader == nil {
		return nil, invalid(resource, -1, "", "no record source")
	}
	var signs []rune
	for i := 0; ; i++ {
		rec, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return signs, nil
		}
		if err != nil {
			return nil, &ValidationError{Resource: resource, Index: i, Reason: "cannot read record", Err: err}
		}
		u := rec.Get(FieldUnicode)
		if !u.Valid {
			return nil, invalid(resource, i, FieldUnicode, "missing value")
		}
		value := Sanitize(u.Value)
		if value == "" {
			return nil, invalid(resource, i, FieldUnicode, "blank value")
		}
		sign, size := utf8.DecodeRuneInString(value)
		if sign == utf8.RuneError && size == 1 {
			return nil, invalid(resource, i, FieldUnicode, "invalid UTF-8")
		}
		signs = append(signs, sign)
	}
}

// --- Queries ---------------------------------------------------------------

// Len returns the number of rules.
func (table *Table) Len() int {
	if table == nil {
		return 0
	}
	return len(table.rules)
}

// Rules returns a copy of all rules, in order of the mapping resource.
func (table *Table) Rules() []Rule {
	if table == nil {
		return nil
	}
	rules := make([]Rule, len(table.rules))
	copy(rules, table.rules)
	return rules
}

// Rule returns the rule for an alphabet character.
func (table *Table) Rule(alphabet rune) (Rule, bool) {
	if table == nil {
		return Rule{}, false
	}
	pos := table.alphabet.Get(alphabet)
	if pos == 0 {
		return Rule{}, false
	}
	return table.rules[pos-1], true
}

// Knows is true if ch is part of the table's alphabet.
func (table *Table) Knows(ch rune) bool {
	return table != nil && table.alphabet.Contains(ch)
}

// SignPriorities returns a copy of the sign priority order.
func (table *Table) SignPriorities() []rune {
	if table == nil {
		return nil
	}
	return append([]rune(nil), table.priorities...)
}

// IsPrefixSign is true if sign is typed before the consonant it belongs to.
func (table *Table) IsPrefixSign(sign rune) bool {
	if table == nil {
		return false
	}
	_, ok := table.prefixes[sign]
	return ok
}
