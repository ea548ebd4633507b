package indicenc

import (
	"sort"
	"strings"
)

// Priority returns the sort key of a sign. Signs not listed in the table's
// sign priorities sort after every listed sign.
func (table *Table) Priority(sign rune) int {
	if table == nil {
		return 0
	}
	if rank, ok := table.ranks[sign]; ok {
		return rank
	}
	return len(table.priorities) // one past the maximum assigned rank
}

// sortSigns orders signs by priority. Signs of equal priority keep their
// relative order. The slice is sorted in place.
func (table *Table) sortSigns(signs []rune) []rune {
	if len(signs) < 2 {
		return signs
	}
	sort.SliceStable(signs, func(i, j int) bool {
		return table.Priority(signs[i]) < table.Priority(signs[j])
	})
	return signs
}

// writeSigns appends signs to b in priority order.
func (table *Table) writeSigns(b *strings.Builder, signs []rune) {
	for _, sign := range table.sortSigns(signs) {
		b.WriteRune(sign)
	}
}

// SortSigns returns the characters of signs in priority order.
func (table *Table) SortSigns(signs string) string {
	var b strings.Builder
	b.Grow(len(signs))
	table.writeSigns(&b, []rune(signs))
	return b.String()
}
