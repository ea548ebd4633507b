/*
Package runemap provides a compact lookup table from runes to small integer
values.

The table is used to index the source alphabet of a transliteration table:
every alphabet character is mapped to the (1-based) position of its rule.
Lookups on the hot path of transliteration are two array reads for runes in
the Basic Multilingual Plane; runes outside the BMP are kept in a plain map.
*/
package runemap

// PagedMap maps runes to uint16 values. Value 0 means "absent".
//
// BMP code points live in a two-level page table:
//   - top[hi] = page index (1..NumPages), or 0 meaning "page absent".
//   - pages is a flat array of NumPages*256 entries.
//
// Memory:
//   - top: 256 * 2 = 512 bytes
//   - each populated page: 256 * 2 = 512 bytes
//
// A romanized alphabet typically touches one or two pages.
type PagedMap struct {
	top    [256]uint16     // page index (1-based); 0 means none
	pages  []uint16        // flat: NumPages*256
	astral map[rune]uint16 // runes beyond the BMP
	count  int             // number of non-zero entries
}

const maxBMP = 0xFFFF

// Get returns the value for r. Returns 0 if absent.
func (m *PagedMap) Get(r rune) uint16 {
	if r < 0 {
		return 0
	}
	if r > maxBMP {
		return m.astral[r]
	}
	pi := m.top[r>>8]
	if pi == 0 {
		return 0
	}
	base := int(pi-1) << 8 // *256
	return m.pages[base+int(r&0xFF)]
}

// Contains is true if r maps to a non-zero value.
func (m *PagedMap) Contains(r rune) bool {
	return m.Get(r) != 0
}

// NumPages returns the number of allocated pages.
func (m *PagedMap) NumPages() int { return len(m.pages) >> 8 }

// Len returns the number of runes with a non-zero value.
func (m *PagedMap) Len() int { return m.count }

// ensurePage ensures that the page for high byte hi exists.
// Returns the 1-based page index.
func (m *PagedMap) ensurePage(hi rune) uint16 {
	pi := m.top[hi]
	if pi != 0 {
		return pi
	}
	// allocate a new page (256 uint16 initialized to 0)
	m.pages = append(m.pages, make([]uint16, 256)...)
	pi = uint16(len(m.pages) >> 8) // number of pages, 1-based index
	m.top[hi] = pi
	return pi
}

// Set sets mapping r -> v (v may be 0 to clear). Negative runes are ignored.
func (m *PagedMap) Set(r rune, v uint16) {
	if r < 0 {
		return
	}
	old := m.Get(r)
	switch {
	case old == 0 && v != 0:
		m.count++
	case old != 0 && v == 0:
		m.count--
	}
	if r > maxBMP {
		if v == 0 {
			delete(m.astral, r)
			return
		}
		if m.astral == nil {
			m.astral = make(map[rune]uint16)
		}
		m.astral[r] = v
		return
	}
	hi := r >> 8
	pi := m.top[hi]
	if pi == 0 {
		if v == 0 {
			return
		}
		pi = m.ensurePage(hi)
	}
	base := int(pi-1) << 8
	m.pages[base+int(r&0xFF)] = v
}
