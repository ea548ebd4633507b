/*
Package indicenc transliterates ASCII-romanized text of Indic and Himalayan
scripts (for example Lepcha or Limbu) into Unicode.

Legacy typing conventions for these scripts enter text in (roughly) visual
order: a vowel sign drawn to the left of its consonant is typed before the
consonant, and marks above or below a letter are typed in whatever order is
convenient. Unicode, on the other hand, requires logical order with the
consonant first and dependent signs following it in a canonical order.

Conversion is driven entirely by a Table, which is built from three
tabular resources:

  - character mappings: alphabet character → consonant and/or signs
  - sign priorities: the canonical order of signs
  - prefix signs: signs which are typed before the consonant they belong to

File format parsing is outside of this package. Use adapters like package
csvrecords or structrecords to read concrete formats, package resource to
load a complete set of resources, or package languages for pre-configured
scripts.

Example:

	table, err := indicenc.BuildTable(mappings, priorities, prefixes)
	if err != nil {
		...
	}
	s := indicenc.Transliterate(table, "kMu")

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package indicenc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'indicenc'
func tracer() tracing.Trace {
	return tracing.Select("indicenc")
}
