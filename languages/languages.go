/*
Package languages provides pre-configured transliteration tables for
Himalayan scripts.

Supported out of the box:

	lepcha    Lepcha (Róng), U+1C00–U+1C4F
	limbu     Limbu (Yakthung), U+1900–U+194F

Resource files for these scripts are embedded into the binary. Clients may
register additional scripts with Register.

Example:

	enc, err := languages.Encoder("lepcha")
	if err != nil {
		...
	}
	s := enc.Transliterate("ik")
*/
package languages

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/indicenc"
	"github.com/npillmayer/indicenc/resource"
)

// tracer writes to trace with key 'indicenc.languages'
func tracer() tracing.Trace {
	return tracing.Select("indicenc.languages")
}

//go:embed data
var data embed.FS

// resourcesIn returns the standard resource layout for a script directory.
func resourcesIn(dir string) resource.Resources {
	return resource.Resources{
		Mappings:   dir + "/char_mappings.csv",
		Priorities: dir + "/sign_priorities.csv",
		Prefixes:   dir + "/prefix_signs.csv",
	}
}

// UnsupportedLanguageError is returned for a language name which is not
// registered, or is an ambiguous abbreviation of several registered names.
type UnsupportedLanguageError struct {
	Name       string
	Candidates []string // registered names starting with Name, if any
}

func (e *UnsupportedLanguageError) Error() string {
	if len(e.Candidates) > 1 {
		return fmt.Sprintf("ambiguous language %q, could be one of %s",
			e.Name, strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("unsupported language: %q", e.Name)
}

// Language is a registered script. Its table is built on first use and
// cached afterwards.
type Language struct {
	Name  string
	fsys  fs.FS
	res   resource.Resources
	once  sync.Once
	table *indicenc.Table
	err   error
}

// Resources returns the resource identifiers the language's table is built from.
func (lang *Language) Resources() resource.Resources {
	return lang.res
}

// Table returns the transliteration table for the language.
func (lang *Language) Table() (*indicenc.Table, error) {
	lang.once.Do(func() {
		lang.table, lang.err = resource.Build(lang.Name, lang.fsys, lang.res)
		if lang.err != nil {
			tracer().Errorf("language %s: %v", lang.Name, lang.err)
		}
	})
	return lang.table, lang.err
}

// Encoder returns an encoder for the language.
func (lang *Language) Encoder() (*indicenc.Encoder, error) {
	table, err := lang.Table()
	if err != nil {
		return nil, err
	}
	return indicenc.NewEncoder(table), nil
}

// Registry resolves language names to languages. Names are case-insensitive,
// and a unique prefix of a name selects that language.
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	names *trie.Trie // name => *Language
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: trie.New()}
}

// Register adds a language. Its resources are loaded from fsys on first use.
func (reg *Registry) Register(name string, fsys fs.FS, res resource.Resources) (*Language, error) {
	key := normalize(name)
	if key == "" {
		return nil, fmt.Errorf("cannot register language with empty name")
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, found := reg.names.Find(key); found {
		return nil, fmt.Errorf("language %q already registered", key)
	}
	lang := &Language{Name: key, fsys: fsys, res: res}
	reg.names.Add(key, lang)
	tracer().Debugf("registered language %s", key)
	return lang, nil
}

// Lookup returns the language registered for name.
func (reg *Registry) Lookup(name string) (*Language, error) {
	key := normalize(name)
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	if key != "" {
		if node, found := reg.names.Find(key); found {
			return node.Meta().(*Language), nil
		}
		if candidates := reg.names.PrefixSearch(key); len(candidates) == 1 {
			node, _ := reg.names.Find(candidates[0])
			return node.Meta().(*Language), nil
		} else if len(candidates) > 1 {
			return nil, &UnsupportedLanguageError{Name: name, Candidates: sorted(candidates)}
		}
	}
	return nil, &UnsupportedLanguageError{Name: name}
}

// Names returns the registered language names in alphabetical order.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return sorted(reg.names.Keys())
}

func sorted(names []string) []string {
	names = append([]string(nil), names...)
	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// --- Default registry ------------------------------------------------------

var defaultRegistry = func() *Registry {
	reg := NewRegistry()
	sub, err := fs.Sub(data, "data")
	if err != nil {
		panic(err)
	}
	for _, name := range []string{"lepcha", "limbu"} {
		if _, err := reg.Register(name, sub, resourcesIn(name)); err != nil {
			panic(err)
		}
	}
	return reg
}()

// Register adds a language to the default registry.
func Register(name string, fsys fs.FS, res resource.Resources) (*Language, error) {
	return defaultRegistry.Register(name, fsys, res)
}

// Lookup finds a language in the default registry.
func Lookup(name string) (*Language, error) {
	return defaultRegistry.Lookup(name)
}

// Names lists the languages of the default registry.
func Names() []string {
	return defaultRegistry.Names()
}

// Encoder returns an encoder for a language of the default registry.
func Encoder(name string) (*indicenc.Encoder, error) {
	lang, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return lang.Encoder()
}
