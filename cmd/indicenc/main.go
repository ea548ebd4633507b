// Command indicenc transliterates ASCII-romanized text into Unicode.
//
// Text is taken from the command line arguments or, if there are none, read
// line by line from standard input.
//
//	indicenc --lang lepcha "ik kMu"
//	indicenc --mappings map.csv --priorities prio.csv --prefixes prefix.csv < in.txt
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/samber/lo"

	"github.com/npillmayer/indicenc"
	"github.com/npillmayer/indicenc/languages"
	"github.com/npillmayer/indicenc/resource"
)

func main() {
	if err := mainE(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE(args []string, stdin io.Reader, stdout io.Writer) error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("indicenc")
	var (
		lang       = fs.StringLong("lang", "lepcha", "language of the input text")
		mappings   = fs.StringLong("mappings", "", "character mappings file (overrides --lang)")
		priorities = fs.StringLong("priorities", "", "sign priorities file")
		prefixes   = fs.StringLong("prefixes", "", "prefix signs file")
		list       = fs.BoolLong("list", "list supported languages and exit")
	)
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("INDICENC")); err != nil {
		fmt.Fprintf(stdout, "%s\n", ffhelp.Flags(fs))
		if errors.Is(err, ff.ErrHelp) {
			return err
		}
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *list {
		for _, name := range languages.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	enc, err := encoder(*lang, resource.Resources{
		Mappings:   *mappings,
		Priorities: *priorities,
		Prefixes:   *prefixes,
	})
	if err != nil {
		return err
	}

	if text := fs.GetArgs(); len(text) > 0 {
		_, err := fmt.Fprintln(stdout, enc.Transliterate(strings.Join(text, " ")))
		return err
	}
	return enc.TransliterateLines(stdin, stdout)
}

// encoder selects the transliteration table: custom resource files if any is
// given, a registered language otherwise.
func encoder(lang string, res resource.Resources) (*indicenc.Encoder, error) {
	custom := []string{res.Mappings, res.Priorities, res.Prefixes}
	if !lo.SomeBy(custom, func(path string) bool { return path != "" }) {
		return languages.Encoder(lang)
	}
	var err error
	for _, path := range []*string{&res.Mappings, &res.Priorities, &res.Prefixes} {
		if *path, err = rooted(*path); err != nil {
			return nil, err
		}
	}
	table, err := resource.Build("custom", os.DirFS("/"), res)
	if err != nil {
		return nil, err
	}
	return indicenc.NewEncoder(table), nil
}

// rooted turns a file path into a path relative to the file system root, as
// required by fs.FS.
func rooted(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(filepath.ToSlash(abs), "/"), nil
}
