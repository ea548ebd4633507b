package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/indicenc/languages"
	"github.com/npillmayer/indicenc/resource"
)

func TestArgumentText(t *testing.T) {
	var out bytes.Buffer
	err := mainE([]string{"--lang", "lepcha", "ik", "kMu"}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "ᰀᰧ ᰀᰪᰮ\n", out.String())
}

func TestStdin(t *testing.T) {
	var out bytes.Buffer
	err := mainE([]string{"--lang", "limbu"}, strings.NewReader("ik\nkMu\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "ᤁᤡ\nᤁᤢᤶ\n", out.String())
}

func TestStdinKeepsLineEndings(t *testing.T) {
	var out bytes.Buffer
	err := mainE([]string{"--lang", "limbu"}, strings.NewReader("ik\r\nkMu"), &out)
	require.NoError(t, err)
	assert.Equal(t, "ᤁᤡ\r\nᤁᤢᤶ", out.String())
}

func TestList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, mainE([]string{"--list"}, strings.NewReader(""), &out))
	assert.Equal(t, strings.Join(languages.Names(), "\n")+"\n", out.String())
}

func TestUnknownLanguage(t *testing.T) {
	var out bytes.Buffer
	err := mainE([]string{"--lang", "tibetan", "ka"}, strings.NewReader(""), &out)
	var lerr *languages.UnsupportedLanguageError
	assert.ErrorAs(t, err, &lerr)
}

func TestCustomTable(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	mappings := write("map.csv", "alphabet,consonant,signs\na,C,\nb,,s\n")
	priorities := write("prio.csv", "unicode\ns\n")
	prefixes := write("prefix.json", `[{"unicode": "s"}]`)
	var out bytes.Buffer
	err := mainE([]string{"--mappings", mappings, "--priorities", priorities,
		"--prefixes", prefixes, "ba"}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Equal(t, "Cs\n", out.String())

	unsupported := write("prefix.txt", "s\n")
	err = mainE([]string{"--mappings", mappings, "--priorities", priorities,
		"--prefixes", unsupported, "ba"}, strings.NewReader(""), &out)
	var ferr *resource.UnsupportedFormatError
	assert.ErrorAs(t, err, &ferr)
}
