package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardsmith/internal/config"
	"github.com/arcanaland/cardsmith/internal/mse"
)

func parseCompileFlags(t *testing.T, args ...string) (*pflag.FlagSet, compileFlags) {
	t.Helper()
	var o compileFlags
	f := pflag.NewFlagSet("compile", pflag.ContinueOnError)
	addCompileFlags(f, &o)
	require.NoError(t, f.Parse(args))
	return f, o
}

func TestCompileOptionsIncludeFlags(t *testing.T) {
	f, o := parseCompileFlags(t, "--planes-output", "planes.mse-set", "--include-schemes=false")
	opts, err := compileOptions(f, o, config.Default())
	require.NoError(t, err)

	assert.Nil(t, opts.Template.IncludePlanes)
	assert.Equal(t, "planes.mse-set", opts.Template.PlanesOutput)
	require.NotNil(t, opts.Template.IncludeSchemes)
	assert.False(t, *opts.Template.IncludeSchemes)
	assert.Nil(t, opts.Template.IncludeVanguards)
}

func TestCompileOptionsConfigFallback(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultBorder = "gold"
	cfg.SetCode = "HOME"
	cfg.Jobs = 3

	f, o := parseCompileFlags(t, "--set-code", "CLI")
	opts, err := compileOptions(f, o, cfg)
	require.NoError(t, err)
	assert.Equal(t, "rgb(200, 180, 0)", opts.Set.Border.String())
	assert.Equal(t, "CLI", opts.Set.SetCode)
	assert.Equal(t, "NOT FOR SALE", opts.Set.Copyright)
	assert.Equal(t, 3, opts.Jobs)

	f, o = parseCompileFlags(t, "--border", "plaid")
	_, err = compileOptions(f, o, cfg)
	assert.Error(t, err)
}

func TestReadRecordsFromStdin(t *testing.T) {
	records, err := readRecords(nil, strings.NewReader("- name: Forest\n  type: Basic Land — Forest\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Forest", records[0].Name)

	_, err = readRecords(nil, strings.NewReader("- name: [\n"))
	assert.Error(t, err)
}

func TestCompileCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	cards := filepath.Join(dir, "cards.toml")
	require.NoError(t, os.WriteFile(cards, []byte(`
[[card]]
name = "Llanowar Elves"
mana_cost = "{G}"
type = "Creature — Elf Druid"
text = "{T}: Add {G}."
power = "1"
toughness = "1"
rarity = "common"

[[card]]
name = "Naya"
type = "Plane — Alara"
layout = "plane"
text = "You may play any number of lands on each of your turns."
`), 0644))

	mainSet := filepath.Join(dir, "main.mse-set")
	planes := filepath.Join(dir, "planes.mse-set")
	var stderr bytes.Buffer
	RootCmd.SetErr(&stderr)
	RootCmd.SetArgs([]string{"compile", cards, "-o", mainSet, "--planes-output", planes, "--offline"})
	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, stderr.String(), "2 cards compiled")

	for path, want := range map[string]string{mainSet: "Llanowar Elves", planes: "Naya"} {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		archive, err := mse.ReadArchive(data)
		require.NoError(t, err)
		cards := archive.Set.Cards()
		require.Len(t, cards, 1, path)
		name, _ := cards[0].Fields.Get("name")
		assert.Equal(t, want, name)
	}
}
