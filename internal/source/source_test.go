package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/markup"
)

const tomlCards = `
[[card]]
name = "Llanowar Elves"
mana_cost = "{G}"
type = "Creature — Elf Druid"
text = "{T}: Add {G}."
power = "1"
toughness = "1"
rarity = "c"
art = "llanowar.png"

[[card]]
layout = "split"
rarity = "uncommon"

[[card.faces]]
name = "Fire"
mana_cost = "{1}{R}"
type = "Instant"
text = "Fire deals 2 damage divided as you choose among one or two targets."

[[card.faces]]
name = "Ice"
mana_cost = "{1}{U}"
type = "Instant"
text = "Tap target permanent.\nDraw a card."
`

func TestDecodeTOML(t *testing.T) {
	records, err := Decode(strings.NewReader(tomlCards), TOML)
	require.NoError(t, err)
	require.Len(t, records, 3)

	elves := records[0]
	assert.Equal(t, "Llanowar Elves", elves.Name)
	assert.Equal(t, []card.Symbol{"G"}, elves.ManaCost)
	assert.Equal(t, card.Colors{card.Green}, elves.Colors)
	assert.Equal(t, card.RarityCommon, elves.Rarity)
	assert.Equal(t, "llanowar.png", elves.ArtReference)
	require.NotNil(t, elves.Power)
	assert.Equal(t, card.Stat("1"), *elves.Power)
	assert.Equal(t, []string{"Elf", "Druid"}, elves.Type.Subtypes)
	assert.Empty(t, elves.RelatedFaces)

	fire, ice := records[1], records[2]
	assert.Equal(t, card.Split, fire.Layout)
	assert.Equal(t, card.Split, ice.Layout)
	assert.Equal(t, []int{2}, fire.RelatedFaces)
	assert.Equal(t, []int{1}, ice.RelatedFaces)
	assert.Equal(t, card.RarityUncommon, ice.Rarity)
	assert.Len(t, ice.Rules, 2)

	for i := range records {
		assert.NoError(t, records[i].Validate(i, len(records)))
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := `
card:
  - name: Jace Beleren
    mana_cost: "{1}{U}{U}"
    type: Legendary Planeswalker — Jace
    loyalty: 3
    colors: blue
    text: |-
      +2: Each player draws a card.
      −1: Target player draws a card.
`
	records, err := Decode(strings.NewReader(doc), YAML)
	require.NoError(t, err)
	require.Len(t, records, 1)
	jace := records[0]
	require.NotNil(t, jace.Loyalty)
	assert.Equal(t, card.Stat("3"), *jace.Loyalty)
	assert.Equal(t, card.Colors{card.Blue}, jace.Colors)
	assert.True(t, jace.Type.HasSupertype("Legendary"))
	require.Len(t, jace.Rules, 2)
	assert.Equal(t, "+2: Each player draws a card.", jace.Rules[0].Plain())

	list := `
- name: Naya
  type: Plane — Alara
  layout: plane
- name: Sisay
  type: Vanguard
  layout: vanguard
  hand: 1
  life: -3
`
	records, err = Decode(strings.NewReader(list), YAML)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, card.Plane, records[0].Layout)
	require.NotNil(t, records[1].LifeModifier)
	assert.Equal(t, -3, *records[1].LifeModifier)

	records, err = Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
		want   string
	}{
		{"unknown toml key", TOML, "[[card]]\nname = \"x\"\npowr = \"1\"\n", "unknown key"},
		{"unknown yaml key", YAML, "card:\n  - name: x\n    powr: 1\n", "powr"},
		{"broken toml", TOML, "[[card]\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecodeKeepsUnreadableCards(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad cost", "- name: x\n  mana_cost: \"{G\"\n", "end with }"},
		{"unknown rarity", "- name: x\n  rarity: legendary\n", "unknown rarity"},
		{"faces without layout", "- faces:\n    - name: a\n    - name: b\n", "split or double-faced"},
		{"single face", "- layout: transform\n  faces:\n    - name: a\n", "at least two faces"},
		{"bad rules", "- name: x\n  text: Draw (a card\n", "malformed text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "- name: Good One\n  type: Instant\n  text: Draw a card.\n" + tt.doc
			records, err := Decode(strings.NewReader(doc), YAML)
			require.NoError(t, err)
			require.Len(t, records, 2)
			assert.NoError(t, records[0].Validate(0, 2))
			require.Error(t, records[1].Err)
			assert.Contains(t, records[1].Err.Error(), tt.want)
			assert.Equal(t, records[1].Err, records[1].Validate(1, 2))
		})
	}

	records, err := Decode(strings.NewReader("- name: x\n  text: Draw (a card\n"), YAML)
	require.NoError(t, err)
	assert.ErrorIs(t, records[0].Err, markup.ErrMalformedText)

	records, err = Decode(strings.NewReader("- faces:\n    - name: a\n    - name: b\n"), YAML)
	require.NoError(t, err)
	assert.Equal(t, "a // b", records[0].Name)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "cards.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(tomlCards), 0644))
	jsonPath := filepath.Join(dir, "cards.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"card": [{"name": "Llanowar Elves", "mana_cost": "{G}", "type": "Creature — Elf Druid", "text": "{T}: Add {G}.", "power": "1", "toughness": "1", "rarity": "c", "art": "llanowar.png"}]}`), 0644))

	fromTOML, err := Load(tomlPath)
	require.NoError(t, err)
	fromJSON, err := Load(jsonPath)
	require.NoError(t, err)
	if diff := cmp.Diff(fromTOML[:1], fromJSON); diff != "" {
		t.Errorf("toml and json disagree (-toml +json):\n%s", diff)
	}

	all, err := LoadAll([]string{jsonPath, tomlPath})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []int{3}, all[2].RelatedFaces)
	assert.Equal(t, []int{2}, all[3].RelatedFaces)
	for i := range all {
		assert.NoError(t, all[i].Validate(i, len(all)))
	}

	_, err = Load(filepath.Join(dir, "cards.txt"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
