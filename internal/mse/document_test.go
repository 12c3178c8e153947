package mse

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardsmith/internal/resource"
	"github.com/arcanaland/cardsmith/internal/template"
)

func entry(group, face int, name string, routing template.Routing, fields ...string) *template.Entry {
	e := &template.Entry{
		Name:       name,
		Game:       routing.Game(),
		TemplateID: routing.Game().DefaultStylesheet(),
		Routing:    routing,
		Group:      group,
		FaceIndex:  face,
	}
	e.StyleID = string(e.Game) + "-" + e.TemplateID
	key := "name"
	if face > 0 {
		key = "name 2"
	}
	e.Fields.Set(key, name)
	for i := 0; i+1 < len(fields); i += 2 {
		e.Fields.Set(fields[i], fields[i+1])
	}
	return e
}

func fields(d *DataFile) template.Fields {
	var out template.Fields
	for _, item := range d.Items {
		out = append(out, template.Field{Key: item.Key, Value: item.Text})
	}
	return out
}

func TestAssembleGroupsByRouting(t *testing.T) {
	entries := []*template.Entry{
		entry(0, 0, "Grizzly Bears", template.MainSet),
		entry(1, 0, "Naya", template.PlanesFile),
		entry(2, 0, "Fire", template.MainSet),
		entry(4, 0, "Llanowar Elves", template.MainSet),
		entry(2, 1, "Ice", template.MainSet),
		entry(5, 0, "Akroma", template.PlanesFile),
	}

	docs, err := Assemble(entries, Options{})
	require.NoError(t, err)
	require.Len(t, docs, 2)

	names := func(doc *SetDocument) []string {
		var out []string
		for _, e := range doc.Entries() {
			out = append(out, e.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Grizzly Bears", "Fire", "Ice", "Llanowar Elves"}, names(docs[template.MainSet]))
	assert.Equal(t, []string{"Naya", "Akroma"}, names(docs[template.PlanesFile]))
	assert.Len(t, docs[template.MainSet].Cards, 3)
	assert.Equal(t, template.Planechase, docs[template.PlanesFile].Game)
}

func TestAssembleConfigurationMismatch(t *testing.T) {
	entries := []*template.Entry{
		entry(0, 0, "Fire", template.MainSet),
		entry(0, 1, "Ice", template.PlanesFile),
	}
	_, err := Assemble(entries, Options{})
	assert.ErrorIs(t, err, ErrConfigurationMismatch)
}

func TestAssembleFormatVersion(t *testing.T) {
	_, err := Assemble(nil, Options{FormatVersion: "2.0.0"})
	assert.ErrorIs(t, err, ErrUnsupportedFormatVersion)

	_, err = Assemble(nil, Options{FormatVersion: FormatVersion})
	assert.NoError(t, err)
}

func TestSetDocumentHeader(t *testing.T) {
	border, err := ParseBorder("silver")
	require.NoError(t, err)

	docs, err := Assemble([]*template.Entry{entry(0, 0, "Grizzly Bears", template.MainSet)}, Options{Border: border, AutoCardNumbers: true})
	require.NoError(t, err)
	df := docs[template.MainSet].DataFile()

	version, _ := df.Get("mse version")
	assert.Equal(t, "0.3.8", version)
	game, _ := df.Get("game")
	assert.Equal(t, "magic", game)

	info := df.Sub("set info")
	require.NotNil(t, info)
	for key, want := range map[string]string{
		"copyright":              DefaultCopyright,
		"set code":               DefaultSetCode,
		"border color":           "rgb(128, 128, 128)",
		"automatic card numbers": "yes",
		"description":            "This card was compiled by cardsmith.",
	} {
		got, ok := info.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	require.NotNil(t, df.Sub("styling"))
	altered := df.Sub("styling").Sub("magic-m15-altered")
	require.NotNil(t, altered)
	if diff := cmp.Diff(StyleSettings("magic-m15-altered"), fields(altered)); diff != "" {
		t.Errorf("styling mismatch (-want +got):\n%s", diff)
	}
	center, _ := altered.Get("center text")
	assert.Equal(t, "short text only", center)
	vc := df.Sub("version control")
	require.NotNil(t, vc)
	typ, _ := vc.Get("type")
	assert.Equal(t, "none", typ)

	docs, err = Assemble([]*template.Entry{entry(0, 0, "Grizzly Bears", template.MainSet)}, Options{})
	require.NoError(t, err)
	_, ok := docs[template.MainSet].DataFile().Sub("set info").Get("border color")
	assert.False(t, ok, "black borders are not written")
}

func TestSerializeRoundTrip(t *testing.T) {
	shared := resource.NewBlob("forest.png", ".png", []byte("forest art"))
	other := resource.NewBlob("island.png", ".png", []byte("island art"))
	sameAsShared := resource.NewBlob("forest-copy.png", ".png", []byte("forest art"))

	front := entry(1, 0, "Fire", template.MainSet, "image", "", "casting cost", "1R", "rule text", "Fire deals 2 damage divided as you choose.\nSecond line.")
	front.TemplateID, front.StyleID = "m15-split", "magic-m15-split"
	front.Art = other
	back := entry(1, 1, "Ice", template.MainSet, "casting cost 2", "1U", "flavor text 2", "war: never\npeace: always")

	entries := []*template.Entry{
		entry(0, 0, "Forest", template.MainSet, "image", "", "watermark", "mana symbol green"),
		front,
		back,
		entry(3, 0, "Forest", template.MainSet, "image", ""),
	}
	entries[0].Art = shared
	entries[3].Art = sameAsShared
	entries[0].Extra.Set("stamp", "land")

	docs, err := Assemble(entries, Options{})
	require.NoError(t, err)
	doc := docs[template.MainSet]

	data, err := Serialize(doc)
	require.NoError(t, err)
	archive, err := ReadArchive(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"set", "image1", "image2"}, archive.Order)
	assert.Equal(t, []byte("forest art"), archive.Members["image1"])
	assert.Equal(t, []byte("island art"), archive.Members["image2"])

	want := []Card{
		{TemplateID: "m15-altered", Fields: template.Fields{
			{Key: "name", Value: "Forest"},
			{Key: "image", Value: "image1"},
			{Key: "watermark", Value: "mana symbol green"},
		}},
		{TemplateID: "m15-split", Fields: template.Fields{
			{Key: "name", Value: "Fire"},
			{Key: "image", Value: "image2"},
			{Key: "casting cost", Value: "1R"},
			{Key: "rule text", Value: "Fire deals 2 damage divided as you choose.\nSecond line."},
			{Key: "name 2", Value: "Ice"},
			{Key: "casting cost 2", Value: "1U"},
			{Key: "flavor text 2", Value: "war: never\npeace: always"},
		}},
		{TemplateID: "m15-altered", Fields: template.Fields{
			{Key: "name", Value: "Forest"},
			{Key: "image", Value: "image1"},
		}},
	}
	if diff := cmp.Diff(want, archive.Set.Cards()); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}

	styling := archive.Set.Sub("styling")
	require.NotNil(t, styling)
	split := styling.Sub("magic-m15-split")
	require.NotNil(t, split)
	v, _ := split.Get("center text 1")
	assert.Equal(t, "always", v)

	stamp := archive.Set.All("card")[0].Sub("extra data")
	require.NotNil(t, stamp)
	v, _ = stamp.Sub("magic-m15-altered").Get("stamp")
	assert.Equal(t, "land", v)

	again, err := Serialize(doc)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, again), "serializing twice must give identical archives")
}

func TestWriteArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "set.mse-set")

	require.NoError(t, WriteArchive(path, []byte("archive"), nil))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("archive"), got)

	var stdout bytes.Buffer
	require.NoError(t, WriteArchive("-", []byte("archive"), &stdout))
	assert.Equal(t, "archive", stdout.String())

	err = WriteArchive(filepath.Join(dir, "missing", "set.mse-set"), []byte("archive"), nil)
	assert.ErrorIs(t, err, ErrArchiveWrite)
	_, statErr := os.Stat(filepath.Join(dir, "missing", "set.mse-set"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestParseBorder(t *testing.T) {
	tests := map[string]string{
		"white":   "rgb(255, 255, 255)",
		"w":       "rgb(255, 255, 255)",
		"silver":  "rgb(128, 128, 128)",
		"gold":    "rgb(200, 180, 0)",
		"b":       "rgb(222, 127, 50)",
		"#102030": "rgb(16, 32, 48)",
	}
	for in, want := range tests {
		b, err := ParseBorder(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, b.String(), in)
		assert.False(t, b.Black(), in)
	}

	b, err := ParseBorder("black")
	require.NoError(t, err)
	assert.True(t, b.Black())

	_, err = ParseBorder("plaid")
	assert.Error(t, err)
}
