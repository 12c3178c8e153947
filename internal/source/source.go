// Package source reads card records from local TOML and YAML card files.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/markup"
)

// Format is the encoding of a card file
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatFor picks the format from a file extension. JSON files are read as YAML.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml", ".json":
		return YAML, nil
	}
	return "", fmt.Errorf("unsupported card file type: %s", path)
}

// Card is one card as written in a card file
type Card struct {
	Name      string `toml:"name" yaml:"name"`
	ManaCost  string `toml:"mana_cost" yaml:"mana_cost"`
	Type      string `toml:"type" yaml:"type"`
	Text      string `toml:"text" yaml:"text"`
	Flavor    string `toml:"flavor" yaml:"flavor"`
	Power     string `toml:"power" yaml:"power"`
	Toughness string `toml:"toughness" yaml:"toughness"`
	Loyalty   string `toml:"loyalty" yaml:"loyalty"`
	Layout    string `toml:"layout" yaml:"layout"`
	Colors    string `toml:"colors" yaml:"colors"`
	Art       string `toml:"art" yaml:"art"`
	Number    string `toml:"number" yaml:"number"`
	Rarity    string `toml:"rarity" yaml:"rarity"`
	Hand      *int   `toml:"hand" yaml:"hand"`
	Life      *int   `toml:"life" yaml:"life"`

	// Faces are the halves of a split card or the sides of a double-faced card
	Faces []Card `toml:"faces" yaml:"faces"`
}

// File is the top level of a card file
type File struct {
	Cards []Card `toml:"card" yaml:"card"`
}

// Load reads the records of a card file
func Load(path string) ([]card.Record, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open card file: %w", err)
	}
	defer f.Close()

	records, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadAll reads several card files into one record sequence, in argument order
func LoadAll(paths []string) ([]card.Record, error) {
	var all []card.Record
	for _, path := range paths {
		records, err := Load(path)
		if err != nil {
			return nil, err
		}
		all = Append(all, records)
	}
	return all, nil
}

// Append adds records to a sequence, shifting related face indices to their new
// positions
func Append(seq, records []card.Record) []card.Record {
	base := len(seq)
	for _, rec := range records {
		if len(rec.RelatedFaces) > 0 {
			shifted := make([]int, len(rec.RelatedFaces))
			for i, idx := range rec.RelatedFaces {
				shifted[i] = idx + base
			}
			rec.RelatedFaces = shifted
		}
		seq = append(seq, rec)
	}
	return seq
}

// Decode reads card records in the given format. Unknown keys are rejected so typos do
// not silently drop fields; problems with a single card are left on its record.
func Decode(r io.Reader, format Format) ([]card.Record, error) {
	var file File
	switch format {
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case YAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if err := decodeYAML(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return Records(file.Cards), nil
}

// decodeYAML accepts either a document with a "card" list or a bare list of cards
func decodeYAML(data []byte, file *File) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		return dec.Decode(&file.Cards)
	}
	return dec.Decode(file)
}

// Records converts file cards into records. Faces are flattened into adjacent records
// that list each other as related faces. A card that cannot be read is kept as a record
// carrying the error, so only that card fails.
func Records(cards []Card) []card.Record {
	var records []card.Record
	for _, c := range cards {
		if len(c.Faces) == 0 {
			rec, err := c.record()
			rec.Err = err
			records = append(records, rec)
			continue
		}

		layout, err := card.ParseLayout(c.Layout)
		switch {
		case err != nil:
		case !layout.MultiFace():
			err = errors.New("cards with faces need a split or double-faced layout")
		case len(c.Faces) < 2:
			err = errors.New("cards with faces need at least two faces")
		}
		if err != nil {
			records = append(records, card.Record{Name: c.faceNames(), Err: err})
			continue
		}

		first := len(records)
		group := make([]int, len(c.Faces))
		for j := range group {
			group[j] = first + j
		}
		for j, face := range c.Faces {
			face.Layout = c.Layout
			if face.Rarity == "" {
				face.Rarity = c.Rarity
			}
			if face.Number == "" {
				face.Number = c.Number
			}
			rec, err := face.record()
			if err != nil {
				rec.Err = fmt.Errorf("face %d: %w", j+1, err)
			}
			for _, idx := range group {
				if idx != first+j {
					rec.RelatedFaces = append(rec.RelatedFaces, idx)
				}
			}
			records = append(records, rec)
		}
	}
	return records
}

// faceNames names a card with faces by its own name, or by its faces' names
func (c Card) faceNames() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	var names []string
	for _, f := range c.Faces {
		if name := strings.TrimSpace(f.Name); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, " // ")
}

func (c Card) record() (card.Record, error) {
	rec := card.Record{
		Name:            strings.TrimSpace(c.Name),
		Type:            card.ParseTypeLine(c.Type),
		Flavor:          c.Flavor,
		HandModifier:    c.Hand,
		LifeModifier:    c.Life,
		ArtReference:    c.Art,
		CollectorNumber: c.Number,
	}

	var err error
	if rec.Layout, err = card.ParseLayout(c.Layout); err != nil {
		return rec, err
	}
	if rec.ManaCost, err = card.ParseManaCost(c.ManaCost); err != nil {
		return rec, err
	}
	if rec.Rules, err = markup.ParseRules(c.Text); err != nil {
		return rec, err
	}
	if rec.Rarity, err = card.ParseRarity(c.Rarity); err != nil {
		return rec, err
	}

	if strings.TrimSpace(c.Colors) != "" {
		if rec.Colors, err = card.ParseColors(c.Colors); err != nil {
			return rec, err
		}
	} else {
		rec.Colors = card.ImplicitColors(rec.ManaCost)
	}

	rec.Power = stat(c.Power)
	rec.Toughness = stat(c.Toughness)
	rec.Loyalty = stat(c.Loyalty)
	return rec, nil
}

func stat(s string) *card.Stat {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return card.NewStat(s)
}
