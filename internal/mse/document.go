// Package mse assembles resolved card entries into Magic Set Editor set files and
// writes them as zip archives.
package mse

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/arcanaland/cardsmith/internal/resource"
	"github.com/arcanaland/cardsmith/internal/template"
)

// FormatVersion is the set file version written and the only one supported
const FormatVersion = "0.3.8"

var (
	ErrArchiveWrite             = errors.New("archive write failed")
	ErrUnsupportedFormatVersion = errors.New("unsupported format version")
	ErrConfigurationMismatch    = errors.New("configuration mismatch")
)

// Set info defaults
const (
	DefaultCopyright = "NOT FOR SALE"
	DefaultSetCode   = "PROXY"
	defaultTitle     = "Card import"
)

var routingTitles = map[template.Routing]string{
	template.PlanesFile:    "Card import: Planechase planes",
	template.SchemesFile:   "Card import: Archenemy schemes",
	template.VanguardsFile: "Card import: Vanguard avatars",
}

// Options are the set-level settings shared by every document of a compilation
type Options struct {
	Title           string
	Copyright       string
	SetCode         string
	Border          Border
	AutoCardNumbers bool
	FormatVersion   string
}

// CheckVersion fails for any format version other than the supported one. An empty
// version selects the supported one.
func (o Options) CheckVersion() error {
	if o.FormatVersion != "" && o.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormatVersion, o.FormatVersion, FormatVersion)
	}
	return nil
}

// SetDocument is the content of one output archive
type SetDocument struct {
	Routing template.Routing
	Game    template.Game
	Options Options

	// Cards holds one face group per card block, front face first
	Cards [][]*template.Entry

	// Blobs are the distinct art blobs in first-reference order
	Blobs []*resource.Blob
}

// Entries returns every entry of the document in serialized order
func (d *SetDocument) Entries() []*template.Entry {
	var entries []*template.Entry
	for _, group := range d.Cards {
		entries = append(entries, group...)
	}
	return entries
}

// member returns the archive member name of a blob
func (d *SetDocument) member(b *resource.Blob) string {
	for i, blob := range d.Blobs {
		if blob.Digest == b.Digest {
			return fmt.Sprintf("image%d", i+1)
		}
	}
	return ""
}

func (d *SetDocument) addCard(group []*template.Entry) {
	d.Cards = append(d.Cards, group)
	for _, e := range group {
		if e.Art == nil {
			continue
		}
		if !slices.ContainsFunc(d.Blobs, func(b *resource.Blob) bool { return b.Digest == e.Art.Digest }) {
			d.Blobs = append(d.Blobs, e.Art)
		}
	}
}

// Assemble groups entries by routing, keeping input order within each routing and
// placing every face group at the position of its first face. A face group whose faces
// were routed to different sets is a configuration error.
func Assemble(entries []*template.Entry, opts Options) (map[template.Routing]*SetDocument, error) {
	if err := opts.CheckVersion(); err != nil {
		return nil, err
	}

	groups := make(map[int][]*template.Entry)
	for _, e := range entries {
		groups[e.Group] = append(groups[e.Group], e)
	}
	for _, group := range groups {
		for _, e := range group[1:] {
			if e.Routing != group[0].Routing {
				return nil, fmt.Errorf("%w: %q is routed to the %s set but its sibling %q to the %s set",
					ErrConfigurationMismatch, group[0].Name, group[0].Routing, e.Name, e.Routing)
			}
		}
		slices.SortStableFunc(group, func(a, b *template.Entry) int { return a.FaceIndex - b.FaceIndex })
	}

	docs := make(map[template.Routing]*SetDocument)
	placed := make(map[int]bool)
	for _, e := range entries {
		if placed[e.Group] {
			continue
		}
		placed[e.Group] = true

		doc, ok := docs[e.Routing]
		if !ok {
			doc = &SetDocument{Routing: e.Routing, Game: e.Routing.Game(), Options: opts}
			docs[e.Routing] = doc
		}
		doc.addCard(groups[e.Group])
	}
	return docs, nil
}

// DataFile builds the set file: header, styling, one card block per face group and the
// footer
func (d *SetDocument) DataFile() *DataFile {
	df := &DataFile{}
	df.Add("mse version", FormatVersion)
	df.Add("game", string(d.Game))
	df.Add("stylesheet", d.Game.DefaultStylesheet())

	info := df.AddSub("set info")
	info.Add("title", d.title())
	info.Add("copyright", valueOr(d.Options.Copyright, DefaultCopyright))
	info.Add("description", d.description())
	info.Add("set code", valueOr(d.Options.SetCode, DefaultSetCode))
	info.Add("set language", "EN")
	info.Add("mark errors", "no")
	info.Add("automatic reminder text", "")
	info.Add("automatic card numbers", yesNo(d.Options.AutoCardNumbers))
	info.Add("mana cost sorting", "unsorted")
	if !d.Options.Border.Black() {
		info.Add("border color", d.Options.Border.String())
	}

	// styling has to come before the cards
	styling := df.AddSub("styling")
	for _, style := range d.styles() {
		settings := styling.AddSub(style)
		for _, f := range StyleSettings(style) {
			settings.Add(f.Key, f.Value)
		}
	}

	for _, group := range d.Cards {
		d.addCardBlock(df.AddSub("card"), group)
	}

	df.AddSub("version control").Add("type", "none")
	df.Add("apprentice code", "")
	return df
}

func (d *SetDocument) addCardBlock(block *DataFile, group []*template.Entry) {
	for _, e := range group {
		for _, f := range e.Fields {
			value := f.Value
			if (f.Key == "image" || strings.HasPrefix(f.Key, "image ")) && e.Art != nil {
				value = d.member(e.Art)
			}
			block.Add(f.Key, value)
		}
	}

	front := group[0]
	if front.TemplateID != d.Game.DefaultStylesheet() {
		block.Add("stylesheet", front.TemplateID)
	}
	if len(front.Extra) > 0 {
		extra := block.AddSub("extra data").AddSub(front.StyleID)
		for _, f := range front.Extra {
			extra.Add(f.Key, f.Value)
		}
	}
}

// styles lists the styling keys in use, the set's own first
func (d *SetDocument) styles() []string {
	styles := []string{string(d.Game) + "-" + d.Game.DefaultStylesheet()}
	for _, group := range d.Cards {
		if id := group[0].StyleID; id != "" && !slices.Contains(styles, id) {
			styles = append(styles, id)
		}
	}
	return styles
}

func (d *SetDocument) title() string {
	if d.Options.Title != "" {
		return d.Options.Title
	}
	if t, ok := routingTitles[d.Routing]; ok {
		return t
	}
	return defaultTitle
}

func (d *SetDocument) description() string {
	if len(d.Cards) == 1 {
		return "This card was compiled by cardsmith."
	}
	return "These cards were compiled by cardsmith."
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
