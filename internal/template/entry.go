// Package template maps card records onto Magic Set Editor templates: which game and
// stylesheet a card uses, how its frame is colored, which output set it is routed to and
// the values of every card field.
package template

import (
	"errors"
	"fmt"

	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/resource"
)

// ErrUnsupportedLayout is returned for layouts that have no template
var ErrUnsupportedLayout = errors.New("unsupported layout")

// Game is the MSE game a set file is written for
type Game string

const (
	Magic      Game = "magic"
	Planechase Game = "planechase"
	Archenemy  Game = "archenemy"
	Vanguard   Game = "vanguard"
)

// DefaultStylesheet is the stylesheet a set of the game is created with. Cards using it
// do not need their own stylesheet key.
func (g Game) DefaultStylesheet() string {
	if g == Magic {
		return "m15-altered"
	}
	return "standard"
}

// Routing selects the output set an entry is written to
type Routing int

const (
	MainSet Routing = iota
	PlanesFile
	SchemesFile
	VanguardsFile
)

// Routings lists every routing in output order
var Routings = []Routing{MainSet, PlanesFile, SchemesFile, VanguardsFile}

var routingNames = [...]string{"main", "planes", "schemes", "vanguards"}

func (r Routing) String() string {
	if r < 0 || int(r) >= len(routingNames) {
		return fmt.Sprintf("routing(%d)", int(r))
	}
	return routingNames[r]
}

// Game returns the game of the set file the routing produces
func (r Routing) Game() Game {
	switch r {
	case PlanesFile:
		return Planechase
	case SchemesFile:
		return Archenemy
	case VanguardsFile:
		return Vanguard
	}
	return Magic
}

// Frame is the kind of color frame an entry is drawn with
type Frame int

const (
	Colorless Frame = iota
	Mono
	Multi
	Gold
)

func (f Frame) String() string {
	switch f {
	case Colorless:
		return "colorless"
	case Mono:
		return "mono"
	case Multi:
		return "multicolor"
	case Gold:
		return "gold"
	}
	return fmt.Sprintf("frame(%d)", int(f))
}

// Size is the physical size of the template an entry is rendered with
type Size int

const (
	Standard Size = iota
	Oversized
)

func (s Size) String() string {
	if s == Oversized {
		return "oversized"
	}
	return "standard"
}

// Field is one card field of the set file
type Field struct {
	Key   string
	Value string
}

// Fields keeps card fields in the order they are written
type Fields []Field

// Set replaces the value of key, or appends it when it is not present yet
func (fs *Fields) Set(key, value string) {
	for i := range *fs {
		if (*fs)[i].Key == key {
			(*fs)[i].Value = value
			return
		}
	}
	*fs = append(*fs, Field{Key: key, Value: value})
}

// Get returns the value of key
func (fs Fields) Get(key string) (string, bool) {
	for _, f := range fs {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Map returns the fields as a map, for comparisons that ignore order
func (fs Fields) Map() map[string]string {
	m := make(map[string]string, len(fs))
	for _, f := range fs {
		m[f.Key] = f.Value
	}
	return m
}

// Entry is a card face resolved against its template. Entries are not modified once
// they have been resolved.
type Entry struct {
	Name string

	// TemplateID is the stylesheet the card is drawn with; StyleID is the key of the
	// set's styling block for it
	TemplateID string
	StyleID    string
	Game       Game

	// Fields already carry the sibling suffix (" 2") for back faces
	Fields Fields
	// Extra holds stylesheet specific settings, written under "extra data"
	Extra Fields

	Frame       Frame
	FrameColors card.Colors
	Routing     Routing
	Size        Size
	Layout      card.Layout

	// Notes describe how the entry was degraded, if at all
	Notes []string

	// Art is written as an archive member; the "image" field is filled in with the
	// member name during assembly
	Art *resource.Blob

	// Group is the record index of the first face of the entry's face group, FaceIndex
	// the entry's position inside that group
	Group     int
	FaceIndex int
}

// Degraded reports whether the entry could not be drawn with its proper template
func (e *Entry) Degraded() bool {
	return len(e.Notes) > 0
}
