package template

import (
	"strings"

	"github.com/arcanaland/cardsmith/internal/card"
)

// MaxFrameColors is the number of colors a multicolor frame can mix. Cards with more
// colors fall back to the plain gold frame.
const MaxFrameColors = 5

var basicLandTypes = map[string]card.Color{
	"Plains":   card.White,
	"Island":   card.Blue,
	"Swamp":    card.Black,
	"Mountain": card.Red,
	"Forest":   card.Green,
}

// FrameFor picks the frame for a color set. The returned colors are always in canonical
// order and never longer than MaxFrameColors.
func FrameFor(colors card.Colors) (Frame, card.Colors) {
	cs := card.NewColors(colors...)
	switch {
	case len(cs) == 0:
		return Colorless, nil
	case len(cs) == 1:
		return Mono, cs
	case len(cs) <= MaxFrameColors:
		return Multi, cs
	default:
		return Gold, cs[:MaxFrameColors]
	}
}

// cardColor builds the "card color" field: the frame colors followed by the artifact and
// land frame components
func cardColor(t card.TypeLine, frame Frame, colors card.Colors) string {
	var parts []string
	switch frame {
	case Colorless:
		if !t.Has("Artifact") && !t.Has("Land") {
			parts = append(parts, "colorless")
		}
	case Mono:
		parts = append(parts, colors.Names()...)
	case Multi:
		parts = append(parts, colors.Names()...)
		parts = append(parts, "multicolor")
	case Gold:
		parts = append(parts, "multicolor")
	}
	if t.Has("Artifact") {
		parts = append(parts, "artifact")
	}
	if t.Has("Land") {
		parts = append(parts, "land")
	}
	return strings.Join(parts, ", ")
}

// indicator returns the color indicator for cards whose colors differ from their cost
func indicator(rec *card.Record) string {
	if len(rec.Colors) == 0 {
		return ""
	}
	implicit := card.ImplicitColors(rec.ManaCost)
	if rec.Colors.String() == implicit.String() {
		return ""
	}
	return strings.Join(rec.Colors.Names(), ", ")
}

// watermark marks vanilla cards with basic land types with their mana symbols
func watermark(t card.TypeLine) string {
	var colors []card.Color
	for _, sub := range t.Subtypes {
		if c, ok := basicLandTypes[sub]; ok {
			colors = append(colors, c)
		}
	}
	switch len(colors) {
	case 1:
		return "mana symbol " + colors[0].Name()
	case 2:
		return "colored xander hybrid mana " + string(colors[0]) + "/" + string(colors[1])
	}
	return ""
}

func wordList(kind, s string) string {
	return "<word-list-" + kind + ">" + s + "</word-list-" + kind + ">"
}

// subtypeList picks the word list subtypes are checked against
func subtypeList(t card.TypeLine) string {
	switch {
	case t.Has("Creature"):
		return "race"
	case t.Has("Instant"), t.Has("Sorcery"):
		return "spell"
	case len(t.Types) > 0:
		return strings.ToLower(t.Types[0])
	}
	return "type"
}

// typeFields returns the type line fields in the form the game's templates expect
func typeFields(game Game, t card.TypeLine) Fields {
	types := strings.Join(append(append([]string(nil), t.Supertypes...), t.Types...), " ")

	var fs Fields
	switch game {
	case Archenemy:
		// scheme templates have no subtype field
		line := types
		if len(t.Subtypes) > 0 {
			line += " — " + strings.Join(t.Subtypes, " ")
		}
		fs.Set("type", wordList("type", line))
	case Vanguard:
		fs.Set("type", types)
	default:
		superKey, subKey := "super type", "sub type"
		if game == Planechase {
			superKey, subKey = "supertype", "subtype"
		}
		fs.Set(superKey, wordList("type", types))
		if len(t.Subtypes) > 0 {
			kind := subtypeList(t)
			subs := make([]string, len(t.Subtypes))
			for i, sub := range t.Subtypes {
				subs[i] = wordList(kind, sub)
			}
			fs.Set(subKey, strings.Join(subs, " "))
		}
	}
	return fs
}
