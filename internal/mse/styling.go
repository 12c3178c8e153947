package mse

import (
	"strings"

	"github.com/arcanaland/cardsmith/internal/template"
)

const manaSymbolFont = "magic-mana-small.mse-symbol-font"

// StyleSettings returns the styling options written for a style ID such as
// "magic-m15-split" or "planechase-standard"
func StyleSettings(styleID string) template.Fields {
	game, sheet, _ := strings.Cut(styleID, "-")

	settings := template.Fields{{Key: "text box mana symbols", Value: manaSymbolFont}}
	switch template.Game(game) {
	case template.Planechase, template.Archenemy:
		settings.Set("tap symbol", "modern")
		return settings
	case template.Vanguard:
		settings.Set("tap symbol", "modern")
		settings.Set("flavor text", "no")
		return settings
	}

	settings.Set("overlay", "")
	switch sheet {
	case "m15-leveler":
		// levels stay left-aligned
	case "m15-split", "m15-split-fuse":
		settings.Set("center text 1", "always")
		settings.Set("center text 2", "always")
	case "m15-aftermath":
		settings.Set("center text 1", "short text only")
		settings.Set("center text 2", "short text only")
	case "m15-textless-land":
		// no text box
		settings = settings[1:]
	default:
		settings.Set("center text", "short text only")
	}
	return settings
}
