package template

import (
	"strings"

	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/resource"
)

// stylesheet picks the template a card is drawn with. abilities is the number of
// loyalty abilities and text the translated rules text.
func stylesheet(rec *card.Record, game Game, art *resource.Blob, abilities int, text string) string {
	switch game {
	case Planechase:
		if rec.Type.Has("Phenomenon") {
			return "phenomenon"
		}
		return game.DefaultStylesheet()
	case Archenemy, Vanguard:
		return game.DefaultStylesheet()
	}

	vertical := art != nil && art.Vertical()
	implicit := card.ImplicitColors(rec.ManaCost)
	t := rec.Type

	switch rec.Layout {
	case card.Plane:
		return "m15-mainframe-planes"
	case card.Scheme, card.Vanguard:
		return game.DefaultStylesheet()
	case card.Split:
		switch {
		case hasKeyword(rec, "Fuse"):
			return "m15-split-fuse"
		case hasKeyword(rec, "Aftermath"):
			return "m15-aftermath"
		}
		return "m15-split"
	case card.DoubleFaced:
		if t.Has("Planeswalker") {
			return "m15-doublefaced-planeswalker"
		}
		return "m15-doublefaced"
	}

	trueColorless := len(rec.Colors) == 0 && len(implicit) == 0 && vertical &&
		!t.Has("Artifact") && !t.Has("Land")

	switch {
	case t.Has("Planeswalker"):
		if trueColorless {
			return "m15-planeswalker-clear"
		}
		if abilities <= 2 {
			return "m15-planeswalker-2abil"
		}
		return "m15-planeswalker"
	case rec.Layout == card.Leveler:
		return "m15-leveler"
	case t.Has("Conspiracy"):
		return "m15-ttk-conspiracy"
	case hasKeyword(rec, "Miracle"):
		return "m15-miracle"
	case len(rec.Colors) == 0 && len(implicit) > 0 && vertical:
		return "m15-devoid"
	case t.HasSubtype("Vehicle"):
		return "vehicles"
	case t.Has("Enchantment") && nonTribal(t) >= 2:
		return "m15-nyx"
	case trueColorless:
		return "m15-clear"
	case t.Has("Land") && vertical && text == "":
		return "m15-textless-land"
	}
	return game.DefaultStylesheet()
}

// hasKeyword reports whether any rules paragraph starts with the keyword
func hasKeyword(rec *card.Record, keyword string) bool {
	for _, p := range rec.Rules {
		plain := strings.TrimSpace(p.Plain())
		if plain == keyword || strings.HasPrefix(plain, keyword+" ") {
			return true
		}
	}
	return false
}

func nonTribal(t card.TypeLine) int {
	n := 0
	for _, typ := range t.Types {
		if typ != "Tribal" && typ != "Kindred" {
			n++
		}
	}
	return n
}
