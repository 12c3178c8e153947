package markup

import (
	"slices"
	"strconv"
	"strings"

	"github.com/arcanaland/cardsmith/internal/card"
)

// wedgeOrder gives the printed order of a set of colors, keyed by the colors present in
// canonical order. Allied pairs, shards and four-color sets start after the missing color;
// enemy pairs and wedges follow the color wheel starting from the isolated color.
var wedgeOrder = map[string]string{
	"":  "",
	"W": "W", "U": "U", "B": "B", "R": "R", "G": "G",
	// allied pairs
	"WU": "WU", "UB": "UB", "BR": "BR", "RG": "RG", "WG": "GW",
	// enemy pairs
	"WB": "WB", "UR": "UR", "BG": "BG", "WR": "RW", "UG": "GU",
	// shards
	"WUG": "GWU", "WUB": "WUB", "UBR": "UBR", "BRG": "BRG", "WRG": "RGW",
	// wedges
	"WBG": "WBG", "WUR": "URW", "UBG": "BGU", "WBR": "RWB", "URG": "GUR",
	// four colors
	"WUBR": "WUBR", "UBRG": "UBRG", "WBRG": "BRGW", "WURG": "RGWU", "WUBG": "GWUB",
	"WUBRG": "WUBRG",
}

var hybridOrder = []card.Symbol{"W/U", "U/B", "B/R", "R/G", "G/W", "W/B", "U/R", "B/G", "R/W", "G/U"}

// NormalizeCost sorts a cost into printed order: variable, generic, snow, colorless,
// twobrid, hybrid, Phyrexian, then colored mana. Unknown symbols keep their place at
// the end.
func NormalizeCost(cost []card.Symbol) []card.Symbol {
	rest := slices.Clone(cost)
	take := func(match func(card.Symbol) bool) []card.Symbol {
		var taken []card.Symbol
		kept := rest[:0]
		for _, sym := range rest {
			if match(sym) {
				taken = append(taken, sym)
			} else {
				kept = append(kept, sym)
			}
		}
		rest = kept
		return taken
	}
	is := func(want card.Symbol) func(card.Symbol) bool {
		return func(sym card.Symbol) bool { return sym == want }
	}

	var out []card.Symbol
	out = append(out, take(is("X"))...)

	total, zero := 0, false
	for _, sym := range take(isGeneric) {
		n, _ := strconv.Atoi(string(sym))
		if n == 0 {
			zero = true
		}
		total += n
	}
	if total > 0 {
		out = append(out, card.Symbol(strconv.Itoa(total)))
	} else if zero {
		out = append(out, "0")
	}

	out = append(out, take(is("S"))...)
	out = append(out, take(is("C"))...)

	out = append(out, wheelOrder(take(func(sym card.Symbol) bool {
		return strings.HasPrefix(string(sym), "2/") && len(sym) == 3
	}), func(sym card.Symbol) card.Color { return card.Color(sym[2]) })...)

	for _, h := range hybridOrder {
		out = append(out, take(is(h))...)
	}

	out = append(out, wheelOrder(take(func(sym card.Symbol) bool {
		return strings.HasSuffix(string(sym), "/P") && len(sym) == 3
	}), func(sym card.Symbol) card.Color { return card.Color(sym[0]) })...)

	out = append(out, wheelOrder(take(func(sym card.Symbol) bool {
		return len(sym) == 1 && card.Color(sym[0]).Base()
	}), func(sym card.Symbol) card.Color { return card.Color(sym[0]) })...)

	return append(out, rest...)
}

func wheelOrder(symbols []card.Symbol, colorOf func(card.Symbol) card.Color) []card.Symbol {
	byColor := map[card.Color][]card.Symbol{}
	var present []card.Color
	for _, sym := range symbols {
		c := colorOf(sym)
		if !c.Base() {
			continue
		}
		byColor[c] = append(byColor[c], sym)
		present = append(present, c)
	}
	var out []card.Symbol
	for _, r := range wedgeOrder[card.NewColors(present...).String()] {
		out = append(out, byColor[card.Color(r)]...)
	}
	return out
}
