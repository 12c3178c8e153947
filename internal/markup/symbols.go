package markup

import (
	"fmt"
	"strings"

	"github.com/arcanaland/cardsmith/internal/card"
)

// symbolCodes maps every braced symbol to the code the set file's symbol font draws.
// Numeric costs are handled separately since any run of digits is a valid generic cost.
var symbolCodes = func() map[card.Symbol]string {
	codes := map[card.Symbol]string{
		"W": "W", "U": "U", "B": "B", "R": "R", "G": "G",
		"C": "C", // colorless mana
		"E": "E", // energy
		"Q": "Q", // untap
		"S": "S", // snow
		"T": "T", // tap
		"X": "X", "Y": "Y", "Z": "Z",
		"P":     "phi",
		"CHAOS": "chaos",
		"½":     "1/2",
		"∞":     "inf",
	}
	colors := "WUBRG"
	for _, a := range colors {
		// colored/colored hybrid
		for _, b := range colors {
			if a != b {
				codes[card.Symbol(string(a)+"/"+string(b))] = string(a) + "/" + string(b)
			}
		}
		// Phyrexian
		codes[card.Symbol(string(a)+"/P")] = "H/" + string(a)
		// colorless/colored hybrid
		codes[card.Symbol("2/"+string(a))] = "2/" + string(a)
		codes[card.Symbol("C/"+string(a))] = "C/" + string(a)
	}
	return codes
}()

// Code returns the symbol font code for sym
func Code(sym card.Symbol) (string, error) {
	if code, ok := symbolCodes[sym]; ok {
		return code, nil
	}
	if isGeneric(sym) {
		return string(sym), nil
	}
	return "", fmt.Errorf("%w: {%s}", ErrUnsupportedSymbol, sym)
}

func isGeneric(sym card.Symbol) bool {
	if sym == "" {
		return false
	}
	return strings.Trim(string(sym), "0123456789") == ""
}
