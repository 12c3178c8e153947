package card

import (
	"fmt"
	"strings"
)

// Symbol is one braced token from a cost or rules text, without the braces: "2", "W",
// "T", "W/U", "G/P", "2/R", "CHAOS"
type Symbol string

// ParseManaCost splits "{2}{W}{U}" into its symbols. An empty cost yields nil.
func ParseManaCost(s string) ([]Symbol, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("cost must start with { and end with }: %q", s)
	}
	parts := strings.Split(s[1:len(s)-1], "}{")
	symbols := make([]Symbol, 0, len(parts))
	for _, part := range parts {
		if part == "" || strings.ContainsAny(part, "{}") {
			return nil, fmt.Errorf("malformed cost: %q", s)
		}
		symbols = append(symbols, Symbol(strings.ToUpper(part)))
	}
	return symbols, nil
}

// FormatCost renders symbols back into braced notation
func FormatCost(cost []Symbol) string {
	var b strings.Builder
	for _, sym := range cost {
		b.WriteString("{")
		b.WriteString(string(sym))
		b.WriteString("}")
	}
	return b.String()
}

// Colors returns the colors a symbol contributes to a card's color identity
func (s Symbol) Colors() Colors {
	var cs []Color
	for _, half := range strings.Split(string(s), "/") {
		if len(half) != 1 {
			continue
		}
		c := Color(half[0])
		if c.Base() {
			cs = append(cs, c)
		}
	}
	return NewColors(cs...)
}

// ImplicitColors derives colors from a mana cost
func ImplicitColors(cost []Symbol) Colors {
	var cs []Color
	for _, sym := range cost {
		cs = append(cs, sym.Colors()...)
	}
	return NewColors(cs...)
}
