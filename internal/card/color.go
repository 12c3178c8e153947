package card

import (
	"fmt"
	"slices"
	"strings"
)

// Color is a single color letter. The five base colors are W, U, B, R and G; any other
// upper-case letter is treated as a custom color from house content.
type Color rune

const (
	White Color = 'W'
	Blue  Color = 'U'
	Black Color = 'B'
	Red   Color = 'R'
	Green Color = 'G'
)

// Canonical is the fixed order colors are always listed in
var Canonical = []Color{White, Blue, Black, Red, Green}

var colorNames = map[Color]string{
	White: "white",
	Blue:  "blue",
	Black: "black",
	Red:   "red",
	Green: "green",
}

// ParseColor accepts a color letter or its English name
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	for c, name := range colorNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	if len(s) == 1 {
		r := rune(strings.ToUpper(s)[0])
		if r >= 'A' && r <= 'Z' && r != 'C' {
			return Color(r), nil
		}
	}
	return 0, fmt.Errorf("unknown color: %q", s)
}

// Name returns the lower-case color name used in frame fields
func (c Color) Name() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return strings.ToLower(string(c))
}

// Base reports whether c is one of the five base colors
func (c Color) Base() bool {
	_, ok := colorNames[c]
	return ok
}

func (c Color) rank() int {
	if i := slices.Index(Canonical, c); i >= 0 {
		return i
	}
	return len(Canonical) + int(c)
}

// Colors is a set of colors kept in canonical order without duplicates
type Colors []Color

// NewColors builds a canonical color set from cs in any order
func NewColors(cs ...Color) Colors {
	out := make(Colors, 0, len(cs))
	for _, c := range cs {
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b Color) int { return a.rank() - b.rank() })
	return out
}

// ParseColors accepts "WU", "W,U" or "white blue"
func ParseColors(s string) (Colors, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	var cs []Color
	for _, f := range fields {
		if len(f) > 1 {
			if c, err := ParseColor(f); err == nil {
				cs = append(cs, c)
				continue
			}
			for _, r := range f {
				c, err := ParseColor(string(r))
				if err != nil {
					return nil, err
				}
				cs = append(cs, c)
			}
			continue
		}
		c, err := ParseColor(f)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return NewColors(cs...), nil
}

// Contains reports whether c is in the set
func (cs Colors) Contains(c Color) bool {
	return slices.Contains(cs, c)
}

// Names returns the color names in canonical order
func (cs Colors) Names() []string {
	names := make([]string, len(cs))
	for i, c := range NewColors(cs...) {
		names[i] = c.Name()
	}
	return names
}

func (cs Colors) String() string {
	var b strings.Builder
	for _, c := range NewColors(cs...) {
		b.WriteRune(rune(c))
	}
	return b.String()
}
