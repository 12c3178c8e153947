package mse

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Border is the border color of every card in a set. The zero value is black.
type Border struct {
	c colorful.Color
}

var namedBorders = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"w":      "#ffffff",
	"silver": "#808080",
	"s":      "#808080",
	"gold":   "#c8b400",
	"g":      "#c8b400",
	"bronze": "#de7f32",
	"b":      "#de7f32",
}

// ParseBorder accepts black, white, silver, gold, bronze, their one-letter forms
// (b is bronze) or a "#rrggbb" hex color
func ParseBorder(s string) (Border, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Border{}, nil
	}
	if hex, ok := namedBorders[s]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Border{}, fmt.Errorf("unrecognized border color: %s", s)
	}
	return Border{c: c}, nil
}

// Black reports whether the border is the default black border
func (b Border) Black() bool {
	r, g, bl := b.c.RGB255()
	return r == 0 && g == 0 && bl == 0
}

// String renders the border in the form set files use
func (b Border) String() string {
	r, g, bl := b.c.RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, bl)
}
