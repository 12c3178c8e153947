package card

import (
	"slices"
	"strings"
)

var knownSupertypes = []string{"Basic", "Elite", "Host", "Legendary", "Ongoing", "Snow", "World"}

// TypeLine is a card's structured type line
type TypeLine struct {
	Supertypes []string
	Types      []string
	Subtypes   []string
}

// ParseTypeLine splits "Legendary Creature — Elf Druid". Both the em dash and a spaced
// hyphen separate subtypes.
func ParseTypeLine(s string) TypeLine {
	var t TypeLine
	left, right, found := strings.Cut(s, "—")
	if !found {
		left, right, _ = strings.Cut(s, " - ")
	}
	for _, word := range strings.Fields(left) {
		if slices.Contains(knownSupertypes, word) {
			t.Supertypes = append(t.Supertypes, word)
		} else {
			t.Types = append(t.Types, word)
		}
	}
	t.Subtypes = strings.Fields(right)
	return t
}

// Has reports whether typ is one of the card types
func (t TypeLine) Has(typ string) bool {
	return slices.Contains(t.Types, typ)
}

// HasSupertype reports whether typ is one of the supertypes
func (t TypeLine) HasSupertype(typ string) bool {
	return slices.Contains(t.Supertypes, typ)
}

// HasSubtype reports whether typ is one of the subtypes
func (t TypeLine) HasSubtype(typ string) bool {
	return slices.Contains(t.Subtypes, typ)
}

func (t TypeLine) String() string {
	s := strings.Join(append(slices.Clone(t.Supertypes), t.Types...), " ")
	if len(t.Subtypes) > 0 {
		s += " — " + strings.Join(t.Subtypes, " ")
	}
	return s
}
