package card

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidRecord is returned when a record breaks one of the model invariants
var ErrInvalidRecord = errors.New("invalid card record")

// Layout is the structural shape of a card
type Layout int

const (
	Normal Layout = iota
	Split
	DoubleFaced
	Plane
	Scheme
	Vanguard
	Token
	Leveler
)

var layoutNames = [...]string{"normal", "split", "double-faced", "plane", "scheme", "vanguard", "token", "leveler"}

func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutNames) {
		return fmt.Sprintf("layout(%d)", int(l))
	}
	return layoutNames[l]
}

// ParseLayout accepts the layout names used by common card databases
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "saga", "class":
		return Normal, nil
	case "leveler", "level up", "level-up":
		return Leveler, nil
	case "split", "aftermath", "fuse":
		return Split, nil
	case "double-faced", "double_faced", "doublefaced", "dfc", "transform", "modal_dfc", "modal-dfc":
		return DoubleFaced, nil
	case "plane", "phenomenon", "planar":
		return Plane, nil
	case "scheme":
		return Scheme, nil
	case "vanguard":
		return Vanguard, nil
	case "token", "double_faced_token", "emblem":
		return Token, nil
	}
	return Normal, fmt.Errorf("unknown layout: %s", s)
}

// Oversized reports whether the layout is printed on an oversized card
func (l Layout) Oversized() bool {
	return l == Plane || l == Scheme || l == Vanguard
}

// MultiFace reports whether the layout pairs sibling faces
func (l Layout) MultiFace() bool {
	return l == Split || l == DoubleFaced
}

// Rarity is stored using the names the set file expects
type Rarity string

const (
	RarityNone     Rarity = ""
	RarityBasic    Rarity = "basic land"
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityMythic   Rarity = "mythic rare"
	RaritySpecial  Rarity = "special"
)

// ParseRarity accepts full names, database spellings and single-letter codes
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return RarityNone, nil
	case "basic land", "basic", "l":
		return RarityBasic, nil
	case "common", "c":
		return RarityCommon, nil
	case "uncommon", "u":
		return RarityUncommon, nil
	case "rare", "r":
		return RarityRare, nil
	case "mythic rare", "mythic", "m":
		return RarityMythic, nil
	case "special", "bonus", "s":
		return RaritySpecial, nil
	}
	return RarityNone, fmt.Errorf("unknown rarity: %s", s)
}

// Stat is a printed numeric value that may be variable, e.g. "3", "*", "1+*" or "X"
type Stat string

var statPattern = regexp.MustCompile(`^[+\-]?(\d+|\*|X|\?|∞)([+\-](\d+|\*))?$`)

// Valid reports whether the stat is printable
func (s Stat) Valid() bool {
	return statPattern.MatchString(string(s))
}

// NewStat returns a pointer to s, for optional record fields
func NewStat(s string) *Stat {
	st := Stat(s)
	return &st
}

// Record is one printable card face
type Record struct {
	Name     string
	ManaCost []Symbol
	Type     TypeLine
	Rules    []Paragraph
	Flavor   string

	Power     *Stat
	Toughness *Stat
	Loyalty   *Stat

	// Vanguard hand and life modifiers
	HandModifier *int
	LifeModifier *int

	Layout Layout
	Colors Colors
	Rarity Rarity

	// RelatedFaces holds indices of sibling faces in the same record sequence
	RelatedFaces []int

	ArtReference    string
	CollectorNumber string

	// Err is a problem found while reading the record. The record stays in its sequence
	// so that only this card fails.
	Err error
}

// Problems lists every invariant the record breaks. self is the record's own index and
// total the length of the sequence it belongs to.
func (r *Record) Problems(self, total int) []string {
	var problems []string

	if strings.TrimSpace(r.Name) == "" {
		problems = append(problems, "name is required")
	}

	if r.Loyalty != nil && !r.Type.Has("Planeswalker") {
		problems = append(problems, "loyalty is only valid on planeswalkers")
	}

	if (r.Power == nil) != (r.Toughness == nil) {
		problems = append(problems, "power and toughness must be given together")
	}

	for _, st := range []*Stat{r.Power, r.Toughness, r.Loyalty} {
		if st != nil && !st.Valid() {
			problems = append(problems, fmt.Sprintf("invalid stat value: %q", string(*st)))
		}
	}

	if r.Layout.MultiFace() && len(r.RelatedFaces) == 0 {
		problems = append(problems, fmt.Sprintf("%s layout requires related faces", r.Layout))
	}
	if !r.Layout.MultiFace() && len(r.RelatedFaces) > 0 {
		problems = append(problems, fmt.Sprintf("%s layout cannot have related faces", r.Layout))
	}

	for _, idx := range r.RelatedFaces {
		if idx == self {
			problems = append(problems, "record lists itself as a related face")
		} else if idx < 0 || idx >= total {
			problems = append(problems, fmt.Sprintf("related face index %d out of range", idx))
		}
	}

	if (r.HandModifier != nil || r.LifeModifier != nil) && r.Layout != Vanguard {
		problems = append(problems, "hand and life modifiers are only valid on vanguards")
	}

	return problems
}

// Validate returns the record's reading error, or wraps Problems into a single
// ErrInvalidRecord error
func (r *Record) Validate(self, total int) error {
	if r.Err != nil {
		return r.Err
	}
	problems := r.Problems(self, total)
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(problems, "; "))
}

// FaceGroup returns the sorted indices of the record's face group, itself included
func (r *Record) FaceGroup(self int) []int {
	group := []int{self}
	for _, idx := range r.RelatedFaces {
		if idx != self {
			group = append(group, idx)
		}
	}
	slices.Sort(group)
	return slices.Compact(group)
}
