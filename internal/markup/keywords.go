package markup

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// keywords are the abilities recognised at the start of a rules paragraph. Matching is a
// best-effort heuristic, not a rules engine: anything missing here is left as plain text.
var keywords = []string{
	"Absorb", "Affinity for", "Afflict", "Afterlife", "Aftermath", "Amplify", "Annihilator",
	"Ascend", "Banding", "Battle cry", "Bestow", "Bloodthirst", "Bushido", "Buyback",
	"Cascade", "Champion", "Changeling", "Cipher", "Convoke", "Crew", "Cumulative upkeep",
	"Cycling", "Dash", "Deathtouch", "Defender", "Delve", "Dethrone", "Devour", "Double strike",
	"Dredge", "Echo", "Embalm", "Emerge", "Enchant", "Entwine", "Epic", "Equip", "Escalate",
	"Eternalize", "Evoke", "Evolve", "Exalted", "Exploit", "Extort", "Fabricate", "Fading",
	"Fear", "First strike", "Flanking", "Flash", "Flashback", "Flying", "Forecast", "Fortify",
	"Frenzy", "Fuse", "Graft", "Gravestorm", "Haste", "Haunt", "Hexproof", "Hidden agenda",
	"Horsemanship", "Improvise", "Indestructible", "Infect", "Ingest", "Intimidate", "Kicker",
	"Landwalk", "Level up", "Lifelink", "Living weapon", "Madness", "Melee", "Menace",
	"Miracle", "Modular", "Morph", "Multikicker", "Myriad", "Ninjutsu", "Offering",
	"Outlast", "Overload", "Partner", "Persist", "Phasing", "Plainswalk", "Islandwalk",
	"Swampwalk", "Mountainwalk", "Forestwalk", "Poisonous", "Protection", "Provoke",
	"Prowess", "Prowl", "Rampage", "Reach", "Rebound", "Recover", "Reinforce", "Renown",
	"Replicate", "Retrace", "Ripple", "Scavenge", "Shadow", "Shroud", "Skulk", "Soulbond",
	"Soulshift", "Splice", "Split second", "Storm", "Sunburst", "Surge", "Suspend",
	"Totem armor", "Trample", "Transfigure", "Transmute", "Tribute", "Undaunted", "Undying",
	"Unearth", "Unleash", "Vanishing", "Vigilance", "Ward", "Wither",
}

// foldCase returns a caseless key. A Caser must not be shared between goroutines.
func foldCase(s string) string {
	return cases.Fold().String(s)
}

var keywordIndex = func() map[string]string {
	idx := make(map[string]string, len(keywords))
	for _, kw := range keywords {
		idx[foldCase(kw)] = kw
	}
	return idx
}()

// matchKeyword reports the keyword that piece starts with, and the byte span it covers
// in piece. The keyword must be the whole piece or be followed by whitespace (for
// parameterised keywords such as "Equip {2}"). Words of the returned keyword are joined
// by single spaces whatever separated them in piece.
func matchKeyword(piece string) (kw string, start, end int, ok bool) {
	words := wordSpans(piece)
	// longest match first: "First strike" before "First"
	for n := min(len(words), 3); n > 0; n-- {
		parts := make([]string, n)
		for i, w := range words[:n] {
			parts[i] = piece[w[0]:w[1]]
		}
		candidate := strings.Join(parts, " ")
		if _, found := keywordIndex[foldCase(candidate)]; found {
			return candidate, words[0][0], words[n-1][1], true
		}
	}
	return "", 0, 0, false
}

// wordSpans returns the [start, end) byte offsets of the whitespace-separated words of s
func wordSpans(s string) [][2]int {
	var spans [][2]int
	start := -1
	for i, r := range s {
		switch {
		case unicode.IsSpace(r) && start >= 0:
			spans = append(spans, [2]int{start, i})
			start = -1
		case !unicode.IsSpace(r) && start < 0:
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, [2]int{start, len(s)})
	}
	return spans
}

// IsKeyword reports whether s is exactly a recognised keyword
func IsKeyword(s string) bool {
	_, ok := keywordIndex[foldCase(strings.TrimSpace(s))]
	return ok
}
