package template

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/markup"
	"github.com/arcanaland/cardsmith/internal/resource"
)

var (
	loyaltyPattern = regexp.MustCompile(`^((?:\+|-|−)(?:[0-9]+|X)|0): (.*)$`)
	levelPattern   = regexp.MustCompile(`^LEVEL ([0-9]+)(?:-([0-9]+)|(\+))$`)
	statsPattern   = regexp.MustCompile(`^([^/\s]+)/([^/\s]+)$`)
)

// Face locates a record inside its face group
type Face struct {
	// Group is the record index of the group's first face
	Group int
	// Index is the position inside the group, 0 for the front face
	Index int
}

// Single is the face of a record that has no siblings
func Single(index int) Face {
	return Face{Group: index}
}

// Resolver turns translated records into entries. It keeps no per-card state and may be
// shared between goroutines as long as its Resources provider can.
type Resolver struct {
	Options   Options
	Resources resource.Provider

	logger *zap.Logger
}

// NewResolver creates a resolver. resources may be nil when no art is available.
func NewResolver(opts Options, resources resource.Provider, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{Options: opts, Resources: resources, logger: logger}
}

// Resolve maps one record onto its template. m is the record's translated rules and
// cost. Resolve never fails because of a record's colors.
func (r *Resolver) Resolve(ctx context.Context, rec *card.Record, face Face, m markup.Markup) (*Entry, error) {
	if rec.Layout == card.Token {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLayout, rec.Layout)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	routing, degraded := r.Options.Route(rec.Layout)
	game := routing.Game()
	e := &Entry{
		Name:      rec.Name,
		Game:      game,
		Routing:   routing,
		Layout:    rec.Layout,
		Group:     face.Group,
		FaceIndex: face.Index,
	}
	if rec.Layout.Oversized() && !degraded {
		e.Size = Oversized
	}
	if degraded {
		e.Notes = append(e.Notes, fmt.Sprintf("%s template cannot be represented in the main set; rendered at standard size", rec.Layout))
	}
	e.Frame, e.FrameColors = FrameFor(rec.Colors)

	art, err := r.art(ctx, rec)
	if err != nil {
		if ctx.Err() != nil || r.Options.Strict {
			return nil, err
		}
		r.logger.Warn("card art unavailable", zap.String("card", rec.Name), zap.Error(err))
		e.Notes = append(e.Notes, "art unavailable: "+err.Error())
	}
	e.Art = art

	set := func(key, value string) {
		if face.Index > 0 {
			key = fmt.Sprintf("%s %d", key, face.Index+1)
		}
		e.Fields.Set(key, value)
	}

	set("name", rec.Name)
	if m.Cost != "" {
		set("casting cost", m.Cost)
	}
	if art != nil {
		set("image", "")
	}

	colorField := cardColor(rec.Type, e.Frame, e.FrameColors)
	if game == Magic {
		if colorField != "" {
			set("card color", colorField)
		}
		if ind := indicator(rec); ind != "" {
			set("indicator", ind)
		}
	}

	for _, f := range typeFields(game, rec.Type) {
		set(f.Key, f.Value)
	}
	if rec.Rarity != card.RarityNone && game != Vanguard {
		set("rarity", string(rec.Rarity))
	}

	lines := m.Lines
	abilities := 0
	if rec.Type.Has("Planeswalker") {
		lines = append([]markup.Line(nil), lines...)
		for i, line := range lines {
			match := loyaltyPattern.FindStringSubmatch(line.Text)
			if match == nil {
				continue
			}
			abilities++
			cost := strings.ReplaceAll(match[1], "−", "-")
			e.Fields.Set(fmt.Sprintf("loyalty cost %d", 4*(face.Index+1)+i-3), cost)
			lines[i].Text = match[2]
		}
	}
	if game == Planechase {
		lines = planarLines(lines)
	}
	fused := false
	if rec.Layout == card.Split {
		lines, fused = stripFuse(rec, lines)
	}
	var levels []level
	if rec.Layout == card.Leveler {
		if lines, levels, err = levelLines(rec, lines); err != nil {
			return nil, err
		}
	}
	text := markup.JoinLines(lines)
	if text != "" {
		set("rule text", text)
	}
	if rec.Flavor != "" {
		set("flavor text", flavorText(rec.Flavor))
	}

	e.TemplateID = stylesheet(rec, game, art, abilities, text)
	switch {
	case e.TemplateID == "m15-ttk-conspiracy":
		set("watermark", "other magic symbols conspiracy stamp")
	case text == "":
		if wm := watermark(rec.Type); wm != "" {
			set("watermark", wm)
		}
	}

	if fused && face.Index == 0 && e.TemplateID == "m15-split-fuse" {
		e.Fields.Set("rule text 3", "Fuse")
	}

	r.setStats(set, rec, game)
	for i, l := range levels {
		e.Fields.Set(fmt.Sprintf("level %d", i+1), l.Range)
		e.Fields.Set(fmt.Sprintf("rule text %d", i+2), markup.JoinLines(l.Lines))
		e.Fields.Set(fmt.Sprintf("power %d", i+2), l.Power)
		e.Fields.Set(fmt.Sprintf("toughness %d", i+2), l.Toughness)
	}

	if rec.CollectorNumber != "" {
		set("card code text", rec.CollectorNumber)
	}

	e.StyleID = string(game) + "-" + e.TemplateID
	if face.Index == 0 && game == Magic {
		if rec.Layout == card.DoubleFaced {
			e.Extra.Set("corner", "day")
			e.Extra.Set("corner 2", "night")
		}
		if colorField != "" {
			e.Extra.Set("stamp", colorField)
		}
	}

	r.logger.Debug("resolved card",
		zap.String("card", rec.Name),
		zap.Stringer("routing", routing),
		zap.String("template", e.TemplateID),
		zap.Stringer("frame", e.Frame))
	return e, nil
}

func (r *Resolver) setStats(set func(key, value string), rec *card.Record, game Game) {
	switch game {
	case Magic:
		switch {
		case rec.Type.Has("Planeswalker"):
			if rec.Loyalty != nil {
				set("loyalty", string(*rec.Loyalty))
			}
		case rec.Power != nil && rec.Toughness != nil:
			set("power", string(*rec.Power))
			set("toughness", string(*rec.Toughness))
		default:
			// vanguards in the main set show their modifiers in the P/T box
			if rec.HandModifier != nil {
				set("power", fmt.Sprintf("%+d", *rec.HandModifier))
			}
			if rec.LifeModifier != nil {
				set("toughness", fmt.Sprintf("%+d", *rec.LifeModifier))
			}
		}
	case Vanguard:
		if rec.HandModifier != nil {
			set("handmod", fmt.Sprintf("%+d", *rec.HandModifier))
		}
		if rec.LifeModifier != nil {
			set("lifemod", fmt.Sprintf("%+d", *rec.LifeModifier))
		}
	}
}

// art resolves the record's art. Records without an explicit reference are looked up
// by name, and a miss is not an error for them.
func (r *Resolver) art(ctx context.Context, rec *card.Record) (*resource.Blob, error) {
	ref := rec.ArtReference
	explicit := ref != ""
	if !explicit {
		ref = rec.Name
	}
	if r.Resources == nil {
		if explicit {
			return nil, fmt.Errorf("%w: %s: no art source configured", resource.ErrResourceUnavailable, ref)
		}
		return nil, nil
	}

	blob, err := r.Resources.Fetch(ctx, ref)
	if err != nil {
		if !explicit && errors.Is(err, resource.ErrResourceUnavailable) {
			return nil, nil
		}
		return nil, err
	}
	return blob, nil
}

// level is one striation of a leveler card
type level struct {
	Range            string
	Lines            []markup.Line
	Power, Toughness string
}

// levelLines splits a leveler's lines at its "LEVEL n-m" and "LEVEL n+" headers. Each
// header is followed by the level's power/toughness line and then its abilities. The
// lines before the first header are returned as the base text.
func levelLines(rec *card.Record, lines []markup.Line) ([]markup.Line, []level, error) {
	var base []markup.Line
	var levels []level
	for i, line := range lines {
		plain := abilityText(rec, i)
		if match := levelPattern.FindStringSubmatch(plain); match != nil {
			r := match[1] + "-" + match[2]
			if match[3] != "" {
				r = match[1] + "+"
			}
			levels = append(levels, level{Range: r})
			continue
		}
		if len(levels) == 0 {
			base = append(base, line)
			continue
		}
		last := &levels[len(levels)-1]
		if last.Power == "" {
			match := statsPattern.FindStringSubmatch(plain)
			if match == nil {
				return nil, nil, fmt.Errorf("level %s: expected power/toughness, got %q", last.Range, plain)
			}
			last.Power, last.Toughness = match[1], match[2]
			continue
		}
		last.Lines = append(last.Lines, line)
	}
	if n := len(levels); n > 0 && levels[n-1].Power == "" {
		return nil, nil, fmt.Errorf("level %s: missing power/toughness", levels[n-1].Range)
	}
	return base, levels, nil
}

// stripFuse drops a split card's "Fuse" line, which the fuse frame prints on its own
func stripFuse(rec *card.Record, lines []markup.Line) ([]markup.Line, bool) {
	out := make([]markup.Line, 0, len(lines))
	fused := false
	for i, line := range lines {
		if abilityText(rec, i) == "Fuse" {
			fused = true
			continue
		}
		out = append(out, line)
	}
	return out, fused
}

// abilityText is the plain text of a rules paragraph without its reminder text
func abilityText(rec *card.Record, i int) string {
	if i >= len(rec.Rules) {
		return ""
	}
	var b strings.Builder
	for _, run := range rec.Rules[i] {
		if run.Kind != card.ReminderRun {
			b.WriteString(card.Paragraph{run}.Plain())
		}
	}
	return strings.TrimSpace(b.String())
}

// planarLines puts every ability of a plane on a soft line except the chaos trigger
func planarLines(lines []markup.Line) []markup.Line {
	out := make([]markup.Line, len(lines))
	for i, line := range lines {
		line.Soft = !strings.HasPrefix(line.Text, "Whenever you roll "+markup.SymbolOpen+"chaos")
		out[i] = line
	}
	return out
}

func flavorText(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = markup.Escape(line)
	}
	return strings.Join(lines, "\n")
}
