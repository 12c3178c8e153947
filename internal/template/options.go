package template

import "github.com/arcanaland/cardsmith/internal/card"

// Options control how records are resolved
type Options struct {
	// Include* keep oversized cards in the main set. Nil means "include unless a
	// dedicated output path was given".
	IncludePlanes    *bool
	IncludeSchemes   *bool
	IncludeVanguards *bool

	PlanesOutput    string
	SchemesOutput   string
	VanguardsOutput string

	// Strict turns unavailable art into a per-card failure
	Strict bool
}

// Include reports whether cards of an oversized layout stay in the main set
func (o Options) Include(l card.Layout) bool {
	flag, path := o.oversized(l)
	if flag != nil {
		return *flag
	}
	return path == ""
}

func (o Options) oversized(l card.Layout) (*bool, string) {
	switch l {
	case card.Plane:
		return o.IncludePlanes, o.PlanesOutput
	case card.Scheme:
		return o.IncludeSchemes, o.SchemesOutput
	case card.Vanguard:
		return o.IncludeVanguards, o.VanguardsOutput
	}
	return nil, ""
}

// Route returns the set a layout is written to. Oversized layouts only get their own set
// when they are excluded from the main set and a dedicated output path exists; otherwise
// they stay in the main set and degraded is true.
func (o Options) Route(l card.Layout) (r Routing, degraded bool) {
	if !l.Oversized() {
		return MainSet, false
	}
	_, path := o.oversized(l)
	if o.Include(l) || path == "" {
		return MainSet, true
	}
	switch l {
	case card.Plane:
		return PlanesFile, false
	case card.Scheme:
		return SchemesFile, false
	default:
		return VanguardsFile, false
	}
}
