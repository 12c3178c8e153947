package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/markup"
	"github.com/arcanaland/cardsmith/internal/resource"
	"github.com/arcanaland/cardsmith/internal/source"
	"github.com/arcanaland/cardsmith/internal/template"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	CardPath string
	// ArtDir enables the art checks when set
	ArtDir   string
	Template template.Options
	Results  ValidationResults
}

func NewValidator(cardPath, artDir string, opts template.Options) *Validator {
	return &Validator{
		CardPath: cardPath,
		ArtDir:   artDir,
		Template: opts,
		Results:  ValidationResults{},
	}
}

// Validate loads the card file and checks every record. Problems with individual cards
// are collected in the results; only an unreadable card file is returned as an error.
func (v *Validator) Validate(ctx context.Context) (ValidationResults, error) {
	records, err := source.Load(v.CardPath)
	if err != nil {
		return v.Results, err
	}
	return v.ValidateRecords(ctx, records), nil
}

// ValidateRecords checks records that were already loaded
func (v *Validator) ValidateRecords(ctx context.Context, records []card.Record) ValidationResults {
	if len(records) == 0 {
		v.Results.Errors = append(v.Results.Errors, "no cards found")
		return v.Results
	}

	v.validateInvariants(records)
	v.validateText(records)
	v.validateNames(records)
	v.validateRarity(records)
	v.validateLayouts(records)
	v.validateArt(ctx, records)

	return v.Results
}

func label(i int, rec *card.Record) string {
	if rec.Name == "" {
		return fmt.Sprintf("card %d", i+1)
	}
	return fmt.Sprintf("card %d (%s)", i+1, rec.Name)
}

// validateInvariants reports records that break the model rules
func (v *Validator) validateInvariants(records []card.Record) {
	for i := range records {
		if records[i].Err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: %v", label(i, &records[i]), records[i].Err))
			continue
		}
		for _, problem := range records[i].Problems(i, len(records)) {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: %s", label(i, &records[i]), problem))
		}
		if records[i].Layout == card.Token {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("%s: %v: tokens have no template", label(i, &records[i]), template.ErrUnsupportedLayout))
		}
	}
}

// validateText translates every card to catch symbols and parentheses the set file
// cannot represent
func (v *Validator) validateText(records []card.Record) {
	var t markup.Translator
	for i := range records {
		if records[i].Err != nil {
			continue
		}
		if _, err := t.Translate(records[i].Rules, records[i].ManaCost); err != nil {
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: %v", label(i, &records[i]), err))
		}
	}
}

// validateNames warns about cards that share a name
func (v *Validator) validateNames(records []card.Record) {
	seen := make(map[string]int)
	for i := range records {
		name := strings.ToLower(strings.TrimSpace(records[i].Name))
		if name == "" {
			continue
		}
		if first, ok := seen[name]; ok {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s: same name as card %d", label(i, &records[i]), first+1))
			continue
		}
		seen[name] = i
	}
}

func (v *Validator) validateRarity(records []card.Record) {
	var missing []string
	for i := range records {
		if records[i].Rarity == card.RarityNone && !records[i].Layout.Oversized() {
			missing = append(missing, records[i].Name)
		}
	}
	if len(missing) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("no rarity for: %s", strings.Join(missing, ", ")))
	}
}

// validateLayouts warns about oversized cards that will be drawn at standard size
func (v *Validator) validateLayouts(records []card.Record) {
	for i := range records {
		if _, degraded := v.Template.Route(records[i].Layout); degraded {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s: %s card will be rendered at standard size in the main set", label(i, &records[i]), records[i].Layout))
		}
	}
}

// validateArt checks that art can be found for every card
func (v *Validator) validateArt(ctx context.Context, records []card.Record) {
	if v.ArtDir == "" {
		return
	}
	provider := resource.NewDirProvider(v.ArtDir, 0, nil)

	var missing []string
	for i := range records {
		rec := &records[i]
		ref := rec.ArtReference
		if ref == "" {
			ref = rec.Name
		}
		_, err := provider.Fetch(ctx, ref)
		switch {
		case err == nil:
		case errors.Is(err, resource.ErrResourceUnavailable) && rec.ArtReference == "":
			missing = append(missing, rec.Name)
		default:
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("%s: %v", label(i, rec), err))
		}
	}
	if len(missing) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("no art found in %s for: %s", v.ArtDir, strings.Join(missing, ", ")))
	}
}
