package mse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcanaland/cardsmith/internal/template"
)

func TestStyleSettings(t *testing.T) {
	tests := []struct {
		style string
		want  template.Fields
	}{
		{"magic-m15-altered", template.Fields{
			{Key: "text box mana symbols", Value: manaSymbolFont},
			{Key: "overlay", Value: ""},
			{Key: "center text", Value: "short text only"},
		}},
		{"magic-m15-leveler", template.Fields{
			{Key: "text box mana symbols", Value: manaSymbolFont},
			{Key: "overlay", Value: ""},
		}},
		{"magic-m15-split-fuse", template.Fields{
			{Key: "text box mana symbols", Value: manaSymbolFont},
			{Key: "overlay", Value: ""},
			{Key: "center text 1", Value: "always"},
			{Key: "center text 2", Value: "always"},
		}},
		{"magic-m15-aftermath", template.Fields{
			{Key: "text box mana symbols", Value: manaSymbolFont},
			{Key: "overlay", Value: ""},
			{Key: "center text 1", Value: "short text only"},
			{Key: "center text 2", Value: "short text only"},
		}},
		{"magic-m15-textless-land", template.Fields{
			{Key: "overlay", Value: ""},
		}},
		{"planechase-phenomenon", template.Fields{
			{Key: "text box mana symbols", Value: manaSymbolFont},
			{Key: "tap symbol", Value: "modern"},
		}},
		{"archenemy-standard", template.Fields{
			{Key: "text box mana symbols", Value: manaSymbolFont},
			{Key: "tap symbol", Value: "modern"},
		}},
		{"vanguard-standard", template.Fields{
			{Key: "text box mana symbols", Value: manaSymbolFont},
			{Key: "tap symbol", Value: "modern"},
			{Key: "flavor text", Value: "no"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			assert.Equal(t, tt.want, StyleSettings(tt.style))
		})
	}
}
