package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/cardsmith/internal/card"
)

func mustRules(t *testing.T, text string) []card.Paragraph {
	t.Helper()
	rules, err := ParseRules(text)
	require.NoError(t, err)
	return rules
}

func TestTranslateSymbolsAndReminder(t *testing.T) {
	var tr Translator
	rules := mustRules(t, "{T}: Add {G}{G}. (Mana empties between steps.)")

	m, err := tr.Translate(rules, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"<sym>T</sym>: Add <sym>GG</sym>. <atom-reminder-core>(Mana empties between steps.)</atom-reminder-core>",
		m.Rules())
}

func TestTranslateKeywordLine(t *testing.T) {
	var tr Translator
	rules := mustRules(t, "Flying, first strike\nWard {2}\nFlying creatures you control get +1/+1.")

	m, err := tr.Translate(rules, nil)
	require.NoError(t, err)
	require.Len(t, m.Lines, 3)
	assert.Equal(t, KeywordOpen+"Flying"+KeywordClose+", "+KeywordOpen+"first strike"+KeywordClose, m.Lines[0].Text)
	assert.Equal(t, KeywordOpen+"Ward"+KeywordClose+" <sym>2</sym>", m.Lines[1].Text)
	assert.Equal(t, "Flying creatures you control get +1/+1.", m.Lines[2].Text)
}

func TestKeywordOnlyWrappedAtLineStart(t *testing.T) {
	var tr Translator
	p := card.Paragraph{card.Text("Target creature gains "), card.Keyword("flying"), card.Text(".")}

	m, err := tr.Translate([]card.Paragraph{p}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Target creature gains flying.", m.Rules())

	unknown := card.Paragraph{card.Keyword("Flibbertigibbet")}
	m, err = tr.Translate([]card.Paragraph{unknown}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Flibbertigibbet", m.Rules())
}

func TestTranslateUnsupportedSymbol(t *testing.T) {
	var tr Translator
	_, err := tr.Translate([]card.Paragraph{{card.Sym("HW")}}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedSymbol)

	_, err = tr.Translate(nil, []card.Symbol{"2", "K"})
	assert.ErrorIs(t, err, ErrUnsupportedSymbol)
}

func TestTranslateMalformedText(t *testing.T) {
	var tr Translator
	_, err := tr.Translate([]card.Paragraph{{card.Text("Draw a card (then discard")}}, nil)
	assert.ErrorIs(t, err, ErrMalformedText)

	_, err = tr.Translate([]card.Paragraph{{card.Reminder("unclosed ( inside")}}, nil)
	assert.ErrorIs(t, err, ErrMalformedText)

	_, err = ParseRules("Draw a card) and more")
	assert.ErrorIs(t, err, ErrMalformedText)

	_, err = ParseRules("Pay {2 life")
	assert.ErrorIs(t, err, ErrMalformedText)
}

func TestTranslateEscapesAndParagraphs(t *testing.T) {
	var tr Translator
	rules := []card.Paragraph{
		{card.Text("Choose one —")},
		{card.Text("• Deal 1 damage if x < 2.")},
		{card.Text("• Gain 1 life.")},
		{},
		{card.Text("  ")},
	}

	m, err := tr.Translate(rules, nil)
	require.NoError(t, err)
	want := []Line{
		{Text: "Choose one —"},
		{Text: "• Deal 1 damage if x \x01 2.", Soft: true},
		{Text: "• Gain 1 life.", Soft: true},
	}
	if diff := cmp.Diff(want, m.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Choose one —"+SoftLineBreak+"• Deal 1 damage if x \x01 2."+SoftLineBreak+"• Gain 1 life.", m.Rules())
}

func TestTranslateCost(t *testing.T) {
	var tr Translator
	cost, err := card.ParseManaCost("{3}{G/P}{W/U}{2/B}{T}{CHAOS}")
	require.NoError(t, err)

	got, err := tr.TranslateCost(cost)
	require.NoError(t, err)
	assert.Equal(t, "3H/GW/U2/BTchaos", got)

	m, err := tr.Translate(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, m.Cost)
	assert.Empty(t, m.Lines)
}

func TestNormalizeCost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"{G}{W}{1}{X}", "{X}{1}{G}{W}"},
		{"{W}{R}", "{R}{W}"},
		{"{U}{W}{G}", "{G}{W}{U}"},
		{"{R}{1}{U}{W}{2}", "{3}{U}{R}{W}"},
		{"{B}{G/W}{S}{C}{W/U}", "{S}{C}{W/U}{G/W}{B}"},
		{"{G/P}{W/P}", "{G/P}{W/P}"},
		{"{0}", "{0}"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cost, err := card.ParseManaCost(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, card.FormatCost(NormalizeCost(cost)))
		})
	}

	tr := Translator{NewWedgeOrder: true}
	cost, _ := card.ParseManaCost("{W}{2}{R}")
	got, err := tr.TranslateCost(cost)
	require.NoError(t, err)
	assert.Equal(t, "2RW", got)
}

func TestParseRulesRuns(t *testing.T) {
	rules := mustRules(t, "Enchant creature\nCycling {2} ({2}, Discard this card: Draw a card.)\n")
	require.Len(t, rules, 3)

	want := card.Paragraph{card.Keyword("Enchant"), card.Text(" creature")}
	if diff := cmp.Diff(want, rules[0]); diff != "" {
		t.Errorf("enchant line mismatch (-want +got):\n%s", diff)
	}

	want = card.Paragraph{
		card.Keyword("Cycling"), card.Text(" "), card.Sym("2"), card.Text(" "),
		card.Reminder("{2}, Discard this card: Draw a card."),
	}
	if diff := cmp.Diff(want, rules[1]); diff != "" {
		t.Errorf("cycling line mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, rules[2].Empty())

	var tr Translator
	m, err := tr.Translate(rules, nil)
	require.NoError(t, err)
	assert.Len(t, m.Lines, 2)
	assert.Contains(t, m.Lines[1].Text, ReminderOpen+"(<sym>2</sym>, Discard this card: Draw a card.)"+ReminderClose)
}

func TestParseRulesKeywordWhitespace(t *testing.T) {
	tests := []struct {
		text string
		want card.Paragraph
	}{
		{"First  strike", card.Paragraph{card.Keyword("First strike")}},
		{"\tFlying", card.Paragraph{card.Text("\t"), card.Keyword("Flying")}},
		{"Flying,  first\tstrike", card.Paragraph{card.Keyword("Flying"), card.Text(",  "), card.Keyword("first strike")}},
		{"Equip\t{2}", card.Paragraph{card.Keyword("Equip"), card.Text("\t"), card.Sym("2")}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rules := mustRules(t, tt.text)
			require.Len(t, rules, 1)
			if diff := cmp.Diff(tt.want, rules[0]); diff != "" {
				t.Errorf("runs mismatch (-want +got):\n%s", diff)
			}
		})
	}

	var tr Translator
	m, err := tr.Translate(mustRules(t, "First  strike"), nil)
	require.NoError(t, err)
	assert.Equal(t, KeywordOpen+"First strike"+KeywordClose, m.Lines[0].Text)
}

func TestCodeGeneric(t *testing.T) {
	code, err := Code("16")
	require.NoError(t, err)
	assert.Equal(t, "16", code)

	_, err = Code("")
	assert.ErrorIs(t, err, ErrUnsupportedSymbol)
}
