package card

import "strings"

// RunKind tells the translator how to encode a run
type RunKind int

const (
	TextRun RunKind = iota
	SymbolRun
	ReminderRun
	KeywordRun
)

// Run is one inline piece of a rules paragraph
type Run struct {
	Kind   RunKind
	Text   string // TextRun, ReminderRun (without parentheses), KeywordRun
	Symbol Symbol // SymbolRun
}

// Paragraph is one line of rules text
type Paragraph []Run

func Text(s string) Run { return Run{Kind: TextRun, Text: s} }
func Sym(s Symbol) Run { return Run{Kind: SymbolRun, Symbol: s} }
func Reminder(s string) Run { return Run{Kind: ReminderRun, Text: s} }
func Keyword(s string) Run { return Run{Kind: KeywordRun, Text: s} }

// Empty reports whether the paragraph has no visible content
func (p Paragraph) Empty() bool {
	for _, run := range p {
		if run.Kind == SymbolRun || strings.TrimSpace(run.Text) != "" {
			return false
		}
	}
	return true
}

// Plain renders the paragraph back into oracle-style text
func (p Paragraph) Plain() string {
	var b strings.Builder
	for _, run := range p {
		switch run.Kind {
		case SymbolRun:
			b.WriteString("{" + string(run.Symbol) + "}")
		case ReminderRun:
			b.WriteString("(" + run.Text + ")")
		default:
			b.WriteString(run.Text)
		}
	}
	return b.String()
}
