// Package markup translates card rules text and costs into the tagged text used by
// Magic Set Editor set files.
package markup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/cardsmith/internal/card"
)

// Tags understood by the set file's text fields
const (
	SymbolOpen    = "<sym>"
	SymbolClose   = "</sym>"
	ReminderOpen  = "<atom-reminder-core>"
	ReminderClose = "</atom-reminder-core>"
	KeywordOpen   = "<kw-a><nospellcheck>"
	KeywordClose  = "</nospellcheck></kw-a>"
	LineBreak     = "\n"
	SoftLineBreak = "<soft-line>\n</soft-line>"

	// escapedOpen stands in for a literal '<', which would otherwise start a tag
	escapedOpen = "\x01"
)

var (
	ErrUnsupportedSymbol = errors.New("unsupported symbol")
	ErrMalformedText     = errors.New("malformed text")
)

// Line is one translated rules paragraph
type Line struct {
	Text string
	// Soft lines are joined to the previous one with a soft break (modal bullets)
	Soft bool
}

// Markup is the translated text of one card face
type Markup struct {
	Cost  string
	Lines []Line
}

// Rules joins the lines with the set file's line separators
func (m Markup) Rules() string {
	return JoinLines(m.Lines)
}

// JoinLines joins translated lines, using soft breaks where the line asks for one
func JoinLines(lines []Line) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			if line.Soft {
				b.WriteString(SoftLineBreak)
			} else {
				b.WriteString(LineBreak)
			}
		}
		b.WriteString(line.Text)
	}
	return b.String()
}

// Translator converts rules text and mana costs. The zero value is ready to use and is
// safe for concurrent use.
type Translator struct {
	// NewWedgeOrder sorts costs into the modern printed order before translating
	NewWedgeOrder bool
}

// Translate converts a card face's rules and cost. It fails with ErrUnsupportedSymbol for
// symbols without an encoding and ErrMalformedText for unbalanced parentheses or braces.
func (t Translator) Translate(rules []card.Paragraph, cost []card.Symbol) (Markup, error) {
	costText, err := t.TranslateCost(cost)
	if err != nil {
		return Markup{}, fmt.Errorf("mana cost: %w", err)
	}

	lines := make([]Line, 0, len(rules))
	for i, p := range rules {
		text, err := translateParagraph(p)
		if err != nil {
			return Markup{}, fmt.Errorf("paragraph %d: %w", i+1, err)
		}
		soft := strings.HasPrefix(strings.TrimSpace(p.Plain()), "•")
		lines = append(lines, Line{Text: text, Soft: soft})
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1].Text) == "" {
		lines = lines[:len(lines)-1]
	}

	return Markup{Cost: costText, Lines: lines}, nil
}

// TranslateCost converts a mana cost into the casting cost field value
func (t Translator) TranslateCost(cost []card.Symbol) (string, error) {
	if t.NewWedgeOrder {
		cost = NormalizeCost(cost)
	}
	var b strings.Builder
	for _, sym := range cost {
		code, err := Code(sym)
		if err != nil {
			return "", err
		}
		b.WriteString(code)
	}
	return b.String(), nil
}

func translateParagraph(p card.Paragraph) (string, error) {
	var b strings.Builder
	inSym := false
	closeSym := func() {
		if inSym {
			b.WriteString(SymbolClose)
			inSym = false
		}
	}

	depth := 0
	keywordPrefix := len(p) > 0 && p[0].Kind == card.KeywordRun

	for _, run := range p {
		if run.Kind != card.SymbolRun {
			closeSym()
		}
		switch run.Kind {
		case card.SymbolRun:
			code, err := Code(run.Symbol)
			if err != nil {
				return "", err
			}
			if !inSym {
				b.WriteString(SymbolOpen)
				inSym = true
			}
			b.WriteString(code)

		case card.ReminderRun:
			if err := balanced(run.Text); err != nil {
				return "", err
			}
			inner, err := inline(run.Text)
			if err != nil {
				return "", err
			}
			b.WriteString(ReminderOpen + "(" + inner + ")" + ReminderClose)

		case card.KeywordRun:
			text, err := inline(run.Text)
			if err != nil {
				return "", err
			}
			if keywordPrefix && IsKeyword(run.Text) {
				b.WriteString(KeywordOpen + text + KeywordClose)
			} else {
				b.WriteString(text)
			}

		default:
			for _, r := range run.Text {
				switch r {
				case '(':
					depth++
				case ')':
					depth--
				}
				if depth < 0 {
					return "", fmt.Errorf("%w: unmatched ')' in %q", ErrMalformedText, p.Plain())
				}
			}
			if strings.ContainsAny(run.Text, ".:;") {
				keywordPrefix = false
			}
			text, err := inline(run.Text)
			if err != nil {
				return "", err
			}
			b.WriteString(text)
		}
	}
	closeSym()

	if depth != 0 {
		return "", fmt.Errorf("%w: unclosed '(' in %q", ErrMalformedText, p.Plain())
	}
	return b.String(), nil
}

// inline escapes text and converts any braced symbols left inside it
func inline(s string) (string, error) {
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			if strings.IndexByte(s, '}') >= 0 {
				return "", fmt.Errorf("%w: unmatched '}'", ErrMalformedText)
			}
			b.WriteString(Escape(s))
			return b.String(), nil
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unclosed '{'", ErrMalformedText)
		}
		if strings.IndexByte(s[:open], '}') >= 0 {
			return "", fmt.Errorf("%w: unmatched '}'", ErrMalformedText)
		}
		b.WriteString(Escape(s[:open]))

		// consecutive symbols share one span
		b.WriteString(SymbolOpen)
		for open < len(s) && s[open] == '{' {
			end = strings.IndexByte(s[open:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed '{'", ErrMalformedText)
			}
			code, err := Code(card.Symbol(strings.ToUpper(s[open+1 : open+end])))
			if err != nil {
				return "", err
			}
			b.WriteString(code)
			open += end + 1
		}
		b.WriteString(SymbolClose)
		s = s[open:]
	}
}

func balanced(s string) error {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			return fmt.Errorf("%w: unmatched ')' in reminder text %q", ErrMalformedText, s)
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: unclosed '(' in reminder text %q", ErrMalformedText, s)
	}
	return nil
}

var escaper = strings.NewReplacer("<", escapedOpen, "\r\n", " ", "\n", " ", "\r", " ")

// Escape protects plain text, such as flavor text, from being read as tags
func Escape(s string) string {
	return escaper.Replace(s)
}
