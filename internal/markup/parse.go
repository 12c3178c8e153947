package markup

import (
	"fmt"
	"strings"

	"github.com/arcanaland/cardsmith/internal/card"
)

// ParseRules splits oracle-style rules text into paragraphs of runs. Braced tokens become
// symbol runs, parenthesised text becomes reminder runs, and lines made only of
// recognised keywords get keyword runs.
func ParseRules(text string) ([]card.Paragraph, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var paragraphs []card.Paragraph
	for i, line := range strings.Split(text, "\n") {
		p, err := parseLine(strings.TrimRight(line, " \t"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs, nil
}

func parseLine(line string) (card.Paragraph, error) {
	var p card.Paragraph
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			p = append(p, card.Text(text.String()))
			text.Reset()
		}
	}

	for i := 0; i < len(line); {
		switch line[i] {
		case '{':
			end := strings.IndexByte(line[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed '{' in %q", ErrMalformedText, line)
			}
			flush()
			p = append(p, card.Sym(card.Symbol(strings.ToUpper(line[i+1:i+end]))))
			i += end + 1
		case '(':
			depth, j := 0, i
			for ; j < len(line); j++ {
				if line[j] == '(' {
					depth++
				} else if line[j] == ')' {
					depth--
					if depth == 0 {
						break
					}
				}
			}
			if j == len(line) {
				return nil, fmt.Errorf("%w: unclosed '(' in %q", ErrMalformedText, line)
			}
			flush()
			p = append(p, card.Reminder(line[i+1:j]))
			i = j + 1
		case ')':
			return nil, fmt.Errorf("%w: unmatched ')' in %q", ErrMalformedText, line)
		default:
			text.WriteByte(line[i])
			i++
		}
	}
	flush()

	return markKeywords(p), nil
}

// markKeywords rewrites a keyword line such as "Flying, first strike" or "Ward {2}" so
// each keyword is its own run. Lines with sentence punctuation are left alone.
func markKeywords(p card.Paragraph) card.Paragraph {
	if len(p) == 0 || p[0].Kind != card.TextRun {
		return p
	}
	for _, run := range p {
		if run.Kind == card.TextRun && strings.ContainsAny(run.Text, ".:;") {
			return p
		}
	}

	var out card.Paragraph
	expect := true
	for _, run := range p {
		if run.Kind != card.TextRun {
			out = append(out, run)
			continue
		}
		segments := strings.Split(run.Text, ",")
		for i, seg := range segments {
			if i > 0 {
				out = append(out, card.Text(","))
				expect = true
			}
			if !expect || strings.TrimSpace(seg) == "" {
				if seg != "" {
					out = append(out, card.Text(seg))
				}
				continue
			}
			kw, start, end, ok := matchKeyword(seg)
			if !ok {
				return p
			}
			if start > 0 {
				out = append(out, card.Text(seg[:start]))
			}
			out = append(out, card.Keyword(kw))
			if rest := seg[end:]; rest != "" {
				out = append(out, card.Text(rest))
			}
			expect = false
		}
	}
	return mergeText(out)
}

func mergeText(p card.Paragraph) card.Paragraph {
	var out card.Paragraph
	for _, run := range p {
		if n := len(out); n > 0 && run.Kind == card.TextRun && out[n-1].Kind == card.TextRun {
			out[n-1].Text += run.Text
			continue
		}
		out = append(out, run)
	}
	return out
}
