package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/cardsmith/internal/compile"
	"github.com/arcanaland/cardsmith/internal/config"
	"github.com/arcanaland/cardsmith/internal/resource"
	"github.com/arcanaland/cardsmith/internal/source"
	"github.com/arcanaland/cardsmith/internal/template"
)

var showCmd = &cobra.Command{
	Use:   "show [card file] [name]",
	Short: "Display how a card will be written to the set",
	Long: `Show resolves one card of a card file and prints the template, stylesheet,
frame and every field it will be written with. Every face of a split or
double-faced card is shown.

Examples:
  cardsmith show cards.toml "Llanowar Elves"
  cardsmith show --images ./art cards.yaml Fire`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardPath, name := args[0], args[1]

		records, err := source.Load(cardPath)
		if err != nil {
			return fmt.Errorf("error loading cards: %v", err)
		}

		index := -1
		for i := range records {
			if strings.EqualFold(records[i].Name, name) {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("no card named %q in %s", name, cardPath)
		}

		artDir, _ := cmd.Flags().GetString("images")
		if artDir == "" {
			if cfg, err := config.LoadConfig(); err == nil {
				artDir = cfg.ImagesDir
			}
		}

		var provider resource.Provider
		if artDir != "" {
			provider = resource.NewDirProvider(artDir, 0, logger)
		}

		compiler := compile.New(compile.Options{}, provider, logger)
		for _, i := range records[index].FaceGroup(index) {
			entry, err := compiler.Resolve(cmd.Context(), records, i)
			if err != nil {
				return fmt.Errorf("error resolving %s: %w", records[i].Name, err)
			}
			displayEntry(cmd.OutOrStdout(), entry, terminalWidth())
		}
		return nil
	},
}

func init() {
	showCmd.Flags().String("images", "", "Directory card art is looked up in")
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// displayEntry prints the resolved entry with field values wrapped next to their keys
func displayEntry(w io.Writer, e *template.Entry, width int) {
	label := func(s string) string { return colorize.CyanString("%-10s", s) }

	fmt.Fprintln(w)
	fmt.Fprintln(w, label("Card:")+colorize.HiWhiteString("%s", e.Name))
	fmt.Fprintln(w, label("Template:")+colorize.HiWhiteString("%s", e.TemplateID))
	fmt.Fprintln(w, label("Style:")+colorize.HiWhiteString("%s", e.StyleID))
	fmt.Fprintln(w, label("Frame:")+colorize.HiWhiteString("%s %s", e.Frame, e.FrameColors))
	fmt.Fprintln(w, label("Set:")+colorize.HiWhiteString("%s (%s)", e.Routing, e.Size))
	if e.Art != nil {
		fmt.Fprintln(w, label("Art:")+colorize.HiWhiteString("%s (%dx%d)", e.Art.Ref, e.Art.Width, e.Art.Height))
	}
	for _, note := range e.Notes {
		fmt.Fprintln(w, label("Note:")+colorize.YellowString("%s", note))
	}

	keyWidth := 0
	all := append(append(template.Fields{}, e.Fields...), e.Extra...)
	for _, f := range all {
		keyWidth = max(keyWidth, len(f.Key))
	}
	valueWidth := width - keyWidth - 4

	fmt.Fprintln(w)
	for _, f := range all {
		if f.Value == "" {
			continue
		}
		var lines []string
		for _, line := range strings.Split(f.Value, "\n") {
			lines = append(lines, wrapText(line, valueWidth)...)
		}
		for i, line := range lines {
			key := ""
			if i == 0 {
				key = f.Key
			}
			fmt.Fprintf(w, "  %s  %s\n", colorize.CyanString("%-*s", keyWidth, key), line)
		}
	}
	fmt.Fprintln(w)
}
