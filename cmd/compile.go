package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/compile"
	"github.com/arcanaland/cardsmith/internal/config"
	"github.com/arcanaland/cardsmith/internal/mse"
	"github.com/arcanaland/cardsmith/internal/resource"
	"github.com/arcanaland/cardsmith/internal/source"
	"github.com/arcanaland/cardsmith/internal/template"
)

type compileFlags struct {
	output          string
	planesOutput    string
	schemesOutput   string
	vanguardsOutput string

	includePlanes    bool
	includeSchemes   bool
	includeVanguards bool

	border          string
	copyright       string
	setCode         string
	images          string
	autoCardNumbers bool
	newWedgeOrder   bool
	strict          bool
	offline         bool
	jobs            int
	maxArtHeight    int
	formatVersion   string
	failOnPartial   bool
}

var compileOpts compileFlags

var compileCmd = &cobra.Command{
	Use:   "compile [card files...]",
	Short: "Compile card files into a Magic Set Editor set",
	Long: `Compile reads card files (TOML, YAML or JSON) and writes a Magic Set Editor set
archive. Without card files, cards are read as YAML from standard input.

Planes, schemes and vanguards stay in the main set, drawn at standard size, unless
a dedicated output is given for them.

Examples:
  cardsmith compile cards.toml -o proxies.mse-set
  cardsmith compile cards.yaml --planes-output planes.mse-set -o main.mse-set
  cat cards.yaml | cardsmith compile --border white > proxies.mse-set`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Warn("using default configuration", zap.Error(err))
			cfg = config.Default()
		}

		opts, err := compileOptions(cmd.Flags(), compileOpts, cfg)
		if err != nil {
			return err
		}

		records, err := readRecords(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		logger.Debug("loaded cards", zap.Int("records", len(records)))

		var provider resource.Provider
		if !compileOpts.offline {
			dir := compileOpts.images
			if dir == "" {
				dir = cfg.ImagesDir
			}
			provider = resource.NewDirProvider(dir, compileOpts.maxArtHeight, logger)
		}

		compiler := compile.New(opts, provider, logger)
		result, err := compiler.Compile(ctx, records)
		if err != nil {
			return fmt.Errorf("compilation failed: %w", err)
		}

		outputs := map[template.Routing]string{
			template.MainSet:       compileOpts.output,
			template.PlanesFile:    compileOpts.planesOutput,
			template.SchemesFile:   compileOpts.schemesOutput,
			template.VanguardsFile: compileOpts.vanguardsOutput,
		}
		if err := compiler.Write(ctx, result, outputs, cmd.OutOrStdout()); err != nil {
			return err
		}

		printSummary(cmd.ErrOrStderr(), result)
		if compileOpts.failOnPartial && len(result.Failures) > 0 {
			return fmt.Errorf("%d of %d cards failed", len(result.Failures), len(result.Failures)+result.Succeeded)
		}
		return nil
	},
}

func init() {
	addCompileFlags(compileCmd.Flags(), &compileOpts)
}

func addCompileFlags(f *pflag.FlagSet, o *compileFlags) {
	f.StringVarP(&o.output, "output", "o", "-", "Path of the main set archive, - for standard output")
	f.StringVar(&o.planesOutput, "planes-output", "", "Path of a separate set for planes")
	f.StringVar(&o.schemesOutput, "schemes-output", "", "Path of a separate set for schemes")
	f.StringVar(&o.vanguardsOutput, "vanguards-output", "", "Path of a separate set for vanguards")
	f.BoolVar(&o.includePlanes, "include-planes", true, "Keep planes in the main set (default: unless --planes-output is given)")
	f.BoolVar(&o.includeSchemes, "include-schemes", true, "Keep schemes in the main set (default: unless --schemes-output is given)")
	f.BoolVar(&o.includeVanguards, "include-vanguards", true, "Keep vanguards in the main set (default: unless --vanguards-output is given)")
	f.StringVarP(&o.border, "border", "b", "", "Border color: black, white, silver, gold, bronze or #rrggbb")
	f.StringVar(&o.copyright, "copyright", "", "Copyright line of the set")
	f.StringVar(&o.setCode, "set-code", "", "Set code printed on the cards")
	f.StringVar(&o.images, "images", "", "Directory card art is looked up in")
	f.BoolVar(&o.autoCardNumbers, "auto-card-numbers", false, "Let Magic Set Editor number the cards")
	f.BoolVar(&o.newWedgeOrder, "new-wedge-order", false, "Sort wedge costs in the newer order")
	f.BoolVar(&o.strict, "strict", false, "Fail cards whose art cannot be found")
	f.BoolVar(&o.offline, "offline", false, "Compile without looking up any art")
	f.IntVarP(&o.jobs, "jobs", "j", 0, "Number of cards compiled at once (default: every CPU)")
	f.IntVar(&o.maxArtHeight, "max-art-height", 0, "Downscale art taller than this many pixels")
	f.StringVar(&o.formatVersion, "format-version", "", "Set file format version to write")
	f.BoolVar(&o.failOnPartial, "fail-on-partial", false, "Exit with an error when any card failed")
}

// compileOptions merges the command line over the configuration file
func compileOptions(flags *pflag.FlagSet, o compileFlags, cfg *config.Config) (compile.Options, error) {
	tri := func(name string, value bool) *bool {
		if !flags.Changed(name) {
			return nil
		}
		return &value
	}

	borderName := o.border
	if borderName == "" {
		borderName = cfg.DefaultBorder
	}
	border, err := mse.ParseBorder(borderName)
	if err != nil {
		return compile.Options{}, err
	}

	opts := compile.Options{
		Template: template.Options{
			IncludePlanes:    tri("include-planes", o.includePlanes),
			IncludeSchemes:   tri("include-schemes", o.includeSchemes),
			IncludeVanguards: tri("include-vanguards", o.includeVanguards),
			PlanesOutput:     o.planesOutput,
			SchemesOutput:    o.schemesOutput,
			VanguardsOutput:  o.vanguardsOutput,
			Strict:           o.strict,
		},
		Set: mse.Options{
			Copyright:       firstOf(o.copyright, cfg.Copyright),
			SetCode:         firstOf(o.setCode, cfg.SetCode),
			Border:          border,
			AutoCardNumbers: o.autoCardNumbers,
			FormatVersion:   firstOf(o.formatVersion, cfg.FormatVersion),
		},
		NewWedgeOrder: o.newWedgeOrder,
		Jobs:          o.jobs,
	}
	if opts.Jobs == 0 {
		opts.Jobs = cfg.Jobs
	}
	return opts, nil
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// readRecords loads the card files, or YAML from stdin when none are given
func readRecords(paths []string, stdin io.Reader) ([]card.Record, error) {
	if len(paths) > 0 {
		return source.LoadAll(paths)
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errors.New("no card files given and nothing piped to standard input")
	}
	records, err := source.Decode(stdin, source.YAML)
	if err != nil {
		return nil, fmt.Errorf("standard input: %w", err)
	}
	return records, nil
}

func printSummary(w io.Writer, result *compile.Result) {
	if len(result.Failures) == 0 {
		fmt.Fprintln(w, colorize.GreenString("✅ %s", result.Summary()))
	} else {
		fmt.Fprintln(w, colorize.YellowString("⚠️  %s", result.Summary()))
	}

	for _, routing := range template.Routings {
		doc, ok := result.Documents[routing]
		if !ok {
			continue
		}
		for _, e := range doc.Entries() {
			if len(e.Notes) > 0 {
				fmt.Fprintf(w, "  %s: %s\n", e.Name, colorize.YellowString("%s", strings.Join(e.Notes, "; ")))
			}
		}
	}
}
