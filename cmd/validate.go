package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardsmith/internal/template"
	"github.com/arcanaland/cardsmith/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [card file]",
	Short: "Validate a card file",
	Long: `Validate checks that every card in a card file can be compiled.
It reports cards that would fail as errors, and cards that would compile with
missing pieces (rarity, art, oversized templates) as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardPath := args[0]

		// Check if path exists
		if _, err := os.Stat(cardPath); os.IsNotExist(err) {
			return fmt.Errorf("card file not found: %s", cardPath)
		}

		artDir, _ := cmd.Flags().GetString("images")

		v := validator.NewValidator(cardPath, artDir, template.Options{})
		results, err := v.Validate(cmd.Context())
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintln(out, colorize.GreenString("✅ Card file '%s' can be compiled.", cardPath))
		} else {
			fmt.Fprintln(out, colorize.RedString("❌ Card file '%s' has %d validation errors:", cardPath, len(results.Errors)))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().String("images", "", "Also check that art can be found in this directory")
}
