package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardsmith/internal/config"
	"github.com/arcanaland/cardsmith/internal/mse"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the cardsmith configuration",
	Long:  `Commands for managing the configuration file and the image library.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration file and the image library",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error initializing config: %v", err)
		}

		if err := os.MkdirAll(cfg.ImagesDir, 0755); err != nil {
			return fmt.Errorf("error creating image library: %v", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		fmt.Fprintln(out, "Image library initialized at:", cfg.ImagesDir)
		fmt.Fprintln(out, "Card art named after a card is picked up from this directory.")
		return nil
	},
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		jobs := "every CPU"
		if cfg.Jobs > 0 {
			jobs = fmt.Sprint(cfg.Jobs)
		}

		out := cmd.OutOrStdout()
		row := func(key, value string) {
			fmt.Fprintln(out, colorize.CyanString("%-16s", key)+colorize.HiWhiteString("%s", value))
		}
		row("Config file:", config.GetConfigFilePath())
		row("Border:", cfg.DefaultBorder)
		row("Copyright:", cfg.Copyright)
		row("Set code:", cfg.SetCode)
		row("Images:", cfg.ImagesDir)
		row("Jobs:", jobs)
		row("Format version:", cfg.FormatVersion)
		return nil
	},
}

// configSetBorderCmd represents the config set-default-border command
var configSetBorderCmd = &cobra.Command{
	Use:   "set-default-border [border]",
	Short: "Set the border used when --border is not given",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		border := args[0]

		if _, err := mse.ParseBorder(border); err != nil {
			return err
		}

		if err := config.SetDefaultBorder(border); err != nil {
			return fmt.Errorf("error setting default border: %v", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default border set to: %s\n", border)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetBorderCmd)
}
