package main

import (
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Browse and initialize named parent transforms",
	Long:  `Presets live as Markdown documents with YAML frontmatter in the configured presets directory. Without one, the built-in presets are used.`,
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		asJSON, _ := cmd.Flags().GetBool("json")
		if err := app.PresetsList(cmd.Context(), asJSON); err != nil {
			exitWithError(err)
		}
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print one preset as JSON",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		if err := app.PresetsShow(cmd.Context(), args[0]); err != nil {
			exitWithError(err)
		}
	},
}

var presetsInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write the built-in presets to a directory for editing",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		dir := ""
		if len(args) == 1 {
			dir = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")
		if err := app.PresetsInit(cmd.Context(), dir, force); err != nil {
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsShowCmd)
	presetsCmd.AddCommand(presetsInitCmd)

	presetsListCmd.Flags().Bool("json", false, "Print presets as JSON")
	presetsInitCmd.Flags().Bool("force", false, "Overwrite existing preset files")
}
