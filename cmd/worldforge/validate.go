package main

import (
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether a conversion is defined for a parent transform",
	Long:  `Reports the first zero scale axis that makes world-to-local conversion undefined. Exits 1 when the check fails.`,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		if _, err := app.RunValidate(cmd.Context(), transformFlags(cmd)); err != nil {
			app.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addTransformFlags(validateCmd)
}
