package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and manage recorded conversions",
	Long:  `List, export, import and clear the conversion history kept by the configured backend (memory, file or redis).`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")
		if err := app.HistoryList(cmd.Context(), limit, asJSON); err != nil {
			exitWithError(err)
		}
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded conversions",
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		if err := app.HistoryClear(cmd.Context()); err != nil {
			exitWithError(err)
		}
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the history as CSV",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		var w io.Writer = os.Stdout
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				exitWithError(err)
			}
			defer f.Close()
			w = f
		}
		if err := app.HistoryExport(cmd.Context(), w); err != nil {
			exitWithError(err)
		}
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Append entries from a CSV export",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		f, err := os.Open(args[0])
		if err != nil {
			exitWithError(err)
		}
		defer f.Close()

		n, err := app.HistoryImport(cmd.Context(), f)
		if err != nil {
			exitWithError(err)
		}
		fmt.Printf("Imported %d entries.\n", n)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyImportCmd)

	historyListCmd.Flags().IntP("limit", "n", 0, "Maximum number of entries (0 for all)")
	historyListCmd.Flags().Bool("json", false, "Print entries as JSON")
}
