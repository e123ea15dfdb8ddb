package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert every x,y,z row of a CSV file",
	Long:  `Reads x,y,z rows (an optional header is skipped) and writes x,y,z,error rows, converting each with the same parent transform.`,
	Example: `  worldforge batch --preset sample-90-y --in points.csv --out world.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		inPath, _ := cmd.Flags().GetString("in")
		outPath, _ := cmd.Flags().GetString("out")

		var in io.Reader = os.Stdin
		if inPath != "" && inPath != "-" {
			f, err := os.Open(inPath)
			if err != nil {
				exitWithError(err)
			}
			defer f.Close()
			in = f
		}

		var out io.Writer = os.Stdout
		if outPath != "" && outPath != "-" {
			f, err := os.Create(outPath)
			if err != nil {
				exitWithError(err)
			}
			defer f.Close()
			out = f
		}

		sum, err := app.RunBatch(cmd.Context(), transformFlags(cmd), in, out)
		if err != nil {
			exitWithError(err)
		}
		fmt.Fprintf(os.Stderr, "Converted %d rows, %d failed\n", sum.Converted, sum.Failed)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	addTransformFlags(batchCmd)

	batchCmd.Flags().String("in", "-", "Input CSV file (- for stdin)")
	batchCmd.Flags().String("out", "-", "Output CSV file (- for stdout)")
}
