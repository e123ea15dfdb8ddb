package main

import (
	"github.com/aretw0/worldforge/internal/cli"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert one point between local and world space",
	Long: `Converts a point using a parent transform given by flags, a preset, or a
request file. Flags override the file, which overrides the preset.
Successful conversions are appended to the history.`,
	Example: `  worldforge convert --position 5,0,0 --rotation 0,90,0 --point 2,0,0 --precision 2
  worldforge convert --preset sample-90-y --direction w2l --point 7,0,0
  worldforge convert --file request.yaml --report result.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		app := newApp(cmd, false)
		defer app.Close()

		opts := cli.ConvertOptions{TransformOptions: transformFlags(cmd)}
		opts.Point, _ = cmd.Flags().GetString("point")
		opts.File, _ = cmd.Flags().GetString("file")
		opts.Report, _ = cmd.Flags().GetString("report")
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.NoHistory, _ = cmd.Flags().GetBool("no-history")

		if err := app.RunConvert(cmd.Context(), opts); err != nil {
			app.Close()
			exitWithError(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addTransformFlags(convertCmd)

	convertCmd.Flags().String("point", "", `Point to convert as "x,y,z"`)
	convertCmd.Flags().StringP("file", "f", "", "Request file (YAML or JSON)")
	convertCmd.Flags().String("report", "", "Write a text report of the result to this path")
	convertCmd.Flags().Bool("json", false, "Print the result as JSON")
	convertCmd.Flags().Bool("no-history", false, "Do not record the conversion")
}

// addTransformFlags registers the parent transform flags shared by convert,
// validate and batch.
func addTransformFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("direction", "d", "", "local_to_world (l2w) or world_to_local (w2l)")
	cmd.Flags().String("preset", "", "Named parent transform (see 'presets list')")
	cmd.Flags().String("position", "", `Parent position "x,y,z"`)
	cmd.Flags().String("rotation", "", `Parent Euler rotation in degrees "x,y,z"`)
	cmd.Flags().String("scale", "", `Parent scale "x,y,z"`)
	cmd.Flags().IntP("precision", "p", 0, "Fractional digits in the output (2-30, default from config)")
	cmd.Flags().Bool("swap", false, "Invert the resolved direction")
}

func transformFlags(cmd *cobra.Command) cli.TransformOptions {
	var o cli.TransformOptions
	o.Direction, _ = cmd.Flags().GetString("direction")
	o.Preset, _ = cmd.Flags().GetString("preset")
	o.Position, _ = cmd.Flags().GetString("position")
	o.Rotation, _ = cmd.Flags().GetString("rotation")
	o.Scale, _ = cmd.Flags().GetString("scale")
	o.Precision, _ = cmd.Flags().GetInt("precision")
	o.Swap, _ = cmd.Flags().GetBool("swap")
	return o
}
