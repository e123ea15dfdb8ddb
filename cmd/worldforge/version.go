package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/worldforge"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of worldforge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("worldforge version %s\n", strings.TrimSpace(worldforge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
