package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "halogrid",
	Short: "Partition structured grids and inspect their halo connectivity",
	Long: `halogrid builds the decomposition a simulation would run on: it splits a
global grid into regions by a partition scheme, derives the side
connectivity graph (including cubed-sphere panel rotations and corner
donors), and reports or persists the resulting layout.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
