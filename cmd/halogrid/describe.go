package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridcore/halogrid/connect"
	"github.com/gridcore/halogrid/inputspec"
	"github.com/gridcore/halogrid/multiregion"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Build a decomposition from a YAML description and report it",
	RunE: func(cmd *cobra.Command, args []string) error {
		inFile, err := cmd.Flags().GetString("input")
		if err != nil {
			return err
		}
		if len(inFile) == 0 {
			return fmt.Errorf("must supply a description file (-I, --input) in YAML format")
		}
		data, err := os.ReadFile(inFile)
		if err != nil {
			return err
		}

		var d inputspec.Description
		if err = d.Parse(data); err != nil {
			return err
		}
		c, err := d.Build()
		if err != nil {
			return err
		}

		full := inputspec.Describe(c, d.Title)
		full.Print()
		reportConnectivity(c)

		outFile, _ := cmd.Flags().GetString("output")
		if len(outFile) > 0 {
			out, err := full.Marshal()
			if err != nil {
				return err
			}
			if err = os.WriteFile(outFile, out, 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", outFile)
		}
		return nil
	},
}

// reportConnectivity summarizes the graph the way a partition quality
// report would: per-region side bindings plus aggregate counts.
func reportConnectivity(c *multiregion.RegionContainer) {
	var walls, edges, selfEdges int
	for r := range c.Regions {
		for _, s := range connect.HorizontalSides {
			if c.Graph.IsWall(r, s) {
				walls++
				fmt.Printf("Region[%d].%s = wall\n", r, s)
				continue
			}
			en, _ := c.Graph.Neighbor(r, s)
			edges++
			if en.Neighbor == r {
				selfEdges++
			}
			fmt.Printf("Region[%d].%s -> Region[%d].%s %s flip=%v\n",
				r, s, en.Neighbor, en.NeighborSide, en.T, en.FlipSign)
		}
	}
	fmt.Printf("%d regions, %d walls, %d connections (%d self), %d corner donors\n",
		len(c.Regions), walls, edges, selfEdges, len(c.Graph.Corners))

	if kind, err := c.InferBoundaryKind(); err == nil {
		fmt.Printf("reconstructed global boundary kind: %s\n", kind)
	}
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringP("input", "I", "", "YAML decomposition description")
	describeCmd.Flags().StringP("output", "O", "", "write the derived layout as YAML")
}
