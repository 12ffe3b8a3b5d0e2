package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/internal/analysis"
)

var linesCmd = &cobra.Command{
	Use:   "lines [file]",
	Short: "List the bend lines of a drawing",
	Long:  "List every bend line ordered by position along the measuring axis, with the spacing to the previous one.",
	Args:  cobra.ExactArgs(1),
	Run:   runLines,
}

func init() {
	rootCmd.AddCommand(linesCmd)
}

func runLines(cmd *cobra.Command, args []string) {
	s, _, _ := openSession(args[0])
	result := analysis.AnalyzeScene(s.Scene(), s.Options().Axis)

	fmt.Printf("Bend Lines (axis %s)\n", s.Options().Axis)
	fmt.Println("====================")
	if len(result.BendLines) == 0 {
		fmt.Println("No bend lines found.")
		return
	}

	spacings := analysis.BendSpacings(result)
	for i, line := range result.BendLines {
		fmt.Printf("  #%-4d position %10.2f  spacing %10.2f  length %10.2f  %s -> %s\n",
			line.ID,
			line.Position,
			spacings[i],
			line.Length,
			analysis.FormatVector(line.Start),
			analysis.FormatVector(line.End))
	}
}
