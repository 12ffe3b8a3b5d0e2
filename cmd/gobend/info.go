package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/internal/analysis"
	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/internal/session"
	"github.com/philipparndt/gobend/pkg/drawing"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a drawing",
	Long:  "Show record and primitive counts, the normalized bounding box, dimensions and segment statistics.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// openSession parses a drawing and loads it into a fresh session, printing
// skipped records
func openSession(filename string) (*session.Session, *config.Config, *drawing.Drawing) {
	cfg, logger := loadConfig()
	s := session.New(session.OptionsFromConfig(cfg), logger)

	d, err := drawing.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing drawing: %v\n", err)
		os.Exit(1)
	}
	skipped, err := s.Load(d.Name, d.Records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading drawing: %v\n", err)
		os.Exit(1)
	}
	for _, e := range skipped {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", e)
	}
	return s, cfg, d
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]
	s, _, d := openSession(filename)
	result := analysis.AnalyzeScene(s.Scene(), s.Options().Axis)

	fmt.Println("Drawing Information")
	fmt.Println("===================")
	fmt.Printf("Name: %s\n", s.Name())
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Records:")
	fmt.Printf("  Total: %d\n", d.RecordCount())
	counts := d.CountByKind()
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("  %s: %d\n", kind, counts[drawing.Kind(kind)])
	}
	fmt.Println()

	fmt.Println("Primitives:")
	fmt.Printf("  Total: %d\n", result.PrimitiveCount)
	fmt.Printf("  Segments: %d\n", result.SegmentCount)
	fmt.Printf("  Circles: %d\n", result.CircleCount)
	fmt.Printf("  Arcs: %d\n", result.ArcCount)
	fmt.Printf("  Bend lines: %d\n\n", len(result.BendLines))

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Shift: %s\n\n", analysis.FormatVector(result.Shift))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %s\n", analysis.FormatMeasurement(result.Dimensions.X, ""))
	fmt.Printf("  Height (Y): %s\n", analysis.FormatMeasurement(result.Dimensions.Y, ""))
	fmt.Printf("  Extent: %s - %s\n\n", analysis.FormatVector(result.Extent.Min), analysis.FormatVector(result.Extent.Max))

	if result.SegmentCount > 0 {
		fmt.Println("Segment Lengths:")
		fmt.Printf("  Minimum: %s\n", analysis.FormatMeasurement(result.MinSegmentLength, ""))
		fmt.Printf("  Maximum: %s\n", analysis.FormatMeasurement(result.MaxSegmentLength, ""))
		fmt.Printf("  Total: %s\n", analysis.FormatMeasurement(result.TotalSegmentLength, ""))
	}
}
