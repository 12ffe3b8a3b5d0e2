package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/internal/bend"
	"github.com/philipparndt/gobend/internal/config"
	"github.com/philipparndt/gobend/internal/sequence"
	"github.com/philipparndt/gobend/internal/session"
	"github.com/philipparndt/gobend/pkg/geometry"
)

var (
	seqClicks    []string
	seqAngles    []string
	seqManual    int
	seqThickness float64
	seqWidth     float64
	seqMaterial  string
	seqDataFile  string
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence [file]",
	Short: "Build a bend sequence and compute the blank length",
	Long: `Select bend lines by clicking at drawing coordinates, set bend angles per
row and predict the bend deduction of every bend. Coordinates are those
printed by "gobend lines": the drawing is shifted so its reference corner
sits at 0,0.

Example:
  gobend sequence part.json --click 30,20 --click 80,20 --angle 1=45 -t 2 -w 16`,
	Args: cobra.ExactArgs(1),
	Run:  runSequence,
}

func init() {
	sequenceCmd.Flags().StringArrayVar(&seqClicks, "click", nil, "Drawing point x,y to click (repeatable)")
	sequenceCmd.Flags().StringArrayVar(&seqAngles, "angle", nil, "Bend angle for a row as row=value (repeatable, rows start at 1)")
	sequenceCmd.Flags().IntVar(&seqManual, "manual", 0, "Number of manual rows to append")
	sequenceCmd.Flags().Float64VarP(&seqThickness, "thickness", "t", 0, "Sheet thickness")
	sequenceCmd.Flags().Float64VarP(&seqWidth, "width", "w", 0, "Die opening width")
	sequenceCmd.Flags().StringVarP(&seqMaterial, "material", "m", string(bend.MaterialMild), "Material (CZ or N)")
	sequenceCmd.Flags().StringVar(&seqDataFile, "data", "", "Training data file (overrides the configuration)")
	rootCmd.AddCommand(sequenceCmd)
}

func runSequence(cmd *cobra.Command, args []string) {
	s, cfg, _ := openSession(args[0])

	for _, click := range seqClicks {
		p, err := parsePoint(click)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		hit, err := s.SelectAt(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error selecting at %s: %v\n", click, err)
			os.Exit(1)
		}
		if !hit {
			fmt.Fprintf(os.Stderr, "Warning: no bend line near %s\n", click)
		}
	}

	for i := 0; i < seqManual; i++ {
		if _, err := s.AddRow(); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding row: %v\n", err)
			os.Exit(1)
		}
	}

	for _, assignment := range seqAngles {
		row, value, err := parseAssignment(assignment)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if _, err := s.EditRow(row, sequence.FieldAngle, value); err != nil {
			fmt.Fprintf(os.Stderr, "Error setting angle %s: %v\n", assignment, err)
			os.Exit(1)
		}
	}

	calculated := false
	if seqThickness > 0 && seqWidth > 0 {
		calculated = calculate(s, cfg)
	}

	printTable(s, calculated)
}

func calculate(s *session.Session, cfg *config.Config) bool {
	material, err := bend.ParseMaterial(seqMaterial)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dataFile := cfg.Data.TrainingFile
	if seqDataFile != "" {
		dataFile = seqDataFile
	}
	dataset, err := bend.LoadDataset(dataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading training data: %v\n", err)
		os.Exit(1)
	}

	s.SetPredictor(bend.NewNearestPredictor(dataset, cfg.Data.Neighbours))
	s.SetParams(sequence.Params{Thickness: seqThickness, Width: seqWidth, Material: material})

	if _, err := s.Calculate(); err != nil {
		fmt.Fprintf(os.Stderr, "Calculation failed: %v\n", err)
		return false
	}
	return true
}

func printTable(s *session.Session, calculated bool) {
	fmt.Println("Bend Sequence")
	fmt.Println("=============")
	fmt.Printf("  %-4s %-6s %12s %8s %10s\n", "Row", "Line", "Length", "Angle", "BD")
	for i, row := range s.Rows() {
		if row.Placeholder {
			continue
		}
		line := "manual"
		if !row.Entry.Manual() {
			line = fmt.Sprintf("#%d", row.Entry.Line)
		}
		cells := row.Cells()
		fmt.Printf("  %-4d %-6s %12s %8s %10s\n", i+1, line, cells[0], cells[1], cells[2])
	}

	fmt.Println()
	if !calculated {
		fmt.Println("Totals: not calculated (pass --thickness and --width)")
		return
	}
	totals := s.Totals()
	fmt.Println("Totals:")
	fmt.Printf("  Length: %.2f\n", totals.Length)
	fmt.Printf("  Bend deduction: %.2f\n", totals.BD)
	fmt.Printf("  Effective length: %.2f\n", totals.EffectiveLength)
}

func parsePoint(text string) (geometry.Vector2, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return geometry.Vector2{}, fmt.Errorf("invalid point %q, expected x,y", text)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Vector2{}, fmt.Errorf("invalid x in %q: %w", text, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Vector2{}, fmt.Errorf("invalid y in %q: %w", text, err)
	}
	return geometry.NewVector2(x, y), nil
}

// parseAssignment splits "row=value" into a zero-based row and the value
func parseAssignment(text string) (int, string, error) {
	key, value, ok := strings.Cut(text, "=")
	if !ok {
		return 0, "", fmt.Errorf("invalid assignment %q, expected row=value", text)
	}
	row, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || row < 1 {
		return 0, "", fmt.Errorf("invalid row in %q", text)
	}
	return row - 1, strings.TrimSpace(value), nil
}
