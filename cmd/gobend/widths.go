package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/internal/bend"
	"github.com/philipparndt/gobend/internal/dies"
)

var widthsSet string

var widthsCmd = &cobra.Command{
	Use:   "widths",
	Short: "List or configure die widths per thickness",
	Long: `Without flags, list every thickness of the training data with the die
widths allowed for it. With --set, store the allowed widths of one thickness
in the die configuration, e.g. --set 2=12,16.`,
	Args: cobra.NoArgs,
	Run:  runWidths,
}

func init() {
	widthsCmd.Flags().StringVar(&widthsSet, "set", "", "Store allowed widths as thickness=w1,w2,...")
	rootCmd.AddCommand(widthsCmd)
}

func runWidths(cmd *cobra.Command, args []string) {
	cfg, _ := loadConfig()

	dieConfig, err := dies.Load(cfg.Data.DieConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if widthsSet != "" {
		thickness, widths, err := parseWidths(widthsSet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dieConfig.Set(thickness, widths)
		if err := dieConfig.Save(cfg.Data.DieConfigFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved %d widths for thickness %g to %s\n", len(widths), thickness, cfg.Data.DieConfigFile)
		return
	}

	dataset, err := bend.LoadDataset(cfg.Data.TrainingFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading training data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Die Widths")
	fmt.Println("==========")
	for _, thickness := range dataset.Thicknesses() {
		allowed := dieConfig.AllowedWidths(thickness, dataset.WidthsFor(thickness))
		marker := ""
		if _, ok := dieConfig.Configured(thickness); ok {
			marker = " (configured)"
		}
		fmt.Printf("  %-8g %s%s\n", thickness, formatWidths(allowed), marker)
	}
}

func parseWidths(text string) (float64, []float64, error) {
	key, value, ok := strings.Cut(text, "=")
	if !ok {
		return 0, nil, fmt.Errorf("invalid --set %q, expected thickness=w1,w2", text)
	}
	thickness, err := strconv.ParseFloat(strings.TrimSpace(key), 64)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid thickness in %q: %w", text, err)
	}

	var widths []float64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		w, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, nil, fmt.Errorf("invalid width %q: %w", part, err)
		}
		widths = append(widths, w)
	}
	return thickness, widths, nil
}

func formatWidths(widths []float64) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strconv.FormatFloat(w, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}
