package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/pkg/drawing"
)

var convertKinds []string

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Convert a drawing between JSON and YAML",
	Long: `Rewrite a drawing in the format given by the output extension (.json,
.yaml or .yml). With --kind only records of the listed kinds are kept.`,
	Args: cobra.ExactArgs(2),
	Run:  runConvert,
}

func init() {
	convertCmd.Flags().StringArrayVar(&convertKinds, "kind", nil, "Record kind to keep (repeatable, e.g. LINE)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) {
	written, err := convertDrawing(args[0], args[1], convertKinds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d records to %s\n", written, args[1])
}

// convertDrawing re-encodes input into output and returns the record count
func convertDrawing(input, output string, kinds []string) (int, error) {
	format, err := drawing.FormatFromPath(output)
	if err != nil {
		return 0, err
	}
	d, err := drawing.Parse(input)
	if err != nil {
		return 0, err
	}
	filtered := filterKinds(d, kinds)

	file, err := os.Create(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer file.Close()

	if err := drawing.Encode(file, filtered, format); err != nil {
		return 0, err
	}
	return filtered.RecordCount(), nil
}

// filterKinds copies the records whose kind is listed; no kinds keeps all
func filterKinds(d *drawing.Drawing, kinds []string) *drawing.Drawing {
	keep := make(map[drawing.Kind]bool, len(kinds))
	for _, k := range kinds {
		keep[drawing.Kind(strings.ToUpper(strings.TrimSpace(k)))] = true
	}

	out := drawing.NewDrawing(d.Name)
	for _, r := range d.Records {
		if len(keep) == 0 || keep[r.Kind] {
			out.Add(r)
		}
	}
	return out
}
