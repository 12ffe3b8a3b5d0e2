package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gobend/internal/bend"
)

var (
	dataFile  string
	newSample bend.Sample
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Show the bend deduction training data",
	Long:  "Summarize the training data: sample count, thicknesses and die widths.",
	Args:  cobra.NoArgs,
	Run:   runData,
}

var dataAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a measured bend to the training data",
	Long: `Append one measured bend to the training data file, creating the file
when it does not exist yet.

Example:
  gobend data add -t 2 -w 16 -a 90 --bd-mild 3.4 --bd-stainless 3.7`,
	Args: cobra.NoArgs,
	Run:  runDataAdd,
}

func init() {
	dataCmd.PersistentFlags().StringVar(&dataFile, "data", "", "Training data file (overrides the configuration)")

	dataAddCmd.Flags().Float64VarP(&newSample.Thickness, "thickness", "t", 0, "Sheet thickness")
	dataAddCmd.Flags().Float64VarP(&newSample.Width, "width", "w", 0, "Die opening width")
	dataAddCmd.Flags().Float64VarP(&newSample.Angle, "angle", "a", 90, "Bend angle in degrees")
	dataAddCmd.Flags().Float64Var(&newSample.BDMild, "bd-mild", 0, "Measured bend deduction for mild steel (CZ)")
	dataAddCmd.Flags().Float64Var(&newSample.BDStainless, "bd-stainless", 0, "Measured bend deduction for stainless steel (N)")
	_ = dataAddCmd.MarkFlagRequired("thickness")
	_ = dataAddCmd.MarkFlagRequired("width")

	dataCmd.AddCommand(dataAddCmd)
	rootCmd.AddCommand(dataCmd)
}

func trainingFile() string {
	if dataFile != "" {
		return dataFile
	}
	cfg, _ := loadConfig()
	return cfg.Data.TrainingFile
}

func runData(cmd *cobra.Command, args []string) {
	path := trainingFile()
	dataset, err := bend.LoadDataset(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading training data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Training Data")
	fmt.Println("=============")
	fmt.Printf("File: %s\n", path)
	fmt.Printf("Samples: %d\n", len(dataset.Samples))
	fmt.Printf("Thicknesses: %s\n", formatWidths(dataset.Thicknesses()))
	fmt.Printf("Die widths: %s\n", formatWidths(dataset.Widths()))
}

func runDataAdd(cmd *cobra.Command, args []string) {
	path := trainingFile()
	dataset, err := addSample(path, newSample)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved sample %d to %s\n", len(dataset.Samples), path)
}

// addSample appends a sample to the training data file and saves it
func addSample(path string, sample bend.Sample) (*bend.Dataset, error) {
	dataset, err := bend.LoadDataset(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		dataset = &bend.Dataset{}
	case err != nil:
		return nil, err
	}

	if err := dataset.Add(sample); err != nil {
		return nil, err
	}
	if err := dataset.Save(path); err != nil {
		return nil, err
	}
	return dataset, nil
}
