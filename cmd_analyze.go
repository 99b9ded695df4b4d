package main

import (
	"fmt"
	"io"
	"os"

	"synth911/analyzer"
	"synth911/models"
	"synth911/parser"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// analyzeCmd fits candidate distributions to a generated table
var analyzeCmd = &cobra.Command{
	Use:   "analyze <table.csv>",
	Short: "Fit distributions to the numeric columns of a call table",
	Long: `Read a generated CSV table, summarize every numeric column and report the
candidate distribution (normal, exponential, uniform, lognormal, poisson)
with the smallest Kolmogorov-Smirnov statistic.

The report is printed and also written to distribution_results_<name>.txt.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	records, err := readTable(args[0])
	if err != nil {
		return err
	}

	reports := analyzer.Analyze(records)

	resultFile := analyzer.ResultFileName(args[0])
	file, err := os.Create(resultFile)
	if err != nil {
		return fmt.Errorf("error creating report file: %w", err)
	}
	defer file.Close()

	if err := analyzer.WriteReport(io.MultiWriter(cmd.OutOrStdout(), file), reports); err != nil {
		return err
	}
	logger.Info("distribution report written",
		zap.String("input", args[0]),
		zap.String("report", resultFile),
		zap.Int("records", len(records)),
	)
	return file.Close()
}

// readTable parses a generated CSV table from path.
func readTable(path string) ([]models.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	records, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing file: %w", err)
	}
	return records, nil
}
