package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"synth911/analyzer"
	"synth911/formatter"
	"synth911/generator"
	"synth911/models"
	"synth911/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// generateCmd writes a synthetic call table
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic call table",
	Long: `Generate a table of synthetic 911 calls and write it as CSV, JSON or SQLite.

A summary of phone, process and total times and the personnel roster of
each shift are printed once the table is written.

Examples:
  synth911 generate --num-records 5000 --start-date 2024-01-01 --end-date 2024-03-31
  synth911 generate --agencies LAW,FIRE --agency-probabilities 0.8,0.2 --seed 7
  synth911 generate --format sqlite --output data/calls.db`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	flags := generateCmd.Flags()
	flags.Int("num-records", 10000, "Number of call records to generate")
	flags.String("start-date", "2024-01-01", "First day of the call window (YYYY-MM-DD)")
	flags.String("end-date", "2024-12-31", "Last day of the call window, inclusive (YYYY-MM-DD)")
	flags.Int("num-names", 8, "Number of call takers and dispatchers per shift")
	flags.String("locale", "en_US", "Locale for generated names and addresses")
	flags.String("agencies", "", "Comma separated agencies to generate (LAW,EMS,FIRE,RESCUE)")
	flags.String("agency-probabilities", "", "Comma separated probabilities matching --agencies")
	flags.String("seed", "", "Random seed (default: random)")
	flags.StringP("output", "o", "computer_aided_dispatch.csv", "Output file")
	flags.StringP("format", "f", "csv", "Output format: csv|json|sqlite")
	flags.String("roster", "", "Also write the YAML personnel roster to this file")
	bindFlags(flags,
		"num-records", "start-date", "end-date", "num-names", "locale",
		"agencies", "agency-probabilities", "seed", "output", "format", "roster",
	)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := settings.GenerationConfig()
	if err != nil {
		return err
	}

	startMetricsServer(settings.MetricsAddr)

	gen := generator.New(generator.WithLogger(logger))
	table, err := gen.Generate(cfg)
	if err != nil {
		return err
	}

	output := outputPath(settings.Output, settings.Format)
	if err := writeTable(cmd.Context(), table, output, settings.Format); err != nil {
		return err
	}
	logger.Info("call table written",
		zap.String("run_id", table.RunID),
		zap.String("output", output),
		zap.String("format", settings.Format),
	)

	summaries := analyzer.Describe(table.Records, analyzer.SummaryColumns...)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatter.FormatText(table, summaries))
	fmt.Fprintf(out, "\nWrote %s\n", output)

	if settings.Roster != "" {
		roster, err := formatter.FormatRoster(table, summaries)
		if err != nil {
			return err
		}
		if err := os.WriteFile(settings.Roster, roster, 0644); err != nil {
			return fmt.Errorf("error writing roster: %w", err)
		}
		fmt.Fprintf(out, "Wrote %s\n", settings.Roster)
	}

	finishMetrics(cmd.Context(), out, "synth911_generate")
	return nil
}

// outputPath swaps a .csv extension for one matching format.
func outputPath(output, format string) string {
	ext := map[string]string{"json": ".json", "sqlite": ".db"}[format]
	if ext == "" || !strings.EqualFold(filepath.Ext(output), ".csv") {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + ext
}

func writeTable(ctx context.Context, table *models.Table, output, format string) error {
	if format == "sqlite" {
		db, err := store.Open(output)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.SaveTable(ctx, table)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = formatter.WriteJSON(file, table.Records)
	default:
		err = formatter.WriteCSV(file, table.Records)
	}
	if err != nil {
		return err
	}
	return file.Close()
}
