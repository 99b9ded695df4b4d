package main

import (
	"fmt"

	"synth911/formatter"
	"synth911/scheduler"

	"github.com/spf13/cobra"
)

// staffingCmd estimates call-taker demand from a generated table
var staffingCmd = &cobra.Command{
	Use:   "staffing",
	Short: "Estimate hourly call-taker staffing from a call table",
	Long: `Read a generated CSV table and estimate how many call takers each agency
needs per hour of the day, from the call volume and phone times of the
table averaged over its days.

With --capacity, agencies are served in priority order and any hour whose
demand exceeds the capacity is reported with the unmet agents per agency.`,
	Args: cobra.NoArgs,
	RunE: runStaffing,
}

var (
	staffingInput       string
	staffingFormat      string
	staffingUtilization float64
	staffingCapacity    int
)

func init() {
	flags := staffingCmd.Flags()
	flags.StringVarP(&staffingInput, "input", "i", "", "Input CSV file (required)")
	flags.StringVarP(&staffingFormat, "format", "f", "text", "Output format: text|json|csv")
	flags.Float64Var(&staffingUtilization, "utilization", 1.0, "Utilization multiplier (between 0 and 1)")
	flags.IntVar(&staffingCapacity, "capacity", 0, "Maximum call takers per hour (0 = unlimited)")
	staffingCmd.MarkFlagRequired("input")
}

func runStaffing(cmd *cobra.Command, args []string) error {
	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[staffingFormat] {
		return fmt.Errorf("format must be one of: text, json, csv (got: %s)", staffingFormat)
	}

	// Validate utilization range
	if staffingUtilization <= 0 || staffingUtilization > 1 {
		return fmt.Errorf("utilization must be greater than 0 and at most 1")
	}
	if staffingCapacity < 0 {
		return fmt.Errorf("capacity must not be negative")
	}

	startMetricsServer(settings.MetricsAddr)

	records, err := readTable(staffingInput)
	if err != nil {
		return err
	}

	plan := scheduler.GenerateStaffing(records, staffingUtilization, staffingCapacity)

	out := cmd.OutOrStdout()
	switch staffingFormat {
	case "json":
		fmt.Fprint(out, formatter.FormatStaffingJSON(plan))
	case "csv":
		fmt.Fprint(out, formatter.FormatStaffingCSV(plan))
	default: // "text"
		fmt.Fprint(out, formatter.FormatStaffingText(plan))
	}

	finishMetrics(cmd.Context(), out, "synth911_staffing")
	return nil
}
