package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"synth911/formatter"

	"github.com/spf13/cobra"
)

// convertCmd re-encodes a CSV table as JSON
var convertCmd = &cobra.Command{
	Use:   "convert <table.csv>",
	Short: "Convert a generated CSV table to JSON",
	Long: `Read a generated CSV table and write it as a JSON array of row objects.
Integer columns are written as numbers and every other column as a string.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var convertOutput string

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output JSON file (default: input name with .json)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	records, err := readTable(args[0])
	if err != nil {
		return err
	}

	output := convertOutput
	if output == "" {
		output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".json"
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	if err := formatter.WriteJSON(file, records); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d records to %s\n", len(records), output)
	return nil
}
