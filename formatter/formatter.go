package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"synth911/models"

	"gopkg.in/yaml.v3"
)

// integerColumns are emitted as JSON numbers; every other column is a string.
var integerColumns = map[string]bool{
	"day_of_year": true, "week_no": true, "hour": true, "priority_number": true,
	"queue_time": true, "dispatch_time": true, "phone_time": true, "ack_time": true,
	"enroute_time": true, "on_scene_time": true, "process_time": true, "total_time": true,
}

// Row renders a record as CSV fields in models.Columns order.
func Row(r models.Record) []string {
	ts := func(t time.Time) string {
		return t.Format(models.TimestampLayout)
	}
	return []string{
		r.CallID,
		string(r.Agency),
		ts(r.EventTime),
		strconv.Itoa(r.DayOfYear),
		strconv.Itoa(r.WeekNo),
		strconv.Itoa(r.Hour),
		string(r.DayNight),
		r.DOW,
		string(r.Shift),
		string(r.ShiftPart),
		r.Problem,
		r.Address,
		strconv.Itoa(r.PriorityNumber),
		r.CallTaker,
		r.CallReception,
		r.Dispatcher,
		strconv.Itoa(r.QueueTime),
		strconv.Itoa(r.DispatchTime),
		strconv.Itoa(r.PhoneTime),
		strconv.Itoa(r.AckTime),
		strconv.Itoa(r.EnrouteTime),
		strconv.Itoa(r.OnSceneTime),
		strconv.Itoa(r.ProcessTime),
		strconv.Itoa(r.TotalTime),
		ts(r.CallQueued),
		ts(r.CallDispatched),
		ts(r.CallAcknowledged),
		ts(r.CallDisconnected),
		ts(r.UnitEnroute),
		ts(r.CallClosed),
		r.Disposition,
	}
}

// WriteCSV writes a header row followed by one row per record.
func WriteCSV(w io.Writer, records []models.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(models.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := writer.Write(Row(r)); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", r.CallID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// FormatCSV returns the CSV representation of the records
func FormatCSV(records []models.Record) string {
	var sb strings.Builder
	_ = WriteCSV(&sb, records)
	return sb.String()
}

// jsonRow is a record serialised as an object keyed by column name, with
// keys kept in column order.
type jsonRow []string

func (row jsonRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range models.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(col)
		buf.Write(key)
		buf.WriteByte(':')
		if integerColumns[col] {
			buf.WriteString(row[i])
			continue
		}
		val, err := json.Marshal(row[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteJSON writes the records as an indented JSON array of row objects.
func WriteJSON(w io.Writer, records []models.Record) error {
	rows := make([]jsonRow, len(records))
	for i, r := range records {
		rows[i] = Row(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// FormatJSON returns the JSON representation of the records
func FormatJSON(records []models.Record) string {
	var sb strings.Builder
	_ = WriteJSON(&sb, records)
	return sb.String()
}

// FormatText returns the run summary printed after generation: the column
// statistics followed by the personnel roster of every shift.
func FormatText(table *models.Table, summaries []models.ColumnSummary) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generated %d records (run %s, locale %s, seed %d)\n",
		len(table.Records), table.RunID, table.Locale, table.Seed))
	for _, w := range table.Warnings {
		sb.WriteString(fmt.Sprintf("  ⚠️  %v\n", w))
	}

	if len(summaries) > 0 {
		sb.WriteString("\n")
		sb.WriteString(formatSummaryTable(summaries))
	}

	sb.WriteString("\nCall takers:\n")
	sb.WriteString(formatPool(table.CallTakers))
	sb.WriteString("\nDispatchers:\n")
	sb.WriteString(formatPool(table.Dispatchers))

	return sb.String()
}

// formatSummaryTable lays the statistics out with one column per field.
func formatSummaryTable(summaries []models.ColumnSummary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s", ""))
	for _, s := range summaries {
		sb.WriteString(fmt.Sprintf(" %14s", s.Column))
	}
	sb.WriteString("\n")

	rows := []struct {
		label string
		value func(models.ColumnSummary) float64
	}{
		{"count", func(s models.ColumnSummary) float64 { return float64(s.Count) }},
		{"mean", func(s models.ColumnSummary) float64 { return s.Mean }},
		{"std", func(s models.ColumnSummary) float64 { return s.Std }},
		{"min", func(s models.ColumnSummary) float64 { return s.Min }},
		{"25%", func(s models.ColumnSummary) float64 { return s.P25 }},
		{"50%", func(s models.ColumnSummary) float64 { return s.P50 }},
		{"75%", func(s models.ColumnSummary) float64 { return s.P75 }},
		{"max", func(s models.ColumnSummary) float64 { return s.Max }},
	}
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-6s", row.label))
		for _, s := range summaries {
			sb.WriteString(fmt.Sprintf(" %14.6f", row.value(s)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatPool(pool models.PersonnelPool) string {
	var sb strings.Builder
	for _, shift := range models.AllShifts {
		sb.WriteString(fmt.Sprintf("  Shift %s: %s\n", shift, strings.Join(pool[shift], "; ")))
	}
	return sb.String()
}

// Roster is the YAML personnel and statistics report for a run.
type Roster struct {
	RunID       string                 `yaml:"run_id"`
	Locale      string                 `yaml:"locale"`
	Seed        uint64                 `yaml:"seed"`
	Records     int                    `yaml:"records"`
	CallTakers  map[string][]string    `yaml:"call_takers"`
	Dispatchers map[string][]string    `yaml:"dispatchers"`
	Summary     []models.ColumnSummary `yaml:"summary,omitempty"`
}

// FormatRoster returns the YAML roster report for a table.
func FormatRoster(table *models.Table, summaries []models.ColumnSummary) ([]byte, error) {
	roster := Roster{
		RunID:       table.RunID,
		Locale:      table.Locale,
		Seed:        table.Seed,
		Records:     len(table.Records),
		CallTakers:  poolByLetter(table.CallTakers),
		Dispatchers: poolByLetter(table.Dispatchers),
		Summary:     summaries,
	}
	out, err := yaml.Marshal(roster)
	if err != nil {
		return nil, fmt.Errorf("encoding roster: %w", err)
	}
	return out, nil
}

func poolByLetter(pool models.PersonnelPool) map[string][]string {
	out := make(map[string][]string, len(pool))
	for shift, names := range pool {
		out[string(shift)] = names
	}
	return out
}
