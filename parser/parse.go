package parser

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"synth911/errors"
	"synth911/metrics"
	"synth911/models"
)

// Parse reads a generated call table from CSV and returns its records.
// The first non-comment row must be the header in models.Columns order.
// Lines starting with '#' are treated as comments and skipped.
// Datetime fields use models.TimestampLayout and are read as UTC.
func Parse(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var data []models.Record
	headerSeen := false
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		if len(record) > 0 && strings.HasPrefix(record[0], "#") {
			continue
		}

		if !headerSeen {
			if err := checkHeader(record); err != nil {
				return nil, fail(lineNum, record, err)
			}
			headerSeen = true
			continue
		}

		rec, err := parseRecord(record)
		if err != nil {
			return nil, fail(lineNum, record, err)
		}
		data = append(data, rec)
		metrics.ParserRecordsTotal.Inc()
	}

	if !headerSeen {
		return nil, fail(lineNum, nil, errors.ErrEmptyRecord)
	}
	return data, nil
}

func fail(line int, record []string, err error) error {
	metrics.ParserErrorsTotal.WithLabelValues(errorType(err)).Inc()
	return &errors.ParseError{Line: line, Record: record, Err: err}
}

// errorType maps a parse failure to a low-cardinality metric label.
func errorType(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrInvalidHeader):
		return "header"
	case stderrors.Is(err, errors.ErrInvalidFieldCount):
		return "field_count"
	case stderrors.Is(err, errors.ErrInvalidTimestamp):
		return "timestamp"
	case stderrors.Is(err, errors.ErrInvalidInteger):
		return "integer"
	case stderrors.Is(err, errors.ErrUnknownAgency):
		return "agency"
	case stderrors.Is(err, errors.ErrEmptyRecord):
		return "empty"
	default:
		return "other"
	}
}

func checkHeader(record []string) error {
	if len(record) != len(models.Columns) {
		return fmt.Errorf("%w: expected %d columns, got %d", errors.ErrInvalidHeader, len(models.Columns), len(record))
	}
	for i, col := range models.Columns {
		if strings.TrimSpace(record[i]) != col {
			return fmt.Errorf("%w: column %d is %q, expected %q", errors.ErrInvalidHeader, i+1, record[i], col)
		}
	}
	return nil
}

// fieldReader walks a CSV row in column order, keeping the first error.
type fieldReader struct {
	record []string
	pos    int
	err    error
}

func (f *fieldReader) text() string {
	v := strings.TrimSpace(f.record[f.pos])
	f.pos++
	return v
}

func (f *fieldReader) integer() int {
	col := models.Columns[f.pos]
	v := f.text()
	if f.err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.err = fmt.Errorf("%w in %s: %v", errors.ErrInvalidInteger, col, err)
	}
	return n
}

func (f *fieldReader) timestamp() time.Time {
	col := models.Columns[f.pos]
	v := f.text()
	if f.err != nil {
		return time.Time{}
	}
	t, err := time.Parse(models.TimestampLayout, v)
	if err != nil {
		f.err = fmt.Errorf("%w in %s: %v", errors.ErrInvalidTimestamp, col, err)
	}
	return t
}

func parseRecord(record []string) (models.Record, error) {
	if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
		return models.Record{}, errors.ErrEmptyRecord
	}
	if len(record) != len(models.Columns) {
		return models.Record{}, errors.ErrInvalidFieldCount
	}

	f := &fieldReader{record: record}
	var r models.Record
	r.CallID = f.text()
	r.Agency = models.Agency(f.text())
	r.EventTime = f.timestamp()
	r.DayOfYear = f.integer()
	r.WeekNo = f.integer()
	r.Hour = f.integer()
	r.DayNight = models.DayNight(f.text())
	r.DOW = f.text()
	r.Shift = models.Shift(f.text())
	r.ShiftPart = models.ShiftPart(f.text())
	r.Problem = f.text()
	r.Address = f.text()
	r.PriorityNumber = f.integer()
	r.CallTaker = f.text()
	r.CallReception = f.text()
	r.Dispatcher = f.text()
	r.QueueTime = f.integer()
	r.DispatchTime = f.integer()
	r.PhoneTime = f.integer()
	r.AckTime = f.integer()
	r.EnrouteTime = f.integer()
	r.OnSceneTime = f.integer()
	r.ProcessTime = f.integer()
	r.TotalTime = f.integer()
	r.CallQueued = f.timestamp()
	r.CallDispatched = f.timestamp()
	r.CallAcknowledged = f.timestamp()
	r.CallDisconnected = f.timestamp()
	r.UnitEnroute = f.timestamp()
	r.CallClosed = f.timestamp()
	r.Disposition = f.text()
	if f.err != nil {
		return models.Record{}, f.err
	}

	if !knownAgency(r.Agency) {
		return models.Record{}, fmt.Errorf("%w: %q", errors.ErrUnknownAgency, r.Agency)
	}
	return r, nil
}

func knownAgency(a models.Agency) bool {
	for _, known := range models.AllAgencies {
		if a == known {
			return true
		}
	}
	return false
}
