// Package analyzer summarizes the numeric columns of a call table and finds
// the candidate distribution that best fits each of them.
package analyzer

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"synth911/models"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Column extracts one numeric field from a record.
type Column struct {
	Name  string
	Value func(models.Record) float64
}

// NumericColumns lists every integer column of the exported table.
var NumericColumns = []Column{
	{"day_of_year", func(r models.Record) float64 { return float64(r.DayOfYear) }},
	{"week_no", func(r models.Record) float64 { return float64(r.WeekNo) }},
	{"hour", func(r models.Record) float64 { return float64(r.Hour) }},
	{"priority_number", func(r models.Record) float64 { return float64(r.PriorityNumber) }},
	{"queue_time", func(r models.Record) float64 { return float64(r.QueueTime) }},
	{"dispatch_time", func(r models.Record) float64 { return float64(r.DispatchTime) }},
	{"phone_time", func(r models.Record) float64 { return float64(r.PhoneTime) }},
	{"ack_time", func(r models.Record) float64 { return float64(r.AckTime) }},
	{"enroute_time", func(r models.Record) float64 { return float64(r.EnrouteTime) }},
	{"on_scene_time", func(r models.Record) float64 { return float64(r.OnSceneTime) }},
	{"process_time", func(r models.Record) float64 { return float64(r.ProcessTime) }},
	{"total_time", func(r models.Record) float64 { return float64(r.TotalTime) }},
}

// SummaryColumns are the columns reported after every generation run.
var SummaryColumns = []string{"phone_time", "process_time", "total_time"}

// Values returns the named column of records, or nil if there is no such
// numeric column.
func Values(records []models.Record, name string) []float64 {
	for _, c := range NumericColumns {
		if c.Name != name {
			continue
		}
		out := make([]float64, len(records))
		for i, r := range records {
			out[i] = c.Value(r)
		}
		return out
	}
	return nil
}

// Summarize returns count, mean, sample standard deviation, extremes and
// quartiles of values.
func Summarize(column string, values []float64) models.ColumnSummary {
	s := models.ColumnSummary{Column: column, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P25 = quantile(0.25, sorted)
	s.P50 = quantile(0.50, sorted)
	s.P75 = quantile(0.75, sorted)
	return s
}

// quantile interpolates linearly between closest ranks of sorted data.
func quantile(p float64, sorted []float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Describe summarizes the given columns of records in order.
func Describe(records []models.Record, columns ...string) []models.ColumnSummary {
	out := make([]models.ColumnSummary, 0, len(columns))
	for _, name := range columns {
		values := Values(records, name)
		if values == nil {
			continue
		}
		out = append(out, Summarize(name, values))
	}
	return out
}

// Fit is the goodness of fit of one candidate distribution.
type Fit struct {
	Distribution string             `json:"distribution"`
	Params       map[string]float64 `json:"params"`
	// KS is the Kolmogorov-Smirnov statistic; PValue its asymptotic p-value.
	KS     float64 `json:"ks"`
	PValue float64 `json:"p_value"`
}

// ColumnReport is the analysis of a single column.
type ColumnReport struct {
	Summary models.ColumnSummary `json:"summary"`
	Fits    []Fit                `json:"fits"`
	// Best is nil when no candidate could be fitted.
	Best *Fit `json:"best_fit,omitempty"`
}

type cdf interface {
	CDF(x float64) float64
}

type candidate struct {
	name   string
	params map[string]float64
	dist   cdf
	// data is the subset of the column the candidate is tested against.
	data []float64
}

// candidates estimates the parameters of every candidate distribution
// that can describe sorted.
func candidates(sorted []float64) []candidate {
	mean := stat.Mean(sorted, nil)
	std := stat.StdDev(sorted, nil)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	var out []candidate
	if std > 0 {
		out = append(out, candidate{
			name:   "normal",
			params: map[string]float64{"mu": mean, "sigma": std},
			dist:   distuv.Normal{Mu: mean, Sigma: std},
			data:   sorted,
		})
	}
	if mean > 0 && lo >= 0 {
		out = append(out, candidate{
			name:   "exponential",
			params: map[string]float64{"rate": 1 / mean},
			dist:   distuv.Exponential{Rate: 1 / mean},
			data:   sorted,
		})
	}
	if hi > lo {
		out = append(out, candidate{
			name:   "uniform",
			params: map[string]float64{"min": lo, "max": hi},
			dist:   distuv.Uniform{Min: lo, Max: hi},
			data:   sorted,
		})
	}

	// lognormal is fitted to the strictly positive values only
	positive := sorted[firstPositive(sorted):]
	if len(positive) > 1 {
		logs := make([]float64, len(positive))
		for i, v := range positive {
			logs[i] = math.Log(v)
		}
		mu, sigma := stat.MeanStdDev(logs, nil)
		if sigma > 0 {
			out = append(out, candidate{
				name:   "lognormal",
				params: map[string]float64{"mu": mu, "sigma": sigma},
				dist:   distuv.LogNormal{Mu: mu, Sigma: sigma},
				data:   positive,
			})
		}
	}

	if mean > 0 && lo >= 0 && integral(sorted) {
		out = append(out, candidate{
			name:   "poisson",
			params: map[string]float64{"lambda": mean},
			dist:   distuv.Poisson{Lambda: mean},
			data:   sorted,
		})
	}
	return out
}

// firstPositive returns the index of the first strictly positive value of sorted.
func firstPositive(sorted []float64) int {
	i, _ := slices.BinarySearchFunc(sorted, 0.0, func(v, target float64) int {
		if v <= target {
			return -1
		}
		return 1
	})
	return i
}

func integral(values []float64) bool {
	for _, v := range values {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}

// KSStatistic returns the largest distance between the empirical CDF of
// sorted and the CDF of dist.
func KSStatistic(sorted []float64, dist cdf) float64 {
	n := float64(len(sorted))
	d := 0.0
	for i, x := range sorted {
		f := dist.CDF(x)
		d = math.Max(d, math.Max(f-float64(i)/n, float64(i+1)/n-f))
	}
	return d
}

// KSPValue is the asymptotic Kolmogorov distribution tail probability for
// statistic d over n samples.
func KSPValue(d float64, n int) float64 {
	lambda := (math.Sqrt(float64(n)) + 0.12 + 0.11/math.Sqrt(float64(n))) * d
	if lambda < 1e-3 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	return math.Max(0, math.Min(1, 2*sum))
}

// AnalyzeColumn summarizes values and picks the candidate with the smallest
// Kolmogorov-Smirnov statistic.
func AnalyzeColumn(column string, values []float64) ColumnReport {
	report := ColumnReport{Summary: Summarize(column, values)}
	if len(values) < 2 {
		return report
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	for _, c := range candidates(sorted) {
		d := KSStatistic(c.data, c.dist)
		report.Fits = append(report.Fits, Fit{
			Distribution: c.name,
			Params:       c.params,
			KS:           d,
			PValue:       KSPValue(d, len(c.data)),
		})
	}
	for i := range report.Fits {
		if report.Best == nil || report.Fits[i].KS < report.Best.KS {
			report.Best = &report.Fits[i]
		}
	}
	return report
}

// Analyze reports on every numeric column of records.
func Analyze(records []models.Record) []ColumnReport {
	reports := make([]ColumnReport, 0, len(NumericColumns))
	for _, c := range NumericColumns {
		reports = append(reports, AnalyzeColumn(c.Name, Values(records, c.Name)))
	}
	return reports
}

// WriteReport writes reports in a human readable form.
func WriteReport(w io.Writer, reports []ColumnReport) error {
	for _, r := range reports {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Column: %s\n", r.Summary.Column))
		if r.Best == nil {
			sb.WriteString("  Best fit: none\n")
		} else {
			sb.WriteString(fmt.Sprintf("  Best fit: %s\n", r.Best.Distribution))
			sb.WriteString(fmt.Sprintf("  Parameters: %s\n", formatParams(r.Best.Params)))
			sb.WriteString(fmt.Sprintf("  KS statistic: %.4f\n", r.Best.KS))
			sb.WriteString(fmt.Sprintf("  p-value: %.4f\n", r.Best.PValue))
		}
		s := r.Summary
		sb.WriteString(fmt.Sprintf("  Summary: count=%d mean=%.4f std=%.4f min=%.4f 25%%=%.4f 50%%=%.4f 75%%=%.4f max=%.4f\n\n",
			s.Count, s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max))
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return fmt.Errorf("writing report for %s: %w", s.Column, err)
		}
	}
	return nil
}

func formatParams(params map[string]float64) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%.4f", k, params[k])
	}
	return strings.Join(parts, ", ")
}

// ResultFileName is the report file written for an input CSV path.
func ResultFileName(input string) string {
	base := filepath.Base(input)
	return fmt.Sprintf("distribution_results_%s.txt", strings.TrimSuffix(base, ".csv"))
}
