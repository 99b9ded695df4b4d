package analyzer_test

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"synth911/analyzer"
	"synth911/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestSummarize(t *testing.T) {
	tests := map[string]struct {
		values   []float64
		expected models.ColumnSummary
	}{
		"Empty": {
			values:   nil,
			expected: models.ColumnSummary{Column: "x"},
		},
		"Single": {
			values:   []float64{4},
			expected: models.ColumnSummary{Column: "x", Count: 1, Mean: 4, Min: 4, P25: 4, P50: 4, P75: 4, Max: 4},
		},
		"Unsorted": {
			values: []float64{5, 1, 4, 2, 3},
			expected: models.ColumnSummary{
				Column: "x", Count: 5, Mean: 3, Std: 1.5811388300841898,
				Min: 1, P25: 2, P50: 3, P75: 4, Max: 5,
			},
		},
		"Interpolated": {
			values: []float64{1, 2, 3, 4},
			expected: models.ColumnSummary{
				Column: "x", Count: 4, Mean: 2.5, Std: 1.2909944487358056,
				Min: 1, P25: 1.75, P50: 2.5, P75: 3.25, Max: 4,
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := analyzer.Summarize("x", tt.values)
			assert.Equal(t, tt.expected.Count, got.Count)
			assert.InDelta(t, tt.expected.Mean, got.Mean, 1e-9)
			assert.InDelta(t, tt.expected.Std, got.Std, 1e-9)
			assert.InDelta(t, tt.expected.Min, got.Min, 1e-9)
			assert.InDelta(t, tt.expected.P25, got.P25, 1e-9)
			assert.InDelta(t, tt.expected.P50, got.P50, 1e-9)
			assert.InDelta(t, tt.expected.P75, got.P75, 1e-9)
			assert.InDelta(t, tt.expected.Max, got.Max, 1e-9)
		})
	}
}

func sample(n int, dist interface{ Rand() float64 }) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = dist.Rand()
	}
	return out
}

func TestAnalyzeColumn_BestFit(t *testing.T) {
	src := rand.NewPCG(11, 13)
	tests := map[string]struct {
		values   []float64
		expected string
	}{
		"Normal":      {sample(4000, distuv.Normal{Mu: 20, Sigma: 5, Src: src}), "normal"},
		"Exponential": {sample(4000, distuv.Exponential{Rate: 0.01, Src: src}), "exponential"},
		"Uniform":     {sample(4000, distuv.Uniform{Min: 10, Max: 20, Src: src}), "uniform"},
		"LogNormal":   {sample(4000, distuv.LogNormal{Mu: 1, Sigma: 0.9, Src: src}), "lognormal"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			report := analyzer.AnalyzeColumn(name, tt.values)
			require.NotNil(t, report.Best)
			assert.Equal(t, tt.expected, report.Best.Distribution)
			assert.Less(t, report.Best.KS, 0.05)
			assert.Greater(t, report.Best.PValue, 0.0)
			for _, f := range report.Fits {
				assert.GreaterOrEqual(t, f.KS, report.Best.KS)
			}
		})
	}
}

func TestAnalyzeColumn_Degenerate(t *testing.T) {
	report := analyzer.AnalyzeColumn("const", []float64{0, 0, 0, 0})
	assert.Nil(t, report.Best)
	assert.Empty(t, report.Fits)
	assert.Equal(t, 4, report.Summary.Count)
}

func TestKSStatistic(t *testing.T) {
	// evenly spaced points against their own uniform distribution
	values := []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	d := analyzer.KSStatistic(values, distuv.Uniform{Min: 0, Max: 1})
	assert.InDelta(t, 0.1, d, 1e-9)
}

func TestKSPValue(t *testing.T) {
	assert.Equal(t, 1.0, analyzer.KSPValue(0, 100))
	assert.InDelta(t, 0.0, analyzer.KSPValue(0.5, 1000), 1e-9)
	assert.Greater(t, analyzer.KSPValue(0.01, 100), analyzer.KSPValue(0.2, 100))
}

func TestAnalyze(t *testing.T) {
	records := make([]models.Record, 50)
	for i := range records {
		records[i].Hour = i % 24
		records[i].PhoneTime = 10 + i
		records[i].PriorityNumber = 1 + i%5
	}

	reports := analyzer.Analyze(records)
	require.Len(t, reports, len(analyzer.NumericColumns))
	for _, r := range reports {
		assert.Equal(t, 50, r.Summary.Count)
	}

	var buf bytes.Buffer
	require.NoError(t, analyzer.WriteReport(&buf, reports))
	out := buf.String()
	assert.Contains(t, out, "Column: phone_time\n")
	assert.Contains(t, out, "  Best fit: ")
	assert.Contains(t, out, "Column: day_of_year\n  Best fit: none\n")
}

func TestDescribe(t *testing.T) {
	records := []models.Record{{}, {}}
	records[0].PhoneTime, records[1].PhoneTime = 10, 30

	summaries := analyzer.Describe(records, "phone_time", "unknown", "total_time")
	require.Len(t, summaries, 2)
	assert.Equal(t, "phone_time", summaries[0].Column)
	assert.Equal(t, 20.0, summaries[0].Mean)
	assert.Equal(t, "total_time", summaries[1].Column)
}

func TestResultFileName(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected string
	}{
		"Plain":   {"calls.csv", "distribution_results_calls.txt"},
		"WithDir": {"out/run1.csv", "distribution_results_run1.txt"},
		"NoExt":   {"calls", "distribution_results_calls.txt"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analyzer.ResultFileName(tt.input))
		})
	}
}
