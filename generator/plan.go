package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	customerrors "synth911/errors"
	"synth911/locale"
	"synth911/models"
)

const (
	dateLayout = "2006-01-02"

	// probabilityTolerance matches the closeness test used when callers
	// supply agency weights by hand (e.g. 0.1+0.2+0.7).
	probabilityTolerance = 1e-6
)

// Plan is a validated generation request. Building a Plan performs every
// configuration check, so a Plan can always be run to completion.
type Plan struct {
	NumRecords int
	// Start is midnight of the first day; End is midnight after the last
	// day, so the window is [Start, End).
	Start    time.Time
	End      time.Time
	NumNames int
	Locale   string
	Agencies []models.Agency
	Weights  []float64
	Seed     uint64
	// Warnings are non-fatal conditions found while validating.
	Warnings []error
}

// NewPlan validates cfg. It returns a *errors.ConfigurationError when the
// request cannot be generated.
func NewPlan(cfg models.Config) (*Plan, error) {
	if cfg.NumRecords <= 0 {
		return nil, configError("num_records", cfg.NumRecords, customerrors.ErrInvalidRecordCount)
	}
	if cfg.NumNames <= 0 {
		return nil, configError("num_names", cfg.NumNames, customerrors.ErrInvalidNameCount)
	}

	start, err := time.Parse(dateLayout, strings.TrimSpace(cfg.StartDate))
	if err != nil {
		return nil, configError("start_date", cfg.StartDate, customerrors.ErrInvalidDate)
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(cfg.EndDate))
	if err != nil {
		return nil, configError("end_date", cfg.EndDate, customerrors.ErrInvalidDate)
	}
	if end.Before(start) {
		return nil, configError("end_date", cfg.EndDate, customerrors.ErrDateOrder)
	}

	plan := &Plan{
		NumRecords: cfg.NumRecords,
		Start:      start,
		End:        end.AddDate(0, 0, 1),
		NumNames:   cfg.NumNames,
	}

	resolved, ok := locale.Resolve(cfg.Locale)
	if !ok {
		plan.Warnings = append(plan.Warnings, &customerrors.LocaleWarning{
			Requested: cfg.Locale,
			Fallback:  resolved,
		})
	}
	plan.Locale = resolved

	agencies, ignored := filterAgencies(cfg.Agencies)
	for _, name := range ignored {
		plan.Warnings = append(plan.Warnings, fmt.Errorf("%w: %q ignored", customerrors.ErrUnknownAgency, name))
	}
	if len(agencies) == 0 {
		return nil, configError("agencies", cfg.Agencies, customerrors.ErrEmptyAgencyUniverse)
	}
	plan.Agencies = agencies

	weights, err := resolveWeights(agencies, cfg.AgencyProbabilities)
	if err != nil {
		return nil, err
	}
	plan.Weights = weights

	if cfg.Seed != nil {
		plan.Seed = *cfg.Seed
	} else {
		plan.Seed = rand.Uint64()
	}

	return plan, nil
}

// filterAgencies keeps the recognised agency names in the order given,
// dropping duplicates. An empty selection means every agency.
func filterAgencies(selected []string) ([]models.Agency, []string) {
	if len(selected) == 0 {
		return append([]models.Agency(nil), models.AllAgencies...), nil
	}

	valid := make(map[models.Agency]bool, len(models.AllAgencies))
	for _, a := range models.AllAgencies {
		valid[a] = true
	}

	seen := make(map[models.Agency]bool)
	var agencies []models.Agency
	var ignored []string
	for _, raw := range selected {
		name := strings.ToUpper(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		agency := models.Agency(name)
		if !valid[agency] {
			ignored = append(ignored, raw)
			continue
		}
		if seen[agency] {
			continue
		}
		seen[agency] = true
		agencies = append(agencies, agency)
	}
	return agencies, ignored
}

func resolveWeights(agencies []models.Agency, probabilities []float64) ([]float64, error) {
	if len(probabilities) > 0 {
		if len(probabilities) != len(agencies) {
			return nil, configError("agency_probabilities", probabilities, customerrors.ErrProbabilityLength)
		}
		sum := 0.0
		for _, p := range probabilities {
			if math.IsNaN(p) || p < 0 {
				return nil, configError("agency_probabilities", probabilities, customerrors.ErrInvalidProbability)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > probabilityTolerance {
			return nil, configError("agency_probabilities", probabilities, customerrors.ErrProbabilitySum)
		}
		return append([]float64(nil), probabilities...), nil
	}

	weights := make([]float64, len(agencies))
	if len(agencies) < len(models.AllAgencies) {
		for i := range weights {
			weights[i] = 1.0 / float64(len(agencies))
		}
		return weights, nil
	}
	for i, a := range agencies {
		weights[i] = models.DefaultAgencyWeights[a]
	}
	return weights, nil
}

func configError(field string, value any, err error) error {
	return &customerrors.ConfigurationError{Field: field, Value: value, Err: err}
}
