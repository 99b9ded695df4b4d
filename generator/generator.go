// Package generator synthesizes tables of fictitious emergency dispatch
// calls. A run is a single synchronous pass over one seeded random stream;
// no state survives between runs.
package generator

import (
	"errors"
	"math/rand/v2"
	"slices"
	"time"

	customerrors "synth911/errors"
	"synth911/metrics"
	"synth911/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakerSalt decorrelates the name source from the sampling stream.
const fakerSalt = 0x5eed911

// Generator builds tables of call records.
type Generator struct {
	logger *zap.Logger
	names  func(seed uint64) NameSource
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for warnings and run summaries.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithNameSource replaces the default name and address source.
func WithNameSource(factory func(seed uint64) NameSource) Option {
	return func(g *Generator) {
		if factory != nil {
			g.names = factory
		}
	}
}

// New returns a Generator using gofakeit for names and addresses.
func New(opts ...Option) *Generator {
	g := &Generator{
		logger: zap.NewNop(),
		names: func(seed uint64) NameSource {
			return gofakeit.New(seed ^ fakerSalt)
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate validates cfg and builds a table. Configuration problems are
// returned as *errors.ConfigurationError before any sampling happens.
func Generate(cfg models.Config) (*models.Table, error) {
	return New().Generate(cfg)
}

// Generate validates cfg and builds a table.
func (g *Generator) Generate(cfg models.Config) (*models.Table, error) {
	plan, err := NewPlan(cfg)
	if err != nil {
		var cfgErr *customerrors.ConfigurationError
		if errors.As(err, &cfgErr) {
			metrics.ObserveConfigError(cfgErr.Field)
		}
		g.logger.Error("rejected generation request", zap.Error(err))
		return nil, err
	}
	return g.Run(plan), nil
}

// Run executes a validated plan.
func (g *Generator) Run(plan *Plan) *models.Table {
	began := time.Now()
	g.logWarnings(plan.Warnings)

	src := rand.NewPCG(plan.Seed, plan.Seed^0x9e3779b97f4a7c15)
	rng := rand.New(src)
	names := g.names(plan.Seed)

	callTakers := BuildPersonnelPool(plan.NumNames, names)
	dispatchers := BuildPersonnelPool(plan.NumNames, names)
	addresses := buildAddressPool(addressPoolSize, names)

	agencies := sampleAgencies(plan.NumRecords, plan.Agencies, plan.Weights, src)
	ids := newCallIDSequencer(plan.Start, rng)
	times := sampleEventTimes(plan.NumRecords, plan.Start, plan.End, rng)
	reception := newReceptionSampler(src)

	records := make([]models.Record, plan.NumRecords)
	for i := range records {
		r := &records[i]
		r.CallID = ids.Next(agencies[i])
		r.Agency = agencies[i]
		r.EventTime = times[i]
		applyClassification(r, Classify(r.EventTime))
		r.Problem, r.PriorityNumber = drawProblem(r.Agency, rng)
		if len(addresses) > 0 {
			r.Address = addresses[rng.IntN(len(addresses))]
		}
		r.CallTaker = pickName(callTakers, r.Shift, rng)
		r.CallReception = reception.Draw()
		r.Dispatcher = pickName(dispatchers, r.Shift, rng)
	}

	durations := sampleDurations(plan.NumRecords, src)
	for i := range records {
		records[i].Durations = durations[i]
		records[i].Timestamps = BuildCascade(records[i].EventTime, durations[i])
		records[i].Disposition = drawDisposition(records[i].Agency, rng)
	}

	slices.SortStableFunc(records, func(a, b models.Record) int {
		return a.EventTime.Compare(b.EventTime)
	})

	table := &models.Table{
		RunID:       uuid.NewString(),
		Locale:      plan.Locale,
		Seed:        plan.Seed,
		Records:     records,
		CallTakers:  callTakers,
		Dispatchers: dispatchers,
		Warnings:    plan.Warnings,
	}

	elapsed := time.Since(began)
	metrics.ObserveTable(table, elapsed.Seconds())
	g.logger.Info("generated call records",
		zap.String("run_id", table.RunID),
		zap.Int("records", len(records)),
		zap.String("locale", table.Locale),
		zap.Uint64("seed", table.Seed),
		zap.Duration("elapsed", elapsed),
	)
	return table
}

func (g *Generator) logWarnings(warnings []error) {
	for _, w := range warnings {
		var localeWarning *customerrors.LocaleWarning
		if errors.As(w, &localeWarning) {
			metrics.LocaleFallbacksTotal.Inc()
			g.logger.Warn("unsupported locale",
				zap.String("requested", localeWarning.Requested),
				zap.String("fallback", localeWarning.Fallback),
			)
			continue
		}
		g.logger.Warn("configuration warning", zap.Error(w))
	}
}

func applyClassification(r *models.Record, c Classification) {
	r.DayOfYear = c.DayOfYear
	r.WeekNo = c.WeekNo
	r.Hour = c.Hour
	r.DayNight = c.DayNight
	r.DOW = c.DOW
	r.Shift = c.Shift
	r.ShiftPart = c.ShiftPart
}
