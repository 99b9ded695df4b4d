package generator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"synth911/models"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	minRandomCounter = 1000
	maxRandomCounter = 100000
)

// sampleAgencies draws n independent agencies according to weights.
func sampleAgencies(n int, agencies []models.Agency, weights []float64, src rand.Source) []models.Agency {
	dist := distuv.NewCategorical(weights, src)
	out := make([]models.Agency, n)
	for i := range out {
		out[i] = agencies[int(dist.Rand())]
	}
	return out
}

// callIDSequencer hands out "<yy>-<prefix><counter>" identifiers.
// Counters are owned by a single run and only ever move forward.
type callIDSequencer struct {
	year string
	next map[models.Agency]int
}

// newCallIDSequencer seeds every agency counter at 1 when the window opens
// on January 1st, otherwise at a random value in [1000, 100000).
func newCallIDSequencer(start time.Time, rng *rand.Rand) *callIDSequencer {
	s := &callIDSequencer{
		year: fmt.Sprintf("%02d", start.Year()%100),
		next: make(map[models.Agency]int, len(models.AllAgencies)),
	}
	newYear := start.Month() == time.January && start.Day() == 1
	for _, a := range models.AllAgencies {
		if newYear {
			s.next[a] = 1
			continue
		}
		s.next[a] = minRandomCounter + rng.IntN(maxRandomCounter-minRandomCounter)
	}
	return s
}

func (s *callIDSequencer) Next(agency models.Agency) string {
	id := fmt.Sprintf("%s-%s%06d", s.year, agency.Prefix(), s.next[agency])
	s.next[agency]++
	return id
}
