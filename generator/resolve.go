package generator

import (
	"math/rand/v2"

	"synth911/catalog"
	"synth911/models"

	"gonum.org/v1/gonum/stat/distuv"
)

// drawProblem picks a problem uniformly from the agency's catalog and
// resolves its priority against the same catalog.
func drawProblem(agency models.Agency, rng *rand.Rand) (string, int) {
	problems := catalog.Problems(agency)
	p := problems[rng.IntN(len(problems))]
	return p.Name, catalog.Priority(agency, p.Name)
}

// drawDisposition picks uniformly from the dispositions allowed for agency.
func drawDisposition(agency models.Agency, rng *rand.Rand) string {
	allowed := catalog.Dispositions(agency)
	return allowed[rng.IntN(len(allowed))]
}

// receptionSampler draws call reception channels by their catalog weights.
type receptionSampler struct {
	names []string
	dist  distuv.Categorical
}

func newReceptionSampler(src rand.Source) *receptionSampler {
	channels := catalog.ReceptionChannels()
	names := make([]string, len(channels))
	weights := make([]float64, len(channels))
	for i, c := range channels {
		names[i] = c.Name
		weights[i] = c.Weight
	}
	return &receptionSampler{names: names, dist: distuv.NewCategorical(weights, src)}
}

func (s *receptionSampler) Draw() string {
	return s.names[int(s.dist.Rand())]
}
