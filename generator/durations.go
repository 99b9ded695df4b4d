package generator

import (
	"math"
	"math/rand/v2"

	"synth911/models"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Bounds is an inclusive clip range in seconds.
type Bounds struct {
	Min int
	Max int
}

// Clip limits v to b.
func (b Bounds) Clip(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Clip ranges for the sampled durations. phone_time is left unclipped.
var (
	QueueBounds    = Bounds{Min: 0, Max: 90}
	DispatchBounds = Bounds{Min: 5, Max: 600}
	AckBounds      = Bounds{Min: 2, Max: 40}
	EnrouteBounds  = Bounds{Min: 300, Max: 900}
	OnSceneBounds  = Bounds{Min: 300, Max: 7200}
)

const (
	queueMu         = 3.5
	queueSigma      = 1.2
	queueTargetMean = 200.0

	dispatchDF    = 5.0
	dispatchScale = 2.0

	fastCallShare = 0.8
	fastCallScale = 80.0
	slowCallShape = 2.0
	slowCallScale = 200.0

	ackShape     = 2.0
	ackScale     = 30.0
	enrouteShape = 6.0
	enrouteScale = 70.0
	onSceneShape = 3.0
	onSceneScale = 800.0
)

// sampleDurations draws the six timing fields for n records and fills in
// the derived process and total times. Each field is drawn as a whole
// column so queue_time can be rescaled by its own sample mean.
func sampleDurations(n int, src rand.Source) []models.Durations {
	queue := sampleQueueTimes(n, src)
	dispatch := sampleDispatchTimes(n, src)
	phone := samplePhoneTimes(n, src)
	ack := sampleGammaColumn(n, ackShape, ackScale, AckBounds, src)
	enroute := sampleGammaColumn(n, enrouteShape, enrouteScale, EnrouteBounds, src)
	onScene := sampleGammaColumn(n, onSceneShape, onSceneScale, OnSceneBounds, src)

	out := make([]models.Durations, n)
	for i := range out {
		out[i] = withTotals(models.Durations{
			QueueTime:    queue[i],
			DispatchTime: dispatch[i],
			PhoneTime:    phone[i],
			AckTime:      ack[i],
			EnrouteTime:  enroute[i],
			OnSceneTime:  onScene[i],
		})
	}
	return out
}

// withTotals sets ProcessTime and TotalTime from the sampled fields.
func withTotals(d models.Durations) models.Durations {
	d.ProcessTime = d.QueueTime + d.DispatchTime
	d.TotalTime = d.QueueTime + d.DispatchTime + d.AckTime + d.EnrouteTime + d.OnSceneTime
	return d
}

// sampleQueueTimes draws log-normal seconds, rescales them so the sample
// mean is queueTargetMean, and only then clips. The realized mean after
// clipping is therefore well below the target.
func sampleQueueTimes(n int, src rand.Source) []int {
	dist := distuv.LogNormal{Mu: queueMu, Sigma: queueSigma, Src: src}
	raw := make([]float64, n)
	for i := range raw {
		raw[i] = math.Trunc(dist.Rand())
	}

	mean := stat.Mean(raw, nil)
	out := make([]int, n)
	for i, v := range raw {
		scaled := 0
		if mean > 0 {
			scaled = int(v * queueTargetMean / mean)
		}
		out[i] = QueueBounds.Clip(scaled)
	}
	return out
}

func sampleDispatchTimes(n int, src rand.Source) []int {
	dist := distuv.ChiSquared{K: dispatchDF, Src: src}
	out := make([]int, n)
	for i := range out {
		out[i] = DispatchBounds.Clip(int(dist.Rand() * dispatchScale))
	}
	return out
}

// samplePhoneTimes mixes fast (exponential) and slow (gamma) calls.
func samplePhoneTimes(n int, src rand.Source) []int {
	mix := distuv.Bernoulli{P: fastCallShare, Src: src}
	fast := distuv.Exponential{Rate: 1 / fastCallScale, Src: src}
	slow := distuv.Gamma{Alpha: slowCallShape, Beta: 1 / slowCallScale, Src: src}

	out := make([]int, n)
	for i := range out {
		if mix.Rand() == 1 {
			out[i] = int(fast.Rand())
		} else {
			out[i] = int(slow.Rand())
		}
	}
	return out
}

// sampleGammaColumn draws from a gamma distribution given shape and scale.
func sampleGammaColumn(n int, shape, scale float64, b Bounds, src rand.Source) []int {
	dist := distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: src}
	out := make([]int, n)
	for i := range out {
		out[i] = b.Clip(int(dist.Rand()))
	}
	return out
}
