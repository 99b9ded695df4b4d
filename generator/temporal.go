package generator

import (
	"math/rand/v2"
	"slices"
	"time"
)

// sampleEventTimes draws n uniform second offsets in [start, end) and
// returns the resulting instants in ascending order.
func sampleEventTimes(n int, start, end time.Time, rng *rand.Rand) []time.Time {
	window := int64(end.Sub(start) / time.Second)
	offsets := make([]int64, n)
	for i := range offsets {
		offsets[i] = rng.Int64N(window)
	}
	slices.Sort(offsets)

	times := make([]time.Time, n)
	for i, off := range offsets {
		times[i] = start.Add(time.Duration(off) * time.Second)
	}
	return times
}
