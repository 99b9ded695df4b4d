package generator

import (
	"time"

	"synth911/models"
)

// BuildCascade derives the six call timestamps from the event time.
// Queue, dispatch, acknowledge and enroute chain off each other; the
// disconnect and close times are offsets from the event time itself.
func BuildCascade(event time.Time, d models.Durations) models.Timestamps {
	var ts models.Timestamps
	ts.CallQueued = event.Add(seconds(d.QueueTime))
	ts.CallDispatched = ts.CallQueued.Add(seconds(d.DispatchTime))
	ts.CallAcknowledged = ts.CallDispatched.Add(seconds(d.AckTime))
	ts.CallDisconnected = event.Add(seconds(d.PhoneTime))
	ts.UnitEnroute = ts.CallAcknowledged.Add(seconds(d.EnrouteTime))
	ts.CallClosed = event.Add(seconds(d.TotalTime))
	return ts
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
