package generator_test

import (
	"testing"
	"time"

	"synth911/generator"
	"synth911/models"

	"github.com/stretchr/testify/assert"
)

func TestShiftFor(t *testing.T) {
	// 2024-01-01 is a Monday in ISO week 1.
	tests := map[string]struct {
		at       time.Time
		expected models.Shift
	}{
		"OddWeekFirstGroupDay":    {time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), models.ShiftB},
		"OddWeekFirstGroupNight":  {time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC), models.ShiftD},
		"OddWeekSecondGroupDay":   {time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC), models.ShiftA},
		"OddWeekSecondGroupNight": {time.Date(2024, 1, 3, 2, 0, 0, 0, time.UTC), models.ShiftC},
		"EvenWeekFirstGroupDay":   {time.Date(2024, 1, 8, 6, 0, 0, 0, time.UTC), models.ShiftA},
		"EvenWeekFirstGroupNight": {time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC), models.ShiftC},
		"EvenWeekSecondGroupDay":  {time.Date(2024, 1, 14, 17, 59, 59, 0, time.UTC), models.ShiftB},
		"EvenWeekSecondGroupLate": {time.Date(2024, 1, 14, 5, 59, 59, 0, time.UTC), models.ShiftD},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, generator.Classify(tt.at).Shift)
		})
	}
}

func TestShiftFor_Total(t *testing.T) {
	days := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	valid := map[models.Shift]bool{}
	for _, s := range models.AllShifts {
		valid[s] = true
	}

	covered := map[models.Shift]bool{}
	for _, week := range []int{1, 2} {
		for _, day := range days {
			for hour := 0; hour < 24; hour++ {
				shift := generator.ShiftFor(week, day, hour)
				assert.True(t, valid[shift], "week %d %s %02d:00 unmapped", week, day, hour)
				covered[shift] = true

				part := generator.ShiftPartFor(hour)
				assert.Contains(t, []models.ShiftPart{
					models.ShiftPartEarly, models.ShiftPartMids, models.ShiftPartLate,
				}, part)

				// day and night crews never overlap
				if generator.DayNightFor(hour) == models.Day {
					assert.Contains(t, []models.Shift{models.ShiftA, models.ShiftB}, shift)
				} else {
					assert.Contains(t, []models.Shift{models.ShiftC, models.ShiftD}, shift)
				}
			}
		}
	}
	assert.Len(t, covered, 4)
}

func TestShiftFor_ParitySwapsCrews(t *testing.T) {
	for _, day := range []time.Weekday{time.Monday, time.Wednesday, time.Sunday} {
		for _, hour := range []int{3, 12} {
			odd := generator.ShiftFor(11, day, hour)
			even := generator.ShiftFor(12, day, hour)
			assert.NotEqual(t, odd, even, "%s %02d:00", day, hour)
		}
	}
}

func TestShiftPartFor(t *testing.T) {
	tests := map[string]struct {
		hours    []int
		expected models.ShiftPart
	}{
		"Early": {[]int{6, 7, 8, 9, 18, 19, 20, 21}, models.ShiftPartEarly},
		"Mids":  {[]int{10, 11, 12, 13, 22, 23, 0, 1}, models.ShiftPartMids},
		"Late":  {[]int{14, 15, 16, 17, 2, 3, 4, 5}, models.ShiftPartLate},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			for _, h := range tt.hours {
				assert.Equal(t, tt.expected, generator.ShiftPartFor(h), "hour %d", h)
			}
		})
	}
}

func TestDayNightFor(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		expected := models.Night
		if hour >= 6 && hour < 18 {
			expected = models.Day
		}
		assert.Equal(t, expected, generator.DayNightFor(hour), "hour %d", hour)
	}
}

func TestClassify(t *testing.T) {
	at := time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC)
	c := generator.Classify(at)

	assert.Equal(t, 75, c.DayOfYear)
	assert.Equal(t, 11, c.WeekNo)
	assert.Equal(t, 14, c.Hour)
	assert.Equal(t, "FRI", c.DOW)
	assert.Equal(t, models.Day, c.DayNight)
	assert.Equal(t, models.ShiftPartLate, c.ShiftPart)
	assert.Equal(t, c, generator.Classify(at))
}

func TestBuildCascade(t *testing.T) {
	event := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	d := models.Durations{
		QueueTime:    30,
		DispatchTime: 60,
		PhoneTime:    45,
		AckTime:      10,
		EnrouteTime:  400,
		OnSceneTime:  900,
		ProcessTime:  90,
		TotalTime:    1400,
	}

	ts := generator.BuildCascade(event, d)

	assert.Equal(t, event.Add(30*time.Second), ts.CallQueued)
	assert.Equal(t, event.Add(90*time.Second), ts.CallDispatched)
	assert.Equal(t, event.Add(100*time.Second), ts.CallAcknowledged)
	assert.Equal(t, event.Add(45*time.Second), ts.CallDisconnected)
	assert.Equal(t, event.Add(500*time.Second), ts.UnitEnroute)
	assert.Equal(t, event.Add(1400*time.Second), ts.CallClosed)
}
