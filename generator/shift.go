package generator

import (
	"strings"
	"time"

	"synth911/models"
)

// Classification is the calendar-derived part of a record. It depends on
// the event time only, so classifying the same instant twice always gives
// the same result.
type Classification struct {
	DayOfYear int
	WeekNo    int
	Hour      int
	DayNight  models.DayNight
	DOW       string
	Shift     models.Shift
	ShiftPart models.ShiftPart
}

// Classify derives the shift fields for an event time.
func Classify(t time.Time) Classification {
	_, week := t.ISOWeek()
	hour := t.Hour()
	return Classification{
		DayOfYear: t.YearDay(),
		WeekNo:    week,
		Hour:      hour,
		DayNight:  DayNightFor(hour),
		DOW:       DOWCode(t.Weekday()),
		Shift:     ShiftFor(week, t.Weekday(), hour),
		ShiftPart: ShiftPartFor(hour),
	}
}

// DayNightFor returns DAY for hours 6 through 17 and NIGHT for every other hour.
func DayNightFor(hour int) models.DayNight {
	if hour >= 6 && hour <= 17 {
		return models.Day
	}
	return models.Night
}

// DOWCode returns the upper-case three letter day code, e.g. "MON".
func DOWCode(day time.Weekday) string {
	return strings.ToUpper(day.String()[:3])
}

// inFirstGroup reports whether day belongs to {MON, TUE, FRI, SAT}.
// The remaining days {WED, THU, SUN} form the second group.
func inFirstGroup(day time.Weekday) bool {
	switch day {
	case time.Monday, time.Tuesday, time.Friday, time.Saturday:
		return true
	default:
		return false
	}
}

// ShiftFor maps (ISO week, weekday, hour) to a shift letter.
//
// On even weeks the first day group works A (day) and C (night) and the
// second group works B and D. Odd weeks swap the groups. Every weekday is
// in exactly one group and every hour is DAY or NIGHT, so the mapping is
// total.
func ShiftFor(isoWeek int, day time.Weekday, hour int) models.Shift {
	onAC := inFirstGroup(day) == (isoWeek%2 == 0)
	if DayNightFor(hour) == models.Day {
		if onAC {
			return models.ShiftA
		}
		return models.ShiftB
	}
	if onAC {
		return models.ShiftC
	}
	return models.ShiftD
}

// ShiftPartFor splits each 12-hour shift into EARLY, MIDS and LATE blocks.
func ShiftPartFor(hour int) models.ShiftPart {
	switch hour {
	case 6, 7, 8, 9, 18, 19, 20, 21:
		return models.ShiftPartEarly
	case 10, 11, 12, 13, 22, 23, 0, 1:
		return models.ShiftPartMids
	default:
		return models.ShiftPartLate
	}
}
