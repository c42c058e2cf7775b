package engine

import "time"

// DefaultDayStartHour is the local hour at which one logical day ends and
// the next begins. Wall-clock times before it belong to the previous
// calendar date's day.
const DefaultDayStartHour = 4

// dayDate returns the calendar date (local midnight) owning the instant.
func dayDate(now time.Time, startHour int) time.Time {
	if now.Hour() < startHour {
		now = now.AddDate(0, 0, -1)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func dayID(date time.Time) string {
	return date.Format("2006-01-02")
}

func newDay(now time.Time, startHour int) Day {
	date := dayDate(now, startHour)
	return Day{ID: dayID(date), Date: date}
}

// windowContains reports whether the instant falls inside the day's
// boundary window [date+startHour, date+1day+startHour).
func (d Day) windowContains(now time.Time, startHour int) bool {
	start := time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), startHour, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	return !now.Before(start) && now.Before(end)
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func updateRecords(r *Records, d Day) {
	if d.Stats.DayXP > r.HighestDayXP {
		r.HighestDayXP = d.Stats.DayXP
	}
	if d.Stats.DayMinutes > r.MostWorkTimeInDay {
		r.MostWorkTimeInDay = d.Stats.DayMinutes
	}
	if d.Stats.DayPureMinutes > r.MostPureTimeInDay {
		r.MostPureTimeInDay = d.Stats.DayPureMinutes
	}
}
