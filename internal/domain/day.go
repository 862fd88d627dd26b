package domain

import (
	"sort"
	"time"
)

// Day represents a calendar day with study session count
type Day struct {
	Date     time.Time
	Sessions int
}

// DateString returns date in YYYYMMDD format
func (d Day) DateString() string {
	return d.Date.Format("20060102")
}

// DisplayString returns user-friendly date string relative to now
func (d Day) DisplayString(now time.Time) string {
	date := d.Date

	if sameDate(date, now) {
		return "Today"
	}

	if sameDate(date, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}

	return date.Format("2 Jan 2006")
}

// Previous returns the calendar day before d
func (d Day) Previous() time.Time {
	return d.Date.AddDate(0, 0, -1)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CalendarDate truncates t to its calendar date in loc.
// The result is expressed at UTC midnight so day arithmetic ignores DST.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GroupByDay buckets timestamps into calendar days of loc, newest first
func GroupByDay(times []time.Time, loc *time.Location) []Day {
	counts := make(map[time.Time]int)
	for _, t := range times {
		counts[CalendarDate(t, loc)]++
	}

	days := make([]Day, 0, len(counts))
	for date, n := range counts {
		days = append(days, Day{Date: date, Sessions: n})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}
