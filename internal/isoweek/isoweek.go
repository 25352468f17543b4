// Package isoweek provides ISO-8601 calendar week arithmetic: the (year,
// week) bucket used by the scheduling ledger, week boundary enumeration, and
// week navigation that is correct across 52- and 53-week years.
package isoweek

import "time"

// FromDate returns the ISO-8601 (year, week) pair for a date. Dates in
// early January may belong to the previous year's last week, and dates in
// late December to week 1 of the following year.
func FromDate(t time.Time) (year, week int) {
	return t.ISOWeek()
}

// WeeksInYear returns 52 or 53 per the ISO rule. December 28 always falls in
// the last week of its ISO year.
func WeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// DateRange returns the Monday and Sunday bounding the given ISO week, both
// at midnight UTC. January 4 is always in week 1.
func DateRange(year, week int) (monday, sunday time.Time) {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	monday = week1Monday.AddDate(0, 0, (week-1)*7)
	sunday = monday.AddDate(0, 0, 6)
	return monday, sunday
}

// Shift moves a (year, week) pair by delta weeks, rolling over year
// boundaries using each year's actual ISO week count.
func Shift(year, week, delta int) (int, int) {
	week += delta
	for week > WeeksInYear(year) {
		week -= WeeksInYear(year)
		year++
	}
	for week < 1 {
		year--
		week += WeeksInYear(year)
	}
	return year, week
}

// Current returns the (year, week) pair for the current instant.
func Current() (year, week int) {
	return FromDate(time.Now())
}

// IsCurrentWeek reports whether the given date falls in the current ISO week.
func IsCurrentWeek(t time.Time) bool {
	y, w := FromDate(t)
	cy, cw := Current()
	return y == cy && w == cw
}
