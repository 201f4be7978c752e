package dateutil

import "time"

// Layout is the wire format of a calendar date.
const Layout = "2006-01-02"

// Day returns midnight UTC of the UTC calendar day containing t.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Window returns the closed range [Day(now)-days, Day(now)].
func Window(now time.Time, days int) (from, to time.Time) {
	to = Day(now)
	return to.AddDate(0, 0, -days), to
}
