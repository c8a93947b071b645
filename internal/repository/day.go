package repository

import "time"

const dayLayout = "2006-01-02"

// Day returns the UTC calendar day (YYYY-MM-DD) of ts.
func Day(ts time.Time) string {
	return ts.UTC().Format(dayLayout)
}

// StartOfDay returns midnight UTC of the day containing ts.
func StartOfDay(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
