package models

import "time"

// MinEventDate is the sentinel instant used when a record has no date.
// Undated records rank as oldest in descending-by-date listings.
var MinEventDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// StripZone reduces a timestamp to a timezone-naive instant: the wall-clock
// reading is kept and the offset is dropped. Every timestamp that is stored
// or compared goes through this so sorts stay consistent regardless of the
// zone the input carried.
func StripZone(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// FormatDate renders a date the way the dashboards display it.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "Date not set"
	}
	return StripZone(*t).Format("02-01-2006")
}
