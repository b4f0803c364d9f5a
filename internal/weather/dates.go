package weather

import "time"

// NormalizeDate truncates an epoch-millis timestamp to local midnight of the
// same calendar day. Every timestamp within one local calendar day maps to
// the same value, and the function is idempotent. This boundary is what
// "today", "future" and "stale" mean throughout the system.
func NormalizeDate(epochMillis int64) int64 {
	return StartOfDay(time.UnixMilli(epochMillis).In(time.Local)).UnixMilli()
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FriendlyDay labels a day-normalized timestamp relative to now: "Today",
// "Tomorrow", the weekday name inside the next week, and a short date beyond
// that.
func FriendlyDay(dateMillis int64, now time.Time) string {
	d := time.UnixMilli(dateMillis).In(now.Location())
	today := StartOfDay(now)
	switch {
	case sameDay(d, today):
		return "Today"
	case sameDay(d, today.AddDate(0, 0, 1)):
		return "Tomorrow"
	case d.Before(today.AddDate(0, 0, 7)):
		return d.Weekday().String()
	default:
		return d.Format("Mon Jan 02")
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
