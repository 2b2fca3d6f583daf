package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// UTC is the default budget timezone. seats.aero resets partner quotas on UTC days.
const UTC = "UTC"

// DateLayout is the calendar date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var locationCache sync.Map

// GetLocation loads a timezone and caches it by name.
func GetLocation(name string) (*time.Location, error) {
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// NextDayStart returns midnight of the calendar day after t in t's location.
func NextDayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, t.Location())
}

// DayKey returns t's calendar date in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// UntilNextDay returns the time left before the next midnight in loc.
func UntilNextDay(t time.Time, loc *time.Location) time.Duration {
	local := t.In(loc)
	return NextDayStart(local).Sub(local)
}

// EachDay returns every calendar date from start to end inclusive, at midnight UTC.
// It returns nil when start is after end.
func EachDay(start, end time.Time) []time.Time {
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if first.After(last) {
		return nil
	}

	var days []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
