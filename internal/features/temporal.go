package features

import "time"

// TimestampLayout is the wire format of Fecha-I / Fecha-O columns in the
// source dataset ("2017-01-01 23:30:00").
const TimestampLayout = "2006-01-02 15:04:05"

// Period-of-day labels derived from the scheduled departure time.
const (
	PeriodMorning   = "morning"
	PeriodAfternoon = "afternoon"
	PeriodNight     = "night"
)

// highSeasonRange is a month/day window, inclusive on both ends,
// evaluated independently of the year.
type highSeasonRange struct {
	fromMonth, fromDay int
	toMonth, toDay     int
}

var highSeasonRanges = []highSeasonRange{
	{12, 15, 12, 31},
	{1, 1, 3, 3},
	{7, 15, 7, 31},
	{9, 11, 9, 30},
}

// ParseTimestamp parses a dataset timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// PeriodOfDay buckets a scheduled time into morning [05:00,12:00),
// afternoon [12:00,19:00) or night [19:00,24:00) ∪ [00:00,05:00).
// Each band owns its lower boundary: 12:00 is afternoon, 19:00 is night.
func PeriodOfDay(t time.Time) string {
	minutes := t.Hour()*60 + t.Minute()

	switch {
	case minutes >= 5*60 && minutes < 12*60:
		return PeriodMorning
	case minutes >= 12*60 && minutes < 19*60:
		return PeriodAfternoon
	default:
		return PeriodNight
	}
}

// IsHighSeason reports whether the date falls in one of the high-traffic
// windows: Dec 15–31, Jan 1–Mar 3, Jul 15–31, Sep 11–30 (all inclusive).
// Returns 1/0 rather than bool because the value feeds a feature column.
func IsHighSeason(t time.Time) int {
	month, day := int(t.Month()), t.Day()
	ord := month*100 + day

	for _, r := range highSeasonRanges {
		if ord >= r.fromMonth*100+r.fromDay && ord <= r.toMonth*100+r.toDay {
			return 1
		}
	}
	return 0
}

// MinutesDiff returns actual minus scheduled in minutes. Negative means the
// flight operated early.
func MinutesDiff(actual, scheduled time.Time) float64 {
	return actual.Sub(scheduled).Minutes()
}
