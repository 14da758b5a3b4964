package types

import (
	"time"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
)

const dateLayout = "2006-01-02"

func ParseTime(t string) (time.Time, error) {
	return time.Parse(time.RFC3339, t)
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatDate renders a day as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD day in UTC
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// TimeWindow is an inclusive range of whole UTC days
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeWindow builds a window from two days, dropping any time of day
func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: StartOfDay(start), End: StartOfDay(end)}
}

// Until is the exclusive upper bound used in queries so the whole last day is covered
func (w TimeWindow) Until() time.Time {
	return w.End.AddDate(0, 0, 1)
}

// Contains reports whether t falls on any day of the window
func (w TimeWindow) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && t.Before(w.Until())
}

func (w TimeWindow) String() string {
	return FormatDate(w.Start) + ".." + FormatDate(w.End)
}

// StartOfDay truncates t to midnight UTC
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return d.AddDate(0, 0, -offset)
}

func StartOfMonth(t time.Time) time.Time {
	d := StartOfDay(t)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

func StartOfQuarter(t time.Time) time.Time {
	d := StartOfDay(t)
	month := ((int(d.Month())-1)/3)*3 + 1
	return time.Date(d.Year(), time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func StartOfYear(t time.Time) time.Time {
	d := StartOfDay(t)
	return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// CurrentMonthWindow covers the calendar month containing now
func CurrentMonthWindow(now time.Time) TimeWindow {
	return TimeWindow{Start: StartOfMonth(now), End: EndOfMonth(now)}
}

// KPIWindow is the period-to-date window the aggregator evaluates, ending today
func KPIWindow(period KPIPeriod, now time.Time) (TimeWindow, error) {
	today := StartOfDay(now)

	switch period {
	case KPIPeriodDaily:
		return TimeWindow{Start: today, End: today}, nil
	case KPIPeriodWeekly:
		return TimeWindow{Start: today.AddDate(0, 0, -7), End: today}, nil
	case KPIPeriodMonthly:
		return TimeWindow{Start: StartOfMonth(today), End: today}, nil
	case KPIPeriodQuarterly:
		return TimeWindow{Start: StartOfQuarter(today), End: today}, nil
	case KPIPeriodYearly:
		return TimeWindow{Start: StartOfYear(today), End: today}, nil
	default:
		return TimeWindow{}, period.Validate()
	}
}

// PreviousKPIWindow is the comparison window of the aggregator.
// It is always the 30 days ending the day before the current window starts,
// whatever the period.
func PreviousKPIWindow(current TimeWindow) TimeWindow {
	return TimeWindow{
		Start: current.Start.AddDate(0, 0, -30),
		End:   current.Start.AddDate(0, 0, -1),
	}
}

// PeriodWindow is the full calendar period containing now
// (day, ISO week Monday..Sunday, month, quarter or year).
func PeriodWindow(period KPIPeriod, now time.Time) (TimeWindow, error) {
	today := StartOfDay(now)

	switch period {
	case KPIPeriodDaily:
		return TimeWindow{Start: today, End: today}, nil
	case KPIPeriodWeekly:
		start := StartOfWeek(today)
		return TimeWindow{Start: start, End: start.AddDate(0, 0, 6)}, nil
	case KPIPeriodMonthly:
		start := StartOfMonth(today)
		return TimeWindow{Start: start, End: start.AddDate(0, 1, -1)}, nil
	case KPIPeriodQuarterly:
		start := StartOfQuarter(today)
		return TimeWindow{Start: start, End: start.AddDate(0, 3, -1)}, nil
	case KPIPeriodYearly:
		start := StartOfYear(today)
		return TimeWindow{Start: start, End: start.AddDate(1, 0, -1)}, nil
	default:
		return TimeWindow{}, period.Validate()
	}
}

// PriorPeriodWindow is the full calendar period immediately before the one containing now
func PriorPeriodWindow(period KPIPeriod, now time.Time) (TimeWindow, error) {
	current, err := PeriodWindow(period, now)
	if err != nil {
		return TimeWindow{}, err
	}
	return PeriodWindow(period, current.Start.AddDate(0, 0, -1))
}

// MonthlyBuckets returns n month windows ending with the month containing now, oldest first
func MonthlyBuckets(now time.Time, n int, mode TrendBucketMode) ([]TimeWindow, error) {
	if n <= 0 {
		return nil, ierr.NewErrorf("invalid bucket count: %d", n).
			WithHint("Number of periods must be positive").
			Mark(ierr.ErrValidation)
	}

	first := StartOfMonth(now)
	buckets := make([]TimeWindow, n)
	for i := 0; i < n; i++ {
		var start time.Time
		switch mode {
		case TrendBucketLegacy30d:
			start = StartOfMonth(first.AddDate(0, 0, -30*i))
		default:
			start = first.AddDate(0, -i, 0)
		}
		buckets[n-1-i] = TimeWindow{Start: start, End: EndOfMonth(start)}
	}
	return buckets, nil
}

// NextBucketStart advances a bucket start by step buckets
func NextBucketStart(last time.Time, step int, mode TrendBucketMode) time.Time {
	if mode == TrendBucketLegacy30d {
		return last.AddDate(0, 0, 30*step)
	}
	return StartOfMonth(last).AddDate(0, step, 0)
}
