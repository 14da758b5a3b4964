package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestKPIWindow(t *testing.T) {
	now := time.Date(2025, time.May, 14, 15, 30, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		period KPIPeriod
		start  time.Time
	}{
		{KPIPeriodDaily, day(2025, time.May, 14)},
		{KPIPeriodWeekly, day(2025, time.May, 7)},
		{KPIPeriodMonthly, day(2025, time.May, 1)},
		{KPIPeriodQuarterly, day(2025, time.April, 1)},
		{KPIPeriodYearly, day(2025, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			w, err := KPIWindow(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, day(2025, time.May, 14), w.End)
		})
	}

	_, err := KPIWindow(KPIPeriod("hourly"), now)
	assert.Error(t, err)
}

func TestPreviousKPIWindowIsAlwaysThirtyDays(t *testing.T) {
	current := TimeWindow{Start: day(2025, time.January, 1), End: day(2025, time.May, 14)}
	prev := PreviousKPIWindow(current)

	assert.Equal(t, day(2024, time.December, 2), prev.Start)
	assert.Equal(t, day(2024, time.December, 31), prev.End)
}

func TestPeriodWindow(t *testing.T) {
	now := day(2025, time.May, 14)

	tests := []struct {
		period     KPIPeriod
		start, end time.Time
	}{
		{KPIPeriodDaily, day(2025, time.May, 14), day(2025, time.May, 14)},
		{KPIPeriodWeekly, day(2025, time.May, 12), day(2025, time.May, 18)},
		{KPIPeriodMonthly, day(2025, time.May, 1), day(2025, time.May, 31)},
		{KPIPeriodQuarterly, day(2025, time.April, 1), day(2025, time.June, 30)},
		{KPIPeriodYearly, day(2025, time.January, 1), day(2025, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			w, err := PeriodWindow(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
		})
	}
}

func TestPeriodWindowWeekOnSunday(t *testing.T) {
	w, err := PeriodWindow(KPIPeriodWeekly, day(2025, time.May, 18))
	require.NoError(t, err)
	assert.Equal(t, day(2025, time.May, 12), w.Start)
	assert.Equal(t, day(2025, time.May, 18), w.End)
}

func TestPriorPeriodWindow(t *testing.T) {
	now := day(2025, time.January, 15)

	tests := []struct {
		period     KPIPeriod
		start, end time.Time
	}{
		{KPIPeriodDaily, day(2025, time.January, 14), day(2025, time.January, 14)},
		{KPIPeriodWeekly, day(2025, time.January, 6), day(2025, time.January, 12)},
		{KPIPeriodMonthly, day(2024, time.December, 1), day(2024, time.December, 31)},
		{KPIPeriodQuarterly, day(2024, time.October, 1), day(2024, time.December, 31)},
		{KPIPeriodYearly, day(2024, time.January, 1), day(2024, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			w, err := PriorPeriodWindow(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.start, w.Start)
			assert.Equal(t, tt.end, w.End)
		})
	}
}

func TestTimeWindowContainsWholeLastDay(t *testing.T) {
	w := NewTimeWindow(day(2025, time.May, 1), day(2025, time.May, 14))

	assert.True(t, w.Contains(time.Date(2025, time.May, 14, 23, 59, 0, 0, time.UTC)))
	assert.True(t, w.Contains(day(2025, time.May, 1)))
	assert.False(t, w.Contains(day(2025, time.May, 15)))
	assert.False(t, w.Contains(time.Date(2025, time.April, 30, 23, 59, 0, 0, time.UTC)))
}

func TestMonthlyBucketsCalendar(t *testing.T) {
	buckets, err := MonthlyBuckets(day(2025, time.March, 31), 4, TrendBucketCalendar)
	require.NoError(t, err)
	require.Len(t, buckets, 4)

	assert.Equal(t, day(2024, time.December, 1), buckets[0].Start)
	assert.Equal(t, day(2024, time.December, 31), buckets[0].End)
	assert.Equal(t, day(2025, time.February, 1), buckets[2].Start)
	assert.Equal(t, day(2025, time.February, 28), buckets[2].End)
	assert.Equal(t, day(2025, time.March, 1), buckets[3].Start)
	assert.Equal(t, day(2025, time.March, 31), buckets[3].End)
}

func TestMonthlyBucketsLegacySkipsFebruary(t *testing.T) {
	buckets, err := MonthlyBuckets(day(2025, time.March, 10), 3, TrendBucketLegacy30d)
	require.NoError(t, err)

	// March 1 - 30 days lands on January 30, so February is never visited
	assert.Equal(t, day(2024, time.December, 1), buckets[0].Start)
	assert.Equal(t, day(2025, time.January, 1), buckets[1].Start)
	assert.Equal(t, day(2025, time.March, 1), buckets[2].Start)
}

func TestMonthlyBucketsRejectsZero(t *testing.T) {
	_, err := MonthlyBuckets(day(2025, time.March, 10), 0, TrendBucketCalendar)
	assert.Error(t, err)
}

func TestNextBucketStart(t *testing.T) {
	last := day(2025, time.January, 1)
	assert.Equal(t, day(2025, time.March, 1), NextBucketStart(last, 2, TrendBucketCalendar))
	assert.Equal(t, day(2025, time.March, 2), NextBucketStart(last, 2, TrendBucketLegacy30d))
}
