package domain

import (
	"slices"
	"time"
)

const (
	// OutlookDays is the number of days in the daily outlook.
	OutlookDays = 5

	// RepresentativeHour is the local hour whose sample stands in for a day.
	RepresentativeHour = 15
)

// SelectDailySummaries picks one sample per calendar day for the five days
// after now's day. A sample qualifies when it falls inside
// [tomorrow 00:00, today+6 00:00) and its hour of day is RepresentativeHour.
// The first qualifying sample of each day wins. Days without a qualifying
// sample are skipped, so fewer than five summaries may be returned.
//
// The result is in chronological order and depends only on the arguments.
func SelectDailySummaries(samples []ForecastSample, now time.Time, cal Calendar) []DailySummary {
	today := cal.StartOfDay(now)
	start := cal.AddDays(today, 1)
	end := cal.AddDays(today, OutlookDays+1)

	ordered := slices.Clone(samples)
	slices.SortStableFunc(ordered, func(a, b ForecastSample) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		}
		return 0
	})

	summaries := make([]DailySummary, 0, OutlookDays)
	seen := make(map[string]struct{}, OutlookDays)

	for _, s := range ordered {
		t := s.Time()
		if t.Before(start) || !t.Before(end) {
			continue
		}
		if cal.Hour(t) != RepresentativeHour {
			continue
		}

		day := cal.DateKey(t)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		summaries = append(summaries, DailySummary{Date: day, Sample: s})

		if len(summaries) == OutlookDays {
			break
		}
	}

	return summaries
}

// Current returns the sample describing current conditions: the first one
// the provider returned.
func (f Forecast) Current() (ForecastSample, bool) {
	if len(f.Samples) == 0 {
		return ForecastSample{}, false
	}
	return f.Samples[0], true
}
