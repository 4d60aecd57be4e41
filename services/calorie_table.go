package services

import (
	"math"
	"strings"
)

// Calories-per-minute policy table used whenever a caller logs a manual
// activity without supplying a calorie count. The manual endpoint and
// the preview endpoint share this exact table.
type burnRate struct {
	Low      float64
	Moderate float64
	High     float64
}

var burnRates = map[string]burnRate{
	"running":  {Low: 8, Moderate: 11, High: 14},
	"cycling":  {Low: 5, Moderate: 8, High: 12},
	"swimming": {Low: 6, Moderate: 9, High: 12},
	"walking":  {Low: 3, Moderate: 4, High: 5},
	"strength": {Low: 4, Moderate: 6, High: 8},
	"yoga":     {Low: 2, Moderate: 3, High: 4},
	"hiit":     {Low: 8, Moderate: 10, High: 12},
}

// Unmatched activity types fall back to a generic rate.
var defaultBurnRate = burnRate{Low: 3, Moderate: 4, High: 5}

const (
	IntensityLow      = "low"
	IntensityModerate = "moderate"
	IntensityHigh     = "high"
)

// EstimateActivityCalories returns round(duration × rate) for the given
// activity type (case-insensitive) and intensity.
func EstimateActivityCalories(activityType, intensity string, durationMinutes int) (float64, error) {
	rate, ok := burnRates[strings.ToLower(strings.TrimSpace(activityType))]
	if !ok {
		rate = defaultBurnRate
	}
	var perMinute float64
	switch intensity {
	case IntensityLow:
		perMinute = rate.Low
	case IntensityModerate:
		perMinute = rate.Moderate
	case IntensityHigh:
		perMinute = rate.High
	default:
		return 0, invalidf("intensity", "must be low, moderate or high, got %q", intensity)
	}
	return math.Round(float64(durationMinutes) * perMinute), nil
}
