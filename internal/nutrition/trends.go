package nutrition

import "sort"

// TrendWindowDays is how many most recent logged days the trend shows.
const TrendWindowDays = 7

// TrendPoint is one logged day of the trend, labeled for display.
type TrendPoint struct {
	Day      string  `json:"day"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbsG   float64 `json:"carbs_g"`
}

// RecentTrend picks the last TrendWindowDays logged entries, oldest
// first. Days with no entry are simply absent, the trend is never
// padded with zero points. The input is not modified.
func RecentTrend(entries []Entry) []TrendPoint {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	if len(sorted) > TrendWindowDays {
		sorted = sorted[len(sorted)-TrendWindowDays:]
	}

	points := make([]TrendPoint, 0, len(sorted))
	for _, e := range sorted {
		points = append(points, TrendPoint{
			Day:      e.Date.Format("Jan 2"),
			Calories: e.Calories,
			ProteinG: e.ProteinG,
			FatG:     e.FatG,
			CarbsG:   e.CarbsG,
		})
	}
	return points
}
