package models

// Summary holds the statistics shown after a successful export
type Summary struct {
	TotalReviews  int
	TotalDays     int
	AveragePerDay float64
	FirstDate     string
	LastDate      string
}

// Summarize computes the summary; counts must be in ascending date order
func Summarize(counts DailyCounts) Summary {
	s := Summary{
		TotalReviews: counts.Total(),
		TotalDays:    len(counts),
	}
	if len(counts) == 0 {
		return s
	}
	s.AveragePerDay = float64(s.TotalReviews) / float64(s.TotalDays)
	s.FirstDate = counts[0].Date
	s.LastDate = counts[len(counts)-1].Date
	return s
}
