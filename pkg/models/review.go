package models

import "time"

// DailyCount is the number of review events logged on one calendar day
type DailyCount struct {
	Date  string `json:"date" db:"review_date"`
	Count int    `json:"count" db:"review_count"`
}

// DailyCounts is a list of daily counts in ascending date order
type DailyCounts []DailyCount

// Map returns the counts keyed by date
func (d DailyCounts) Map() map[string]int {
	m := make(map[string]int, len(d))
	for _, c := range d {
		m[c.Date] = c.Count
	}
	return m
}

// Total returns the sum of all counts
func (d DailyCounts) Total() int {
	total := 0
	for _, c := range d {
		total += c.Count
	}
	return total
}

// ExportDocument is the payload written for the website
type ExportDocument struct {
	Updated      string         `json:"updated"`
	TotalDays    int            `json:"total_days"`
	TotalReviews int            `json:"total_reviews"`
	Data         map[string]int `json:"data"`
}

// NewExportDocument wraps the counts with the derived totals
func NewExportDocument(counts DailyCounts, updated time.Time) ExportDocument {
	return ExportDocument{
		Updated:      updated.Format(time.RFC3339Nano),
		TotalDays:    len(counts),
		TotalReviews: counts.Total(),
		Data:         counts.Map(),
	}
}
