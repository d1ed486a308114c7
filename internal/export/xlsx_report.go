package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/ankistats/pkg/models"
)

// ReportConfig defines the layout of the spreadsheet report
type ReportConfig struct {
	DailySheet   string // Sheet with one row per day
	SummarySheet string // Sheet with the totals
}

// DefaultReportConfig returns the default report layout
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		DailySheet:   "Daily",
		SummarySheet: "Summary",
	}
}

// WriteReport writes counts as an Excel workbook to path, replacing any existing file
func WriteReport(path string, counts models.DailyCounts, updated time.Time, config ReportConfig) (*Result, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty report path", ErrWriteFailed)
	}

	f, err := buildReport(counts, updated, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to render workbook: %v", ErrWriteFailed, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return &Result{Path: path, Size: int64(buf.Len())}, nil
}

func buildReport(counts models.DailyCounts, updated time.Time, config ReportConfig) (*excelize.File, error) {
	f := excelize.NewFile()

	// The new workbook starts with Sheet1; reuse it for the daily rows
	if err := f.SetSheetName("Sheet1", config.DailySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %v", err)
	}
	if err := writeDailySheet(f, config.DailySheet, counts); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(config.SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet %s: %v", config.SummarySheet, err)
	}
	if err := writeSummarySheet(f, config.SummarySheet, models.Summarize(counts), updated); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func writeDailySheet(f *excelize.File, sheet string, counts models.DailyCounts) error {
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Reviews"}); err != nil {
		return fmt.Errorf("failed to write header: %v", err)
	}
	for i, c := range counts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %v", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &[]interface{}{c.Date, c.Count}); err != nil {
			return fmt.Errorf("failed to write row %d: %v", i+2, err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, s models.Summary, updated time.Time) error {
	rows := [][]interface{}{
		{"Updated", updated.Format(time.RFC3339)},
		{"Total reviews", s.TotalReviews},
		{"Days with reviews", s.TotalDays},
		{"Average per day", s.AveragePerDay},
		{"First date", s.FirstDate},
		{"Last date", s.LastDate},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %v", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %v", i+1, err)
		}
	}
	return nil
}
