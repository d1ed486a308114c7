package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/example/ankistats/pkg/models"
)

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "anki.xlsx")
	counts := models.DailyCounts{
		{Date: "2024-01-01", Count: 2},
		{Date: "2024-01-02", Count: 1},
	}
	config := DefaultReportConfig()

	res, err := WriteReport(path, counts, updated, config)
	require.NoError(t, err)
	assert.Positive(t, res.Size)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(config.DailySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Reviews"},
		{"2024-01-01", "2"},
		{"2024-01-02", "1"},
	}, rows)

	total, err := f.GetCellValue(config.SummarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", total)

	last, err := f.GetCellValue(config.SummarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", last)
}

func TestWriteReport_EmptyPath(t *testing.T) {
	_, err := WriteReport("", nil, updated, DefaultReportConfig())
	assert.ErrorIs(t, err, ErrWriteFailed)
}
