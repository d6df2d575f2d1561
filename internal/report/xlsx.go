package report

import (
	"fmt"

	"aaaquest/internal/domain"

	"github.com/xuri/excelize/v2"
)

const historySheet = "History"

var historyHeader = []string{"Level", "Code", "Score", "Total", "Percent", "Passed", "Date"}

// HistoryWorkbook exports the score history as an xlsx file
func HistoryWorkbook(history []domain.ScoreEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return nil, err
	}

	for i, title := range historyHeader {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(historySheet, cell, title); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(historySheet, 1, 1, bold); err != nil {
		return nil, err
	}

	for i, entry := range history {
		row := i + 2
		code := ""
		if level, ok := domain.LevelByID(entry.LevelID); ok {
			code = level.Code
		}
		percent := 0.0
		if entry.Total > 0 {
			percent = float64(entry.Score) / float64(entry.Total)
		}

		values := []any{
			entry.LevelID,
			code,
			entry.Score,
			entry.Total,
			percent,
			domain.Passed(entry.Score, entry.Total),
			entry.Timestamp.UTC().Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(historySheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if len(history) > 0 {
		pct, err := f.NewStyle(&excelize.Style{NumFmt: 9})
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(historySheet, "E2", fmt.Sprintf("E%d", len(history)+1), pct); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
