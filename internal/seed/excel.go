package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"github.com/yigit/studentsvc/internal/app/models"
)

// ImportResult reports how many spreadsheet rows were inserted or skipped
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportStudentsFromExcel reads students from the first sheet of an .xlsx
// workbook and inserts them. Row 1 is a header; columns are Name, Score,
// Graduate. Rows without a name or with an unparsable score or graduate
// value are skipped. Insert failures stop the import.
func ImportStudentsFromExcel(ctx context.Context, writer StudentWriter, r io.Reader, lgr zerolog.Logger) (ImportResult, error) {
	var result ImportResult

	f, err := excelize.OpenReader(r)
	if err != nil {
		return result, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			lgr.Warn().Err(err).Msg("Error closing excel file")
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return result, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return result, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		params, err := parseStudentRow(row)
		if err != nil {
			lgr.Warn().Err(err).Int("row", i+1).Msg("Skipping spreadsheet row")
			result.Skipped++
			continue
		}

		if _, err := writer.Insert(ctx, params); err != nil {
			return result, fmt.Errorf("error importing row %d (%s): %w", i+1, params.Name, err)
		}
		result.Imported++
	}

	lgr.Info().Int("imported", result.Imported).Int("skipped", result.Skipped).Str("sheet", sheetName).Msg("Student import finished")
	return result, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseStudentRow converts one spreadsheet row into student params
func parseStudentRow(row []string) (models.StudentParams, error) {
	params := models.StudentParams{Name: cell(row, 0)}
	if params.Name == "" {
		return params, errors.New("missing name")
	}

	if raw := cell(row, 1); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return params, fmt.Errorf("invalid score %q", raw)
		}
		params.Score = &v
	}

	graduated, err := parseGraduate(cell(row, 2))
	if err != nil {
		return params, err
	}
	params.Graduated = graduated

	return params, nil
}

func parseGraduate(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", "0", "false", "no", "n":
		return false, nil
	case "1", "true", "yes", "y":
		return true, nil
	default:
		return false, fmt.Errorf("invalid graduate value %q", raw)
	}
}
