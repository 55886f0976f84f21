// Package loader reads the three source datasets — deliveries,
// guaranteed-earnings events, and hours/mileage sessions — from .xlsx
// workbooks or .csv exports into typed records. Header positions are mapped
// by name so column order in the spreadsheets does not matter. A date or
// timestamp cell that cannot be parsed aborts the load: the pipeline never
// produces a report over silently dropped rows.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"dashpulse/internal/errors"
)

// readTable returns all rows of a tabular file. Excel workbooks are read
// from their first sheet; CSV files are read whole with a UTF-8 BOM
// stripped if present.
func readTable(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, errors.New(errors.CodeMissingInput,
			fmt.Sprintf("unsupported input format %q (want .xlsx or .csv)", filepath.Ext(path)))
	}
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.MissingInput(filepath.Base(path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.EmptyInput(filepath.Base(path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	slog.Info("read workbook",
		slog.String("file", filepath.Base(path)),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", len(rows)))
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.MissingInput(filepath.Base(path), err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	// Strip UTF-8 BOM written by Excel exports.
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// columnMap maps normalised header names to their index.
type columnMap map[string]int

func mapColumns(header []string) columnMap {
	cols := make(columnMap, len(header))
	for i, name := range header {
		clean := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		clean = strings.NewReplacer(" ", "_", "-", "_").Replace(clean)
		if clean != "" {
			if _, taken := cols[clean]; !taken {
				cols[clean] = i
			}
		}
	}
	return cols
}

// lookup returns the index of the first alias present in the map.
func (c columnMap) lookup(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := c[a]; ok {
			return i, true
		}
	}
	return -1, false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"01-02-2006",
	"1/2/2006",
}

var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	time.RFC3339,
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", value)
}

// parseFloat parses a numeric cell, tolerating thousands separators.
// Blank cells return the fallback.
func parseFloat(value string, fallback float64) float64 {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseInt(value string) int {
	value = strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if value == "" {
		return 0
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return v
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y", "t":
		return true
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
