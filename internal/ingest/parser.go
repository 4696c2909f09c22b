// Package ingest turns uploaded catalog files into product records.
// CSV and XLSX uploads map into the same row-of-fields representation
// before normalization, so the reconciliation engine never sees the
// source format.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"storefront-backend/internal/models"
)

// RawRow is one data row keyed by lowercased header. Num is the
// 1-based file position including the header row, so the first data
// row is 2.
type RawRow struct {
	Num    int
	Fields map[string]string
}

// Parse dispatches on format.
func Parse(data []byte, format models.ImportFormat) ([]RawRow, error) {
	switch format {
	case models.ImportFormatCSV:
		return ParseCSV(data)
	case models.ImportFormatXLSX:
		return ParseXLSX(data)
	default:
		return nil, fmt.Errorf("unsupported import format: %s", format)
	}
}

// FormatFromFilename guesses the import format from the file
// extension.
func FormatFromFilename(name string) (models.ImportFormat, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return models.ImportFormatCSV, nil
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return models.ImportFormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s (use .csv or .xlsx)", name)
	}
}

// ParseCSV reads comma-separated data. Quoted fields with embedded
// commas and newlines are handled by the reader; short records are
// padded rather than rejected.
func ParseCSV(data []byte) ([]RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	keys := normalizeHeader(header)

	var rows []RawRow
	num := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		num++
		if err != nil {
			// Malformed line, skip it and keep the row counter honest.
			continue
		}
		rows = append(rows, RawRow{Num: num, Fields: zipRow(keys, record)})
	}
	return rows, nil
}

// ParseXLSX reads the first sheet of a workbook, preferring a sheet
// named "Products" when present.
func ParseXLSX(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if strings.EqualFold(s, "Products") {
			sheet = s
			break
		}
	}

	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	keys := normalizeHeader(cells[0])
	var rows []RawRow
	for i, record := range cells[1:] {
		if emptyRecord(record) {
			continue
		}
		rows = append(rows, RawRow{Num: i + 2, Fields: zipRow(keys, record)})
	}
	return rows, nil
}

// normalizeHeader lowercases headers and strips the " *" required
// marker the template decorates them with.
func normalizeHeader(header []string) []string {
	keys := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.ToLower(h))
		h = strings.TrimSuffix(h, " *")
		keys[i] = h
	}
	return keys
}

func zipRow(keys, record []string) map[string]string {
	fields := make(map[string]string, len(keys))
	for i, key := range keys {
		if key == "" {
			continue
		}
		if i < len(record) {
			fields[key] = strings.TrimSpace(record[i])
		} else {
			fields[key] = ""
		}
	}
	return fields
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
