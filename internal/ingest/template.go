package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"storefront-backend/internal/models"
)

// TemplateCSV renders the product import template as CSV. Required
// columns carry the " *" marker the parser strips on the way back in.
func TemplateCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	columns := models.ProductImportColumns()
	header := make([]string, len(columns))
	example := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Name
		if col.Required {
			header[i] += " *"
		}
		example[i] = col.Example
	}

	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.Write(example); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TemplateXLSX renders the product import template as a styled
// workbook: a Products sheet with the header plus example row, and a
// Guide sheet describing every column.
func TemplateXLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	requiredStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C00000"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	columns := models.ProductImportColumns()
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		name := col.Name
		style := headerStyle
		if col.Required {
			name += " *"
			style = requiredStyle
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return nil, err
		}

		exampleCell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, exampleCell, col.Example); err != nil {
			return nil, err
		}

		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, colName, colName, 18); err != nil {
			return nil, err
		}
	}

	const guide = "Guide"
	if _, err := f.NewSheet(guide); err != nil {
		return nil, err
	}
	for i, title := range []string{"Column", "Required", "Type", "Description"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(guide, cell, title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(guide, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}
	for r, col := range columns {
		required := "no"
		if col.Required {
			required = "yes"
		}
		values := []string{col.Name, required, col.Type, col.Description}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(guide, cell, v); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetColWidth(guide, "A", "A", 16); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(guide, "D", "D", 48); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render template workbook: %w", err)
	}
	return buf.Bytes(), nil
}
