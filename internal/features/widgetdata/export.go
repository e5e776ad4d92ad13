package widgetdata

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// exportColumns decides the column order of an export: the widget's
// configured column ids when present, else the first row's keys sorted for
// a stable header.
func exportColumns(configColumns []interface{}, rows []map[string]interface{}) []string {
	var columns []string
	for _, raw := range configColumns {
		if col, ok := asMap(raw); ok {
			if id, ok := col["id"].(string); ok {
				columns = append(columns, id)
			}
		}
	}
	if len(columns) > 0 || len(rows) == 0 {
		return columns
	}
	for key := range rows[0] {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}

// ExportCSV renders rows as CSV with a header line.
func ExportCSV(columns []string, rows []map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, err
	}
	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = stringify(row[col])
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX renders rows as a single-sheet workbook.
func ExportXLSX(columns []string, rows []map[string]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		for c, col := range columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, row[col]); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportTable runs the table query without pagination and renders every
// matching row in the requested format. Returns the file bytes, the
// suggested filename and the content type.
func (s *WidgetDataServiceImpl) ExportTable(ctx context.Context, userID, layoutName, widgetID, format string, q TableQuery) ([]byte, string, string, error) {
	layout, err := s.resolveLayout(ctx, userID, layoutName)
	if err != nil {
		return nil, "", "", err
	}

	w := layout.FindWidget(widgetID)
	if w == nil {
		return nil, "", "", fmt.Errorf("widget %q not found in layout %q", widgetID, layout.Name)
	}

	rows, err := s.resolveRows(ctx, w)
	if err != nil {
		return nil, "", "", err
	}

	applyQueryDefaults(&q, w)
	// Export covers every matching row, not one page.
	q.Page = 1
	q.PageSize = len(rows)
	if q.PageSize == 0 {
		q.PageSize = 1
	}
	result := ApplyTableQuery(rows, q)

	configColumns, _ := asSlice(w.Config["columns"])
	columns := exportColumns(configColumns, result.Rows)

	switch format {
	case "csv":
		data, err := ExportCSV(columns, result.Rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, widgetID + ".csv", "text/csv", nil
	case "xlsx":
		data, err := ExportXLSX(columns, result.Rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, widgetID + ".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	default:
		return nil, "", "", fmt.Errorf("unsupported export format %q", format)
	}
}
