package widgetdata

import (
	"fmt"
	"sort"
	"strings"
)

// ApplyTableQuery runs the in-memory narrowing pipeline over a table
// widget's rows: global search, then column filters, then multi-sort, then
// pagination. The input slice is never mutated.
func ApplyTableQuery(rows []map[string]interface{}, q TableQuery) TableResult {
	filtered := make([]map[string]interface{}, 0, len(rows))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, row := range rows {
		if search != "" && !rowMatchesSearch(row, search) {
			continue
		}
		if !rowMatchesFilters(row, q.ColumnFilters) {
			continue
		}
		filtered = append(filtered, row)
	}

	if len(q.Sort) > 0 {
		sortRows(filtered, q.Sort)
	}

	total := len(filtered)

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return TableResult{
		Rows:     filtered[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

func rowMatchesSearch(row map[string]interface{}, search string) bool {
	for _, v := range row {
		if strings.Contains(strings.ToLower(stringify(v)), search) {
			return true
		}
	}
	return false
}

func rowMatchesFilters(row map[string]interface{}, filters map[string]string) bool {
	for column, filter := range filters {
		if filter == "" {
			continue
		}
		v, ok := row[column]
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(stringify(v)), strings.ToLower(filter)) {
			return false
		}
	}
	return true
}

// sortRows applies the sort specs in order: the first spec is the primary
// key, later specs break ties. Numeric values compare numerically, anything
// else falls back to string comparison.
func sortRows(rows []map[string]interface{}, specs []SortSpec) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, spec := range specs {
			cmp := compareValues(rows[i][spec.Column], rows[j][spec.Column])
			if cmp == 0 {
				continue
			}
			if strings.EqualFold(spec.Direction, "desc") {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareValues(a, b interface{}) int {
	na, aok := toFloat(a)
	nb, bok := toFloat(b)
	if aok && bok {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(stringify(a), stringify(b))
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
