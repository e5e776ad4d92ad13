package preferences

import (
	"go-dashboard/pkg/sample"
)

// Canned palette shared by the starter widgets.
var defaultChartColors = []interface{}{"#3b82f6", "#8b5cf6", "#10b981", "#f59e0b", "#ef4444"}

const defaultTableSampleRows = 50

// DefaultLayout is the bootstrap layout a brand-new user starts with: a
// welcome card and a quick-stats metric on a 12-column grid.
func DefaultLayout() Layout {
	return Layout{
		Name:             "Default",
		IsDefault:        true,
		GridCols:         12,
		GridRowHeight:    150,
		Margin:           []int{10, 10},
		ContainerPadding: []int{10, 10},
		Widgets: []Widget{
			{
				ID:    "welcome-widget",
				Type:  WidgetTypeCard,
				X:     0,
				Y:     0,
				W:     6,
				H:     2,
				Title: "Welcome",
				Config: map[string]interface{}{
					"message":         "Welcome to your dashboard!",
					"color":           "from-blue-500 to-blue-700",
					"backgroundColor": "bg-blue-500/20",
				},
			},
			{
				ID:    "stats-widget",
				Type:  WidgetTypeMetric,
				X:     6,
				Y:     0,
				W:     6,
				H:     2,
				Title: "Quick Stats",
				Config: map[string]interface{}{
					"value":           "1,234",
					"label":           "Total Users",
					"change":          "+12%",
					"color":           "from-green-500 to-green-700",
					"backgroundColor": "bg-green-500/20",
				},
			},
		},
	}
}

// ApplyConfigDefaults backfills a widget's config with type-appropriate
// defaults for any missing keys. Older clients save partially-specified
// configs; without the backfill a chart widget with no data renders blank
// forever. Existing keys are never overwritten.
func ApplyConfigDefaults(w *Widget) {
	if w.Config == nil {
		w.Config = map[string]interface{}{}
	}

	fill := func(defaults map[string]interface{}) {
		for k, v := range defaults {
			if _, ok := w.Config[k]; !ok {
				w.Config[k] = v
			}
		}
	}

	switch w.Type {
	case WidgetTypeChart:
		fill(map[string]interface{}{
			"chartType": "bar",
			"data":      sample.ChartSeries(),
			"xAxis":     "name",
			"yAxis":     "value",
			"colors":    defaultChartColors,
		})
	case WidgetTypeMetric:
		fill(map[string]interface{}{
			"value":       "1,234",
			"label":       "Total Users",
			"change":      "+12%",
			"changeColor": "#10b981",
			"showTrend":   true,
			"prefix":      "",
			"suffix":      "",
		})
	case WidgetTypeCard:
		fill(map[string]interface{}{
			"message":   "Welcome to your dashboard!",
			"showIcon":  true,
			"iconType":  "info",
			"textAlign": "center",
		})
	case WidgetTypeCalendar:
		fill(map[string]interface{}{
			"showWeekends":   true,
			"highlightToday": true,
			"events":         []interface{}{},
			"theme":          "default",
		})
	case WidgetTypeTable:
		fill(map[string]interface{}{
			"columns": []interface{}{
				map[string]interface{}{"id": "name", "label": "Name", "type": "text", "color": "#ffffff"},
				map[string]interface{}{"id": "email", "label": "Email", "type": "text", "color": "#ffffff"},
				map[string]interface{}{"id": "role", "label": "Role", "type": "text", "color": "#ffffff"},
			},
			"data": []interface{}{
				map[string]interface{}{"name": "John Doe", "email": "john@example.com", "role": "Admin"},
				map[string]interface{}{"name": "Jane Smith", "email": "jane@example.com", "role": "User"},
				map[string]interface{}{"name": "Bob Johnson", "email": "bob@example.com", "role": "Editor"},
			},
			"showHeaders":   true,
			"alternateRows": true,
			"borderColor":   "#374151",
		})
	case WidgetTypeDataTable:
		fill(map[string]interface{}{
			"columns": DefaultDataTableColumns(),
			"data":    sample.Users(1, defaultTableSampleRows),
			"pagination": map[string]interface{}{
				"enabled":          true,
				"pageSize":         25,
				"currentPage":      1,
				"showSizeSelector": true,
				"pageSizeOptions":  []interface{}{10, 25, 50, 100},
			},
			"filters": map[string]interface{}{
				"enabled":       true,
				"globalSearch":  true,
				"columnFilters": true,
				"dateRange":     true,
			},
			"sorting": map[string]interface{}{
				"enabled":     true,
				"multiSort":   true,
				"defaultSort": map[string]interface{}{"column": "created", "direction": "desc"},
			},
			"exportOptions": []interface{}{"csv", "xlsx"},
			"selectable":    true,
			"expandable":    false,
		})
	}
}

// DefaultDataTableColumns is the column set of the demo people dataset.
func DefaultDataTableColumns() []interface{} {
	col := func(id, label, typ string, width int) map[string]interface{} {
		return map[string]interface{}{
			"id": id, "label": label, "type": typ,
			"sortable": true, "filterable": true, "width": width,
		}
	}
	return []interface{}{
		col("id", "ID", "number", 60),
		col("name", "Name", "text", 150),
		col("email", "Email", "text", 200),
		col("role", "Role", "badge", 100),
		col("status", "Status", "badge", 90),
		col("department", "Department", "text", 120),
		col("company", "Company", "text", 120),
		col("country", "Country", "text", 100),
		col("salary", "Salary", "currency", 100),
		col("experience", "Experience", "number", 100),
		col("rating", "Rating", "number", 80),
		col("created", "Created", "date", 100),
	}
}
