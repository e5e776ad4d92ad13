package widgetdata

// SortSpec is one entry of a multi-column sort, applied in order.
type SortSpec struct {
	Column    string `json:"column"`
	Direction string `json:"direction"` // "asc" or "desc"
}

// TableQuery narrows a table widget's rows: a global search across all
// columns, per-column contains-filters, multi-column sorting and
// pagination.
type TableQuery struct {
	Search        string            `json:"search,omitempty"`
	ColumnFilters map[string]string `json:"columnFilters,omitempty"`
	Sort          []SortSpec        `json:"sort,omitempty"`
	Page          int               `json:"page,omitempty"`
	PageSize      int               `json:"pageSize,omitempty"`
}

// TableResult is one page of filtered, sorted rows plus the total count
// before pagination.
type TableResult struct {
	Rows     []map[string]interface{} `json:"rows"`
	Total    int                      `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"pageSize"`
}

type layoutDataRequest struct {
	UserID     string `json:"userId"`
	LayoutName string `json:"layoutName,omitempty"`
}

type tableQueryRequest struct {
	UserID     string     `json:"userId"`
	LayoutName string     `json:"layoutName,omitempty"`
	WidgetID   string     `json:"widgetId"`
	Query      TableQuery `json:"query"`
}
