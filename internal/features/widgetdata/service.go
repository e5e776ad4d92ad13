package widgetdata

import (
	"context"
	"fmt"

	"go-dashboard/internal/config"
	"go-dashboard/internal/connectors"
	"go-dashboard/internal/features/preferences"
	"go-dashboard/pkg/sample"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const sampleSeed = 1

type WidgetDataService interface {
	// GetLayoutData resolves data for every widget of the named layout (or
	// the active layout when layoutName is empty), keyed by widget id. A
	// widget whose data cannot be resolved contributes an error entry
	// instead of failing the whole layout.
	GetLayoutData(ctx context.Context, userID string, layoutName string) (map[string]interface{}, error)
	// QueryTable runs a search/filter/sort/paginate query against one table
	// widget's rows.
	QueryTable(ctx context.Context, userID, layoutName, widgetID string, q TableQuery) (*TableResult, error)
	// ExportTable renders every row matching the query as csv or xlsx.
	ExportTable(ctx context.Context, userID, layoutName, widgetID, format string, q TableQuery) ([]byte, string, string, error)
}

type WidgetDataServiceImpl struct {
	PreferencesService preferences.PreferencesService
	Config             *config.Config
	Logger             *zap.Logger
}

func NewWidgetDataService(preferencesService preferences.PreferencesService, cfg *config.Config, logger *zap.Logger) WidgetDataService {
	return &WidgetDataServiceImpl{
		PreferencesService: preferencesService,
		Config:             cfg,
		Logger:             logger,
	}
}

func (s *WidgetDataServiceImpl) GetLayoutData(ctx context.Context, userID string, layoutName string) (map[string]interface{}, error) {
	layout, err := s.resolveLayout(ctx, userID, layoutName)
	if err != nil {
		return nil, err
	}

	widgetData := make(map[string]interface{}, len(layout.Widgets))
	for i := range layout.Widgets {
		w := &layout.Widgets[i]
		data, err := s.getWidgetData(ctx, w)
		if err != nil {
			s.Logger.Warn("failed to resolve widget data",
				zap.String("widget", w.ID),
				zap.String("type", string(w.Type)),
				zap.Error(err))
			widgetData[w.ID] = map[string]interface{}{"error": err.Error()}
			continue
		}
		widgetData[w.ID] = data
	}
	return widgetData, nil
}

func (s *WidgetDataServiceImpl) QueryTable(ctx context.Context, userID, layoutName, widgetID string, q TableQuery) (*TableResult, error) {
	layout, err := s.resolveLayout(ctx, userID, layoutName)
	if err != nil {
		return nil, err
	}

	w := layout.FindWidget(widgetID)
	if w == nil {
		return nil, fmt.Errorf("widget %q not found in layout %q", widgetID, layout.Name)
	}
	if w.Type != preferences.WidgetTypeTable && w.Type != preferences.WidgetTypeDataTable {
		return nil, fmt.Errorf("widget %q is not a table widget", widgetID)
	}

	rows, err := s.resolveRows(ctx, w)
	if err != nil {
		return nil, err
	}

	applyQueryDefaults(&q, w)
	result := ApplyTableQuery(rows, q)
	return &result, nil
}

func (s *WidgetDataServiceImpl) resolveLayout(ctx context.Context, userID, layoutName string) (*preferences.Layout, error) {
	doc, err := s.PreferencesService.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, preferences.ErrNotFound
	}

	if layoutName != "" {
		if l := doc.FindLayout(layoutName); l != nil {
			return l, nil
		}
		return nil, fmt.Errorf("layout %q not found", layoutName)
	}

	l := doc.ActiveLayout()
	if l == nil {
		return nil, fmt.Errorf("document has no layouts")
	}
	return l, nil
}

func (s *WidgetDataServiceImpl) getWidgetData(ctx context.Context, w *preferences.Widget) (interface{}, error) {
	switch w.Type {
	case preferences.WidgetTypeMetric:
		return s.getMetricData(ctx, w)
	case preferences.WidgetTypeChart:
		return s.getChartData(ctx, w)
	case preferences.WidgetTypeTable, preferences.WidgetTypeDataTable:
		rows, err := s.resolveRows(ctx, w)
		if err != nil {
			return nil, err
		}
		var q TableQuery
		applyQueryDefaults(&q, w)
		result := ApplyTableQuery(rows, q)
		return map[string]interface{}{
			"rows":  result.Rows,
			"total": result.Total,
		}, nil
	case preferences.WidgetTypeCard, preferences.WidgetTypeCalendar:
		// Presentation-only widgets: the config is the data.
		return w.Config, nil
	default:
		return nil, fmt.Errorf("unsupported widget type: %s", w.Type)
	}
}

func (s *WidgetDataServiceImpl) getMetricData(ctx context.Context, w *preferences.Widget) (interface{}, error) {
	if expression, ok := w.Config["expression"].(string); ok && expression != "" {
		rows, err := s.resolveRows(ctx, w)
		if err != nil {
			return nil, err
		}
		value, err := evalMetricExpression(ctx, expression, rows)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"value":       value,
			"aggregation": "expression",
		}, nil
	}

	aggregation := "count"
	if agg, ok := w.Config["aggregation"].(string); ok && agg != "" {
		aggregation = agg
	}

	rows, err := s.resolveRows(ctx, w)
	if err != nil {
		return nil, err
	}

	if aggregation == "count" {
		return map[string]interface{}{
			"value":       len(rows),
			"aggregation": aggregation,
		}, nil
	}

	field, ok := w.Config["field"].(string)
	if !ok || field == "" {
		return map[string]interface{}{
			"value":       len(rows),
			"aggregation": "count",
		}, nil
	}

	return map[string]interface{}{
		"value":       calculateAggregation(rows, field, aggregation),
		"aggregation": aggregation,
	}, nil
}

func (s *WidgetDataServiceImpl) getChartData(ctx context.Context, w *preferences.Widget) (interface{}, error) {
	chartType, _ := w.Config["chartType"].(string)
	if chartType == "" {
		chartType = "bar"
	}

	// A stored series wins over computed grouping.
	if data, ok := asSlice(w.Config["data"]); ok && len(data) > 0 {
		return map[string]interface{}{
			"type": chartType,
			"data": data,
		}, nil
	}

	rows, err := s.resolveRows(ctx, w)
	if err != nil {
		return nil, err
	}

	groupBy, _ := w.Config["groupBy"].(string)
	if groupBy == "" {
		groupBy = "status"
	}

	return map[string]interface{}{
		"type": chartType,
		"data": groupRows(rows, groupBy),
	}, nil
}

// resolveRows finds the rows behind a widget: an external SQL source when
// the config names one, stored rows next, and the built-in sample dataset
// as the fallback.
func (s *WidgetDataServiceImpl) resolveRows(ctx context.Context, w *preferences.Widget) ([]map[string]interface{}, error) {
	if source, ok := asMap(w.Config["source"]); ok {
		return s.queryExternalSource(ctx, source)
	}

	if data, ok := asSlice(w.Config["data"]); ok {
		rows := make([]map[string]interface{}, 0, len(data))
		for _, item := range data {
			if row, ok := asMap(item); ok {
				rows = append(rows, row)
			}
		}
		return rows, nil
	}

	if data, ok := w.Config["data"].([]map[string]interface{}); ok {
		return data, nil
	}

	return sample.Users(sampleSeed, s.Config.SampleRows), nil
}

func (s *WidgetDataServiceImpl) queryExternalSource(ctx context.Context, source map[string]interface{}) ([]map[string]interface{}, error) {
	driver, _ := source["driver"].(string)
	table, _ := source["table"].(string)
	if driver == "" || table == "" {
		return nil, fmt.Errorf("external source requires driver and table")
	}

	connector := connectors.NewExternalDBConnector(driver)
	if err := connector.Connect(ctx, source); err != nil {
		return nil, err
	}
	defer connector.Disconnect(ctx)

	limit := int64(1000)
	if l, ok := toFloat(source["limit"]); ok && l > 0 {
		limit = int64(l)
	}

	resp, err := connector.Query(ctx, connectors.QueryRequest{
		Module: table,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// applyQueryDefaults fills query gaps from the widget's own sorting and
// pagination config, so an unqualified query behaves like the client's
// first render.
func applyQueryDefaults(q *TableQuery, w *preferences.Widget) {
	if q.PageSize <= 0 {
		if pagination, ok := asMap(w.Config["pagination"]); ok {
			if size, ok := toFloat(pagination["pageSize"]); ok && size > 0 {
				q.PageSize = int(size)
			}
		}
	}

	if len(q.Sort) == 0 {
		if sorting, ok := asMap(w.Config["sorting"]); ok {
			if def, ok := asMap(sorting["defaultSort"]); ok {
				column, _ := def["column"].(string)
				direction, _ := def["direction"].(string)
				if column != "" {
					q.Sort = []SortSpec{{Column: column, Direction: direction}}
				}
			}
		}
	}
}

// asSlice reads a config value as a list. Configs parsed from a request
// body hold []interface{}; the same config loaded back from Mongo holds
// primitive.A, and both must resolve.
func asSlice(v interface{}) ([]interface{}, bool) {
	switch s := v.(type) {
	case []interface{}:
		return s, true
	case primitive.A:
		return s, true
	}
	return nil, false
}

// asMap reads a config value as an object, accepting both the JSON and
// the BSON decoded form.
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case primitive.M:
		return m, true
	}
	return nil, false
}
