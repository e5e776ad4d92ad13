package widgetdata

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
)

// evalMetricExpression runs a user-supplied script over the widget's rows.
// The script sees the rows as `rows` and must assign its result to `value`:
//
//	total := 0
//	for r in rows { total += r.salary }
//	value := total / len(rows)
func evalMetricExpression(ctx context.Context, expression string, rows []map[string]interface{}) (interface{}, error) {
	script := tengo.NewScript([]byte(expression))

	generic := make([]interface{}, len(rows))
	for i, row := range rows {
		generic[i] = row
	}
	if err := script.Add("rows", generic); err != nil {
		return nil, fmt.Errorf("failed to bind rows: %w", err)
	}

	compiled, err := script.RunContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run metric expression: %w", err)
	}

	v := compiled.Get("value")
	if v == nil || v.IsUndefined() {
		return nil, fmt.Errorf("metric expression did not assign 'value'")
	}
	return v.Value(), nil
}

// calculateAggregation folds a numeric field across the rows. Unknown
// aggregations fall back to count, matching what the client renders when a
// metric widget has no explicit configuration.
func calculateAggregation(rows []map[string]interface{}, field string, aggregation string) float64 {
	if len(rows) == 0 {
		return 0
	}

	var sum float64
	var count int
	var min, max float64

	for _, row := range rows {
		val, ok := row[field]
		if !ok {
			continue
		}

		numVal, ok := toFloat(val)
		if !ok {
			continue
		}

		count++
		sum += numVal

		if count == 1 || numVal < min {
			min = numVal
		}
		if count == 1 || numVal > max {
			max = numVal
		}
	}

	switch aggregation {
	case "sum":
		return sum
	case "avg":
		if count > 0 {
			return sum / float64(count)
		}
		return 0
	case "min":
		return min
	case "max":
		return max
	default:
		return float64(count)
	}
}

// groupRows counts rows per distinct value of field, the shape chart
// renderers consume as name/value pairs.
func groupRows(rows []map[string]interface{}, field string) []map[string]interface{} {
	groups := make(map[string]int)
	var order []string

	for _, row := range rows {
		val, ok := row[field]
		if !ok {
			val = "Unknown"
		}

		key := fmt.Sprintf("%v", val)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key]++
	}

	result := make([]map[string]interface{}, 0, len(order))
	for _, key := range order {
		result = append(result, map[string]interface{}{
			"name":  key,
			"value": groups[key],
		})
	}
	return result
}
