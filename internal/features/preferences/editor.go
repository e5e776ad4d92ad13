package preferences

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Editing helpers used by the widget editor endpoints/clients. Each
// operation touches exactly one key inside the widget's config; array
// operations splice by index the way the browser editor does.

// SetConfigKey writes a single config key.
func (w *Widget) SetConfigKey(key string, value interface{}) {
	if w.Config == nil {
		w.Config = map[string]interface{}{}
	}
	w.Config[key] = value
}

// configSlice reads a config key as a list, tolerating a missing key.
// Lists loaded back from Mongo arrive as primitive.A.
func (w *Widget) configSlice(key string) []interface{} {
	if w.Config == nil {
		return nil
	}
	switch items := w.Config[key].(type) {
	case []interface{}:
		return items
	case primitive.A:
		return items
	}
	return nil
}

// AppendConfigItem appends an entry to a list-valued config key
// (e.g. a table column or a chart data point).
func (w *Widget) AppendConfigItem(key string, item interface{}) {
	w.SetConfigKey(key, append(w.configSlice(key), item))
}

// UpdateConfigItem replaces the entry at index in a list-valued config key.
func (w *Widget) UpdateConfigItem(key string, index int, item interface{}) error {
	items := w.configSlice(key)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("index %d out of range for config key %q", index, key)
	}
	items[index] = item
	w.SetConfigKey(key, items)
	return nil
}

// RemoveConfigItem splices out the entry at index in a list-valued config key.
func (w *Widget) RemoveConfigItem(key string, index int) error {
	items := w.configSlice(key)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("index %d out of range for config key %q", index, key)
	}
	w.SetConfigKey(key, append(items[:index:index], items[index+1:]...))
	return nil
}

// ApplyEdit replaces the widget's title and config wholesale, the way the
// editor's save button does.
func (w *Widget) ApplyEdit(title string, config map[string]interface{}) {
	w.Title = title
	w.Config = config
}
