package preferences

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WidgetType string

const (
	WidgetTypeChart     WidgetType = "chart"
	WidgetTypeCalendar  WidgetType = "calendar"
	WidgetTypeCard      WidgetType = "card"
	WidgetTypeMetric    WidgetType = "metric"
	WidgetTypeTable     WidgetType = "table"
	WidgetTypeDataTable WidgetType = "data-table"
)

// ValidWidgetTypes is the closed set a widget's type must belong to.
var ValidWidgetTypes = map[WidgetType]bool{
	WidgetTypeChart:     true,
	WidgetTypeCalendar:  true,
	WidgetTypeCard:      true,
	WidgetTypeMetric:    true,
	WidgetTypeTable:     true,
	WidgetTypeDataTable: true,
}

type ColumnType string

const (
	ColumnTypeText     ColumnType = "text"
	ColumnTypeNumber   ColumnType = "number"
	ColumnTypeDate     ColumnType = "date"
	ColumnTypeBadge    ColumnType = "badge"
	ColumnTypeCurrency ColumnType = "currency"
	ColumnTypeBoolean  ColumnType = "boolean"
)

var ValidColumnTypes = map[ColumnType]bool{
	ColumnTypeText:     true,
	ColumnTypeNumber:   true,
	ColumnTypeDate:     true,
	ColumnTypeBadge:    true,
	ColumnTypeCurrency: true,
	ColumnTypeBoolean:  true,
}

// DefaultLayoutName is the sentinel the active-layout pointer falls back to
// when the last layout of a document is deleted.
const DefaultLayoutName = "default"

// Widget is a single placed, configured visual element within a layout.
// Config is intentionally loose: its shape depends on Type and the client
// owns most of its keys. The server only backfills missing keys with
// type-appropriate defaults before a save.
type Widget struct {
	ID          string                 `json:"id" bson:"id"`
	Type        WidgetType             `json:"type" bson:"type"`
	X           int                    `json:"x" bson:"x"`
	Y           int                    `json:"y" bson:"y"`
	W           int                    `json:"w" bson:"w"`
	H           int                    `json:"h" bson:"h"`
	MinW        *int                   `json:"minW,omitempty" bson:"minW,omitempty"`
	MinH        *int                   `json:"minH,omitempty" bson:"minH,omitempty"`
	MaxW        *int                   `json:"maxW,omitempty" bson:"maxW,omitempty"`
	MaxH        *int                   `json:"maxH,omitempty" bson:"maxH,omitempty"`
	IsResizable *bool                  `json:"isResizable,omitempty" bson:"isResizable,omitempty"`
	IsDraggable *bool                  `json:"isDraggable,omitempty" bson:"isDraggable,omitempty"`
	Title       string                 `json:"title,omitempty" bson:"title,omitempty"`
	Config      map[string]interface{} `json:"config,omitempty" bson:"config,omitempty"`
}

// Layout is a named arrangement of widgets plus the grid parameters the
// client renders it with. Widget order is visually irrelevant; x/y decide
// placement.
type Layout struct {
	Name             string   `json:"name" bson:"name"`
	IsDefault        bool     `json:"isDefault,omitempty" bson:"isDefault,omitempty"`
	Widgets          []Widget `json:"widgets" bson:"widgets"`
	GridCols         int      `json:"gridCols" bson:"gridCols"`
	GridRowHeight    int      `json:"gridRowHeight" bson:"gridRowHeight"`
	Margin           []int    `json:"margin,omitempty" bson:"margin,omitempty"`
	ContainerPadding []int    `json:"containerPadding,omitempty" bson:"containerPadding,omitempty"`
}

type GlobalSettings struct {
	Theme           string `json:"theme" bson:"theme"`
	AutoSave        bool   `json:"autoSave" bson:"autoSave"`
	RefreshInterval int    `json:"refreshInterval" bson:"refreshInterval"`
	CompactMode     bool   `json:"compactMode" bson:"compactMode"`
}

func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		Theme:           "dark",
		AutoSave:        true,
		RefreshInterval: 300,
		CompactMode:     false,
	}
}

// PreferencesDocument is the full per-user persisted record: every named
// layout, the active-layout pointer, and the display settings shared by all
// layouts. The whole nested structure is read and written as one unit.
type PreferencesDocument struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID           primitive.ObjectID `json:"userId" bson:"userId"`
	Layouts          []Layout           `json:"layouts" bson:"layouts"`
	ActiveLayoutName string             `json:"activeLayoutName" bson:"activeLayoutName"`
	GlobalSettings   GlobalSettings     `json:"globalSettings" bson:"globalSettings"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// ActiveLayout resolves the active-layout pointer. A dangling pointer falls
// back to the first layout; nil when the document holds no layouts at all.
func (d *PreferencesDocument) ActiveLayout() *Layout {
	for i := range d.Layouts {
		if d.Layouts[i].Name == d.ActiveLayoutName {
			return &d.Layouts[i]
		}
	}
	if len(d.Layouts) > 0 {
		return &d.Layouts[0]
	}
	return nil
}

// FindLayout returns the layout with the given name, or nil.
func (d *PreferencesDocument) FindLayout(name string) *Layout {
	for i := range d.Layouts {
		if d.Layouts[i].Name == name {
			return &d.Layouts[i]
		}
	}
	return nil
}

// UpsertLayout replaces the layout matching l.Name in place, or appends l
// when no match exists. The most recently saved layout always becomes the
// active one.
func (d *PreferencesDocument) UpsertLayout(l Layout) {
	replaced := false
	for i := range d.Layouts {
		if d.Layouts[i].Name == l.Name {
			d.Layouts[i] = l
			replaced = true
			break
		}
	}
	if !replaced {
		d.Layouts = append(d.Layouts, l)
	}
	d.ActiveLayoutName = l.Name
}

// RemoveLayout drops the named layout. If it was the active one, the pointer
// moves to the first remaining layout, or to the fallback sentinel when none
// remain. Reports whether a layout was actually removed.
func (d *PreferencesDocument) RemoveLayout(name string) bool {
	kept := d.Layouts[:0]
	removed := false
	for _, l := range d.Layouts {
		if l.Name == name {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	d.Layouts = kept

	if removed && d.ActiveLayoutName == name {
		if len(d.Layouts) > 0 {
			d.ActiveLayoutName = d.Layouts[0].Name
		} else {
			d.ActiveLayoutName = DefaultLayoutName
		}
	}
	return removed
}

// FindWidget returns the widget with the given id, or nil.
func (l *Layout) FindWidget(id string) *Widget {
	for i := range l.Widgets {
		if l.Widgets[i].ID == id {
			return &l.Widgets[i]
		}
	}
	return nil
}
