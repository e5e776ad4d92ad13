package autosave

import (
	"encoding/json"

	"go-dashboard/internal/features/preferences"
)

type widgetGeometry struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
	W  int    `json:"w"`
	H  int    `json:"h"`
}

// Fingerprint summarizes the geometry of a layout. Two layouts with the
// same widgets in the same positions produce the same fingerprint, so
// config-only reads and repeated renders do not trigger saves.
func Fingerprint(layout preferences.Layout) string {
	geoms := make([]widgetGeometry, 0, len(layout.Widgets))
	for _, w := range layout.Widgets {
		geoms = append(geoms, widgetGeometry{
			ID: w.ID,
			X:  w.X,
			Y:  w.Y,
			W:  w.W,
			H:  w.H,
		})
	}
	b, err := json.Marshal(geoms)
	if err != nil {
		return ""
	}
	return string(b)
}
