package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewWidgetID generates a widget id in the same shape the browser client
// produces: timestamp plus a short random suffix. IDs are never reused
// after a widget is deleted.
func NewWidgetID() string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("widget-%d-%s", time.Now().UnixMilli(), suffix)
}
