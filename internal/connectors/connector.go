package connectors

import (
	"context"
	"time"
)

// QueryRequest describes the rows a widget wants from an external source.
type QueryRequest struct {
	Module  string                 // Table name
	Fields  []string               // Columns to retrieve; empty means all
	Filters map[string]interface{} // Equality filter conditions
	Sort    map[string]int         // Sort order (1 for ASC, -1 for DESC)
	Limit   int64
	Offset  int64
}

// QueryResponse represents query results
type QueryResponse struct {
	Data       []map[string]interface{}
	TotalCount int64
	Timestamp  time.Time
}

// Connector is the surface a widget data source must offer. Today the only
// implementation is the external SQL connector; the interface exists so a
// widget config can name other source kinds later without touching the
// widget data service.
type Connector interface {
	// Connect establishes connection to data source
	Connect(ctx context.Context, config map[string]interface{}) error

	// Disconnect closes connection
	Disconnect(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, req QueryRequest) (*QueryResponse, error)

	// TestConnection tests if connection is valid
	TestConnection(ctx context.Context) error

	// GetType returns the connector type
	GetType() string
}
