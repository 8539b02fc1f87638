package api

import "time"

// Collection is the result of paginating a list endpoint. Partial marks
// collections that stopped early on a page the collector could not
// read; items accumulated before that point are kept.
type Collection struct {
	Items   []map[string]any
	Partial bool
	Reason  string
}

// Len returns the number of collected items.
func (c *Collection) Len() int {
	return len(c.Items)
}

// OrdersOptions configures a GetOrders request.
type OrdersOptions struct {
	Status    string    // open, closed, all
	Limit     int       // per-page limit, capped at MaxOrderLimit
	Nested    bool      // include legs for multi-leg orders
	After     time.Time // only orders submitted after this time
	Until     time.Time // only orders submitted until this time
	HardLimit int       // cap on total items across pages, 0 = unbounded
}

// ActivitiesOptions configures a GetActivities request.
type ActivitiesOptions struct {
	Direction     string // asc or desc
	PageSize      int    // per-page size, capped at MaxActivityPageSize
	ActivityTypes string // comma-separated, e.g. "FILL,DIV"
	After         time.Time
	Until         time.Time
	HardLimit     int
}

// HistoryOptions configures a GetPortfolioHistory request.
type HistoryOptions struct {
	Period        string // 1D, 1W, 1M, 3M, 6M, 1A, all
	Timeframe     string // 1Min, 5Min, 15Min, 1H, 1D
	ExtendedHours bool
}

// Endpoint-specific page size maxima.
const (
	MaxOrderLimit       = 500
	MaxActivityPageSize = 100
)
