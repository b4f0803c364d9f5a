package weather

import "context"

// Query identifies what to fetch: a free-text location setting or, when
// cached coordinates are available, an exact lat/lon pair.
type Query struct {
	LocationSetting string
	Latitude        *float64
	Longitude       *float64
	Days            int
}

// Fetcher retrieves the raw multi-day forecast payload for a query. A single
// call performs exactly one request; callers rely on the sync schedule for
// retries.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) ([]byte, error)
}
