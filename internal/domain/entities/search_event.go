package entities

import (
	"time"
)

// SearchEvent represents a single completed search for analytics.
type SearchEvent struct {
	ID            string       `json:"id"`
	Kind          ProviderKind `json:"kind"`
	Query         string       `json:"query,omitempty"`
	ResultCount   int          `json:"result_count"`
	LatencyMs     int          `json:"latency_ms"`
	CacheHit      bool         `json:"cache_hit"`
	UserLatitude  float64      `json:"user_latitude,omitempty"`
	UserLongitude float64      `json:"user_longitude,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}
