package entities

import (
	"time"
)

// SearchResult is one page of ranked providers returned by a search.
type SearchResult struct {
	Providers     []*CareProvider `json:"providers"`
	NextPageToken string          `json:"next_page_token,omitempty"`
	CapturedAt    time.Time       `json:"captured_at"`
}
