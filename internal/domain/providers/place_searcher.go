package providers

import (
	"context"

	"github.com/bebektakip/carefinder/internal/domain/entities"
)

// PlaceSearcher defines the interface for the external places provider.
type PlaceSearcher interface {
	// SearchNearby finds places of the given kind within a radius around a point
	SearchNearby(ctx context.Context, req NearbySearchRequest) (*PlaceSearchResponse, error)

	// SearchText finds places matching a free-text query, optionally biased toward a location
	SearchText(ctx context.Context, req TextSearchRequest) (*PlaceSearchResponse, error)
}

// NearbySearchRequest describes a category + geo-circle search.
type NearbySearchRequest struct {
	Kind         entities.ProviderKind
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	PageToken    string
}

// TextSearchRequest describes a free-text search with an optional geo-bias.
// The bias influences ranking without excluding distant results.
type TextSearchRequest struct {
	Query            string
	Kind             entities.ProviderKind
	Bias             *entities.Location
	BiasRadiusMeters float64
	PageToken        string
}

// PlaceSearchResponse is one page of raw place records plus an optional
// continuation token.
type PlaceSearchResponse struct {
	Records       []PlaceRecord
	NextPageToken string
}

// PlaceRecord is a raw result item as returned by the places provider.
// Coordinates are pointers because upstream records may lack them; records
// without coordinates never become providers.
type PlaceRecord struct {
	PlaceID             string
	DisplayName         string
	FormattedAddress    string
	PhoneNumber         string
	Latitude            *float64
	Longitude           *float64
	Rating              *float64
	ReviewCount         *int
	WeekdayDescriptions []string
	Types               []string
}
