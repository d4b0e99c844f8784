package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bebektakip/carefinder/internal/domain/entities"
	"github.com/bebektakip/carefinder/internal/domain/providers"
	apperrors "github.com/bebektakip/carefinder/pkg/errors"
)

const (
	defaultBaseURL     = "https://places.googleapis.com/v1"
	defaultHTTPTimeout = 8 * time.Second

	// maxPageSize is the provider's page cap; larger values are rejected upstream.
	maxPageSize = 20

	// defaultBiasRadiusMeters is used for text searches that carry a location
	// but no explicit bias radius.
	defaultBiasRadiusMeters = 50_000
)

// fieldMask limits the response to the fields the normalizer consumes.
const fieldMask = "places.id,places.displayName,places.formattedAddress," +
	"places.nationalPhoneNumber,places.location,places.rating," +
	"places.userRatingCount,places.regularOpeningHours.weekdayDescriptions," +
	"places.types,nextPageToken"

// Client implements providers.PlaceSearcher against the Google Places API
// (New). The credential travels in the X-Goog-Api-Key header per request.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a places client with default transport settings.
func NewClient(apiKey string) *Client {
	return NewClientWithOptions(apiKey, defaultBaseURL, nil)
}

// NewClientWithOptions allows overriding base URL and HTTP client (used for tests).
func NewClientWithOptions(apiKey, baseURL string, httpClient *http.Client) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// SearchNearby finds places of the given kind within a radius around a point.
func (c *Client) SearchNearby(ctx context.Context, req providers.NearbySearchRequest) (*providers.PlaceSearchResponse, error) {
	payload := nearbySearchPayload{
		IncludedTypes:  kindToTypes(req.Kind),
		MaxResultCount: maxPageSize,
		PageToken:      req.PageToken,
		LocationRestriction: &circleArea{
			Circle: circle{
				Center: latLng{Latitude: req.Latitude, Longitude: req.Longitude},
				Radius: req.RadiusMeters,
			},
		},
	}
	return c.doSearch(ctx, "/places:searchNearby", payload)
}

// SearchText finds places matching a free-text query. A location, when
// present, is passed as a bias rather than a restriction, so distant results
// stay eligible.
func (c *Client) SearchText(ctx context.Context, req providers.TextSearchRequest) (*providers.PlaceSearchResponse, error) {
	payload := textSearchPayload{
		TextQuery: req.Query,
		PageSize:  maxPageSize,
		PageToken: req.PageToken,
	}
	if req.Bias != nil {
		radius := req.BiasRadiusMeters
		if radius <= 0 {
			radius = defaultBiasRadiusMeters
		}
		payload.LocationBias = &circleArea{
			Circle: circle{
				Center: latLng{Latitude: req.Bias.Latitude, Longitude: req.Bias.Longitude},
				Radius: radius,
			},
		}
	}
	return c.doSearch(ctx, "/places:searchText", payload)
}

func (c *Client) doSearch(ctx context.Context, path string, payload interface{}) (*providers.PlaceSearchResponse, error) {
	if c.apiKey == "" {
		return nil, apperrors.NewMissingCredentialError("places API key is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode search request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("places search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errPayload); decodeErr == nil && errPayload.Error.Message != "" {
			return nil, apperrors.NewProviderMessageError(errPayload.Error.Message)
		}
		return nil, apperrors.NewProviderStatusError(resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, apperrors.NewProviderMessageError(fmt.Sprintf("failed to decode search response: %v", err))
	}

	records := make([]providers.PlaceRecord, 0, len(searchResp.Places))
	for _, place := range searchResp.Places {
		records = append(records, place.toRecord())
	}

	return &providers.PlaceSearchResponse{
		Records:       records,
		NextPageToken: searchResp.NextPageToken,
	}, nil
}

func kindToTypes(kind entities.ProviderKind) []string {
	if kind == entities.ProviderKindHospital {
		return []string{"hospital"}
	}
	return []string{"doctor"}
}

// Request payloads.

type nearbySearchPayload struct {
	IncludedTypes       []string    `json:"includedTypes"`
	MaxResultCount      int         `json:"maxResultCount"`
	LocationRestriction *circleArea `json:"locationRestriction,omitempty"`
	PageToken           string      `json:"pageToken,omitempty"`
}

type textSearchPayload struct {
	TextQuery    string      `json:"textQuery"`
	PageSize     int         `json:"pageSize"`
	LocationBias *circleArea `json:"locationBias,omitempty"`
	PageToken    string      `json:"pageToken,omitempty"`
}

type circleArea struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Response payloads.

type searchResponse struct {
	Places        []placePayload `json:"places"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

type placePayload struct {
	ID                  string        `json:"id"`
	DisplayName         *localizedTxt `json:"displayName,omitempty"`
	FormattedAddress    string        `json:"formattedAddress,omitempty"`
	NationalPhoneNumber string        `json:"nationalPhoneNumber,omitempty"`
	Location            *latLng       `json:"location,omitempty"`
	Rating              *float64      `json:"rating,omitempty"`
	UserRatingCount     *int          `json:"userRatingCount,omitempty"`
	RegularOpeningHours *openingHours `json:"regularOpeningHours,omitempty"`
	Types               []string      `json:"types,omitempty"`
}

type localizedTxt struct {
	Text string `json:"text"`
}

type openingHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (p placePayload) toRecord() providers.PlaceRecord {
	record := providers.PlaceRecord{
		PlaceID:          p.ID,
		FormattedAddress: p.FormattedAddress,
		PhoneNumber:      p.NationalPhoneNumber,
		Rating:           p.Rating,
		ReviewCount:      p.UserRatingCount,
		Types:            p.Types,
	}
	if p.DisplayName != nil {
		record.DisplayName = p.DisplayName.Text
	}
	if p.Location != nil {
		lat := p.Location.Latitude
		lon := p.Location.Longitude
		record.Latitude = &lat
		record.Longitude = &lon
	}
	if p.RegularOpeningHours != nil {
		record.WeekdayDescriptions = p.RegularOpeningHours.WeekdayDescriptions
	}
	return record
}
