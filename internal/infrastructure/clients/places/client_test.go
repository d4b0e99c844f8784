package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bebektakip/carefinder/internal/domain/entities"
	"github.com/bebektakip/carefinder/internal/domain/providers"
	apperrors "github.com/bebektakip/carefinder/pkg/errors"
)

const searchResponseBody = `{
	"places": [
		{
			"id": "place-1",
			"displayName": {"text": "Dr. Ayşe Yılmaz - Acıbadem Hastanesi", "languageCode": "tr"},
			"formattedAddress": "Tekin Sok. No:8, Üsküdar",
			"nationalPhoneNumber": "+90 216 555 03 03",
			"location": {"latitude": 41.0226, "longitude": 29.0078},
			"rating": 4.8,
			"userRatingCount": 257,
			"regularOpeningHours": {
				"weekdayDescriptions": [
					"Monday: 9:00 AM – 5:00 PM",
					"Tuesday: 9:00 AM – 5:00 PM",
					"Wednesday: 9:00 AM – 5:00 PM",
					"Thursday: 9:00 AM – 5:00 PM",
					"Friday: 9:00 AM – 5:00 PM",
					"Saturday: Closed",
					"Sunday: Closed"
				]
			},
			"types": ["doctor", "health"]
		},
		{
			"id": "place-2",
			"displayName": {"text": "Özel Anadolu Çocuk Hastanesi"}
		}
	],
	"nextPageToken": "token-2"
}`

func TestSearchNearby_ParsesResponse(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Contains(t, r.Header.Get("X-Goog-FieldMask"), "places.displayName")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponseBody))
	}))
	defer server.Close()

	client := NewClientWithOptions("test-key", server.URL, server.Client())

	resp, err := client.SearchNearby(context.Background(), providers.NearbySearchRequest{
		Kind:         entities.ProviderKindDoctor,
		Latitude:     41.0,
		Longitude:    29.0,
		RadiusMeters: 5000,
	})
	require.NoError(t, err)

	assert.Equal(t, "/places:searchNearby", gotPath)
	assert.Equal(t, []interface{}{"doctor"}, gotBody["includedTypes"])
	assert.Equal(t, float64(maxPageSize), gotBody["maxResultCount"])

	restriction := gotBody["locationRestriction"].(map[string]interface{})
	circle := restriction["circle"].(map[string]interface{})
	assert.Equal(t, 5000.0, circle["radius"])

	assert.Equal(t, "token-2", resp.NextPageToken)
	require.Len(t, resp.Records, 2)

	first := resp.Records[0]
	assert.Equal(t, "place-1", first.PlaceID)
	assert.Equal(t, "Dr. Ayşe Yılmaz - Acıbadem Hastanesi", first.DisplayName)
	require.NotNil(t, first.Latitude)
	assert.Equal(t, 41.0226, *first.Latitude)
	require.NotNil(t, first.Rating)
	assert.Equal(t, 4.8, *first.Rating)
	require.NotNil(t, first.ReviewCount)
	assert.Equal(t, 257, *first.ReviewCount)
	assert.Len(t, first.WeekdayDescriptions, 7)

	second := resp.Records[1]
	assert.Nil(t, second.Latitude)
	assert.Nil(t, second.Rating)
}

func TestSearchText_SendsLocationBias(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/places:searchText", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"places": []}`))
	}))
	defer server.Close()

	client := NewClientWithOptions("test-key", server.URL, server.Client())

	_, err := client.SearchText(context.Background(), providers.TextSearchRequest{
		Query: "çocuk doktoru kadıköy",
		Kind:  entities.ProviderKindDoctor,
		Bias:  &entities.Location{Latitude: 41.0, Longitude: 29.0},
	})
	require.NoError(t, err)

	assert.Equal(t, "çocuk doktoru kadıköy", gotBody["textQuery"])
	assert.Equal(t, float64(maxPageSize), gotBody["pageSize"])

	bias := gotBody["locationBias"].(map[string]interface{})
	circle := bias["circle"].(map[string]interface{})
	assert.Equal(t, float64(defaultBiasRadiusMeters), circle["radius"])
	center := circle["center"].(map[string]interface{})
	assert.Equal(t, 41.0, center["latitude"])
}

func TestSearchText_NoBiasWithoutLocation(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"places": []}`))
	}))
	defer server.Close()

	client := NewClientWithOptions("test-key", server.URL, server.Client())

	_, err := client.SearchText(context.Background(), providers.TextSearchRequest{
		Query: "çocuk hastanesi",
		Kind:  entities.ProviderKindHospital,
	})
	require.NoError(t, err)

	_, hasBias := gotBody["locationBias"]
	assert.False(t, hasBias)
}

func TestDoSearch_MissingAPIKey(t *testing.T) {
	client := NewClient("")

	_, err := client.SearchNearby(context.Background(), providers.NearbySearchRequest{
		Kind: entities.ProviderKindDoctor,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
}

func TestDoSearch_ProviderErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid.", "status": "INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client := NewClientWithOptions("bad-key", server.URL, server.Client())

	_, err := client.SearchNearby(context.Background(), providers.NearbySearchRequest{
		Kind: entities.ProviderKindDoctor,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProvider))
	assert.Contains(t, err.Error(), "API key not valid.")
}

func TestDoSearch_ProviderStatusWithoutPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithOptions("test-key", server.URL, server.Client())

	_, err := client.SearchNearby(context.Background(), providers.NearbySearchRequest{
		Kind: entities.ProviderKindDoctor,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProvider))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
}

func TestDoSearch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClientWithOptions("test-key", server.URL, nil)

	_, err := client.SearchNearby(context.Background(), providers.NearbySearchRequest{
		Kind: entities.ProviderKindDoctor,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))
}

func TestMockSearcher_ReturnsRecords(t *testing.T) {
	mock := NewMockSearcher()
	mock.delay = 0

	resp, err := mock.SearchNearby(context.Background(), providers.NearbySearchRequest{
		Kind:     entities.ProviderKindDoctor,
		Latitude: 41.0, Longitude: 29.0, RadiusMeters: 5000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Records)
	for _, rec := range resp.Records {
		assert.NotNil(t, rec.Latitude)
		assert.NotNil(t, rec.Longitude)
	}
}
