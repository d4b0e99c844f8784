package places

import (
	"context"
	"time"

	"github.com/bebektakip/carefinder/internal/domain/entities"
	"github.com/bebektakip/carefinder/internal/domain/providers"
)

// MockSearcher implements a canned place searcher for offline development.
// It simulates provider latency but none of the failure modes.
type MockSearcher struct {
	delay time.Duration
}

// NewMockSearcher creates a mock place searcher.
func NewMockSearcher() *MockSearcher {
	return &MockSearcher{delay: 300 * time.Millisecond}
}

// SearchNearby returns canned records near the requested point.
func (m *MockSearcher) SearchNearby(ctx context.Context, req providers.NearbySearchRequest) (*providers.PlaceSearchResponse, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	return &providers.PlaceSearchResponse{
		Records: mockRecords(req.Kind, req.Latitude, req.Longitude),
	}, nil
}

// SearchText returns canned records, near the bias point when one is given.
func (m *MockSearcher) SearchText(ctx context.Context, req providers.TextSearchRequest) (*providers.PlaceSearchResponse, error) {
	if err := m.sleep(ctx); err != nil {
		return nil, err
	}
	lat, lon := 41.0082, 28.9784 // Istanbul
	if req.Bias != nil {
		lat, lon = req.Bias.Latitude, req.Bias.Longitude
	}
	return &providers.PlaceSearchResponse{
		Records: mockRecords(req.Kind, lat, lon),
	}, nil
}

func (m *MockSearcher) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.delay):
		return nil
	}
}

func mockRecords(kind entities.ProviderKind, lat, lon float64) []providers.PlaceRecord {
	if kind == entities.ProviderKindHospital {
		return []providers.PlaceRecord{
			mockRecord("mock-hospital-1", "Özel Anadolu Çocuk Hastanesi", "Bağdat Cad. No:12, Kadıköy", "+90 216 555 01 01", lat+0.01, lon+0.01, 4.6, 812),
			mockRecord("mock-hospital-2", "İstanbul Üniversitesi Çocuk Hastanesi", "Millet Cad. No:5, Fatih", "+90 212 555 02 02", lat-0.02, lon+0.005, 4.2, 1930),
		}
	}
	return []providers.PlaceRecord{
		mockRecord("mock-doctor-1", "Dr. Ayşe Yılmaz - Acıbadem Hastanesi", "Tekin Sok. No:8, Üsküdar", "+90 216 555 03 03", lat+0.005, lon-0.01, 4.8, 257),
		mockRecord("mock-doctor-2", "Prof. Dr. Mehmet Demir Muayenehanesi", "İstiklal Cad. No:44, Beyoğlu", "+90 212 555 04 04", lat-0.008, lon+0.012, 4.9, 143),
		mockRecord("mock-doctor-3", "Uzm. Dr. Elif Kaya - Çocuk Kardiyoloji Kliniği", "Moda Cad. No:3, Kadıköy", "+90 216 555 05 05", lat+0.015, lon+0.002, 4.5, 98),
	}
}

func mockRecord(id, name, address, phone string, lat, lon, rating float64, reviews int) providers.PlaceRecord {
	return providers.PlaceRecord{
		PlaceID:          id,
		DisplayName:      name,
		FormattedAddress: address,
		PhoneNumber:      phone,
		Latitude:         &lat,
		Longitude:        &lon,
		Rating:           &rating,
		ReviewCount:      &reviews,
	}
}
