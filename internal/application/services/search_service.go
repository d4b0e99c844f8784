package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bebektakip/carefinder/internal/adapters/cache"
	"github.com/bebektakip/carefinder/internal/domain/entities"
	"github.com/bebektakip/carefinder/internal/domain/providers"
	"github.com/bebektakip/carefinder/internal/infrastructure/observability"
	"github.com/bebektakip/carefinder/internal/normalize"
	apperrors "github.com/bebektakip/carefinder/pkg/errors"
)

const (
	// defaultNearbyRadiusMeters applies when the caller omits a radius.
	defaultNearbyRadiusMeters = 5000

	// pediatricQueryPrefix biases free-text doctor searches toward pediatric
	// results when the query itself does not mention children.
	pediatricQueryPrefix = "çocuk doktoru"
)

// SearchState is the observable snapshot of the most recent search.
type SearchState struct {
	IsLoading bool                     `json:"is_loading"`
	LastError string                   `json:"last_error,omitempty"`
	Results   []*entities.CareProvider `json:"results"`
}

// SearchService resolves caller requests into ranked CareProvider lists. It
// consults the result cache on first pages, calls the external places
// provider, normalizes and ranks the records, and publishes one analytics
// event per completed search. It never retries; retry policy belongs to the
// caller.
type SearchService struct {
	searcher    providers.PlaceSearcher
	resultCache *cache.ResultCache
	normalizer  *normalize.Normalizer
	ranking     *RankingService
	eventBus    providers.EventBus
	metrics     *observability.Metrics

	mu    sync.RWMutex
	state SearchState
}

// NewSearchService creates a search service. The result cache may be nil, in
// which case every request goes to the provider.
func NewSearchService(searcher providers.PlaceSearcher, resultCache *cache.ResultCache, normalizer *normalize.Normalizer, ranking *RankingService) *SearchService {
	if normalizer == nil {
		normalizer = normalize.New(nil)
	}
	if ranking == nil {
		ranking = NewRankingService()
	}
	return &SearchService{
		searcher:    searcher,
		resultCache: resultCache,
		normalizer:  normalizer,
		ranking:     ranking,
	}
}

// SetEventBus configures the analytics event bus.
func (s *SearchService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// SetMetrics configures the metrics sink.
func (s *SearchService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// State returns a snapshot of the observable search state.
func (s *SearchService) State() SearchState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := SearchState{
		IsLoading: s.state.IsLoading,
		LastError: s.state.LastError,
		Results:   make([]*entities.CareProvider, len(s.state.Results)),
	}
	copy(snapshot.Results, s.state.Results)
	return snapshot
}

// SearchNearby finds providers of the given kind within a radius around a
// point. Results carry their distance from that point and are sorted by
// rating descending. Only first pages consult and populate the cache.
func (s *SearchService) SearchNearby(ctx context.Context, kind entities.ProviderKind, lat, lon, radiusMeters float64, pageToken string) (*entities.SearchResult, error) {
	if !kind.Valid() {
		return nil, apperrors.NewValidationError("unknown provider kind")
	}
	if radiusMeters <= 0 {
		radiusMeters = defaultNearbyRadiusMeters
	}

	start := time.Now()
	s.setLoading()

	key := cache.SearchKey{
		Kind:         kind,
		Latitude:     lat,
		Longitude:    lon,
		RadiusMeters: radiusMeters,
	}
	firstPage := pageToken == ""

	if firstPage && s.resultCache != nil {
		if cached, ok := s.resultCache.Get(ctx, key); ok {
			observability.RecordCacheHit(ctx, s.metrics, key.String())
			s.finish(cached.Providers, nil)
			s.publishEvent(ctx, kind, "", len(cached.Providers), start, true, lat, lon)
			return cached, nil
		}
		observability.RecordCacheMiss(ctx, s.metrics, key.String())
	}

	// Cancellation is only honored before dispatch; an issued request always
	// runs to completion.
	if err := ctx.Err(); err != nil {
		cancelled := apperrors.NewCancelledError(err)
		s.finish(nil, cancelled)
		return nil, cancelled
	}

	resp, err := s.searcher.SearchNearby(ctx, providers.NearbySearchRequest{
		Kind:         kind,
		Latitude:     lat,
		Longitude:    lon,
		RadiusMeters: radiusMeters,
		PageToken:    pageToken,
	})
	observability.RecordProviderMetric(ctx, s.metrics, "nearby", time.Since(start))
	if err != nil {
		s.finish(nil, err)
		return nil, err
	}

	// Nearby results keep the rating order, but the caller's point still
	// yields a distance on every provider.
	origin := &entities.Location{Latitude: lat, Longitude: lon}
	ranked := s.ranking.Rank(s.normalizeAll(resp.Records, kind, origin), nil)
	result := &entities.SearchResult{
		Providers:     ranked,
		NextPageToken: resp.NextPageToken,
		CapturedAt:    time.Now(),
	}

	if firstPage && s.resultCache != nil {
		if err := s.resultCache.Put(ctx, key, result); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache search result")
		}
	}

	s.finish(ranked, nil)
	s.publishEvent(ctx, kind, "", len(ranked), start, false, lat, lon)
	return result, nil
}

// SearchByText finds providers matching a free-text query, biased (not
// restricted) toward the caller's location when one is supplied. With a
// location the results are sorted by distance ascending, otherwise by rating
// descending.
func (s *SearchService) SearchByText(ctx context.Context, query string, kind entities.ProviderKind, loc *entities.Location, pageToken string) (*entities.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	if !kind.Valid() {
		return nil, apperrors.NewValidationError("unknown provider kind")
	}
	if kind == entities.ProviderKindDoctor && !s.normalizer.ContainsChildTerm(query) {
		query = pediatricQueryPrefix + " " + query
	}

	start := time.Now()
	s.setLoading()

	key := cache.SearchKey{Kind: kind, Query: query}
	var lat, lon float64
	if loc != nil {
		lat, lon = loc.Latitude, loc.Longitude
		key.Latitude = lat
		key.Longitude = lon
	}
	firstPage := pageToken == ""

	if firstPage && s.resultCache != nil {
		if cached, ok := s.resultCache.Get(ctx, key); ok {
			observability.RecordCacheHit(ctx, s.metrics, key.String())
			s.finish(cached.Providers, nil)
			s.publishEvent(ctx, kind, query, len(cached.Providers), start, true, lat, lon)
			return cached, nil
		}
		observability.RecordCacheMiss(ctx, s.metrics, key.String())
	}

	if err := ctx.Err(); err != nil {
		cancelled := apperrors.NewCancelledError(err)
		s.finish(nil, cancelled)
		return nil, cancelled
	}

	resp, err := s.searcher.SearchText(ctx, providers.TextSearchRequest{
		Query:     query,
		Kind:      kind,
		Bias:      loc,
		PageToken: pageToken,
	})
	observability.RecordProviderMetric(ctx, s.metrics, "text", time.Since(start))
	if err != nil {
		s.finish(nil, err)
		return nil, err
	}

	ranked := s.ranking.Rank(s.normalizeAll(resp.Records, kind, loc), loc)
	result := &entities.SearchResult{
		Providers:     ranked,
		NextPageToken: resp.NextPageToken,
		CapturedAt:    time.Now(),
	}

	if firstPage && s.resultCache != nil {
		if err := s.resultCache.Put(ctx, key, result); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to cache search result")
		}
	}

	s.finish(ranked, nil)
	s.publishEvent(ctx, kind, query, len(ranked), start, false, lat, lon)
	return result, nil
}

// ClearCache drops all cached search results.
func (s *SearchService) ClearCache(ctx context.Context) error {
	if s.resultCache == nil {
		return nil
	}
	return s.resultCache.Clear(ctx)
}

// normalizeAll converts raw records, silently dropping the ones the
// normalizer rejects, and computes distances relative to ref when given.
func (s *SearchService) normalizeAll(records []providers.PlaceRecord, kind entities.ProviderKind, ref *entities.Location) []*entities.CareProvider {
	out := make([]*entities.CareProvider, 0, len(records))
	for _, rec := range records {
		provider := s.normalizer.Normalize(rec, kind)
		if provider == nil {
			continue
		}
		if ref != nil {
			distance := haversineKm(*ref, provider.Location)
			provider.DistanceKm = &distance
		}
		out = append(out, provider)
	}
	return out
}

func (s *SearchService) setLoading() {
	s.mu.Lock()
	s.state.IsLoading = true
	s.state.LastError = ""
	s.mu.Unlock()
}

func (s *SearchService) finish(results []*entities.CareProvider, err error) {
	s.mu.Lock()
	s.state.IsLoading = false
	if err != nil {
		s.state.LastError = err.Error()
	} else {
		s.state.LastError = ""
		s.state.Results = results
	}
	s.mu.Unlock()
}

// publishEvent emits one analytics event per completed search; failures are
// logged and otherwise ignored.
func (s *SearchService) publishEvent(ctx context.Context, kind entities.ProviderKind, query string, count int, start time.Time, cacheHit bool, lat, lon float64) {
	if s.eventBus == nil {
		return
	}

	event := &entities.SearchEvent{
		ID:            uuid.NewString(),
		Kind:          kind,
		Query:         query,
		ResultCount:   count,
		LatencyMs:     int(time.Since(start).Milliseconds()),
		CacheHit:      cacheHit,
		UserLatitude:  lat,
		UserLongitude: lon,
		CreatedAt:     time.Now(),
	}

	if err := s.eventBus.Publish(ctx, providers.EventChannelSearchCompleted, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("failed to publish search event")
	}
}
