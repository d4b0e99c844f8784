package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bebektakip/carefinder/internal/application/services"
	"github.com/bebektakip/carefinder/internal/domain/entities"
	"github.com/bebektakip/carefinder/internal/infrastructure/observability"
	apperrors "github.com/bebektakip/carefinder/pkg/errors"
	"github.com/bebektakip/carefinder/pkg/retry"
)

// statusClientClosedRequest mirrors the nginx convention for a caller that
// went away before the response was written.
const statusClientClosedRequest = 499

// ProviderSearcher is the service surface the handler needs.
type ProviderSearcher interface {
	SearchNearby(ctx context.Context, kind entities.ProviderKind, lat, lon, radiusMeters float64, pageToken string) (*entities.SearchResult, error)
	SearchByText(ctx context.Context, query string, kind entities.ProviderKind, loc *entities.Location, pageToken string) (*entities.SearchResult, error)
	State() services.SearchState
	ClearCache(ctx context.Context) error
}

// ProviderHandler handles care provider search requests
type ProviderHandler struct {
	service  ProviderSearcher
	retryCfg retry.Config
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(service ProviderSearcher) *ProviderHandler {
	return &ProviderHandler{
		service:  service,
		retryCfg: retry.DefaultConfig(),
	}
}

// SearchNearby handles GET /api/providers/nearby
func (h *ProviderHandler) SearchNearby(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r.URL.Query().Get("kind"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	lat, lok := parseFloatParam(r, "lat")
	lon, nok := parseFloatParam(r, "lon")
	if !lok || !nok {
		respondWithError(w, r, apperrors.NewValidationError("lat and lon are required"))
		return
	}

	radius, _ := parseFloatParam(r, "radius")
	pageToken := r.URL.Query().Get("page_token")

	result, err := h.service.SearchNearby(r.Context(), kind, lat, lon, radius, pageToken)
	if apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
		// Transport failures are the only retryable class.
		err = h.withRetry(r, func() error {
			var rerr error
			result, rerr = h.service.SearchNearby(r.Context(), kind, lat, lon, radius, pageToken)
			return rerr
		})
	}
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// SearchByText handles GET /api/providers/search
func (h *ProviderHandler) SearchByText(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	kind, err := parseKind(r.URL.Query().Get("kind"))
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	var loc *entities.Location
	if lat, lok := parseFloatParam(r, "lat"); lok {
		if lon, nok := parseFloatParam(r, "lon"); nok {
			loc = &entities.Location{Latitude: lat, Longitude: lon}
		}
	}
	pageToken := r.URL.Query().Get("page_token")

	result, err := h.service.SearchByText(r.Context(), query, kind, loc, pageToken)
	if apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
		err = h.withRetry(r, func() error {
			var rerr error
			result, rerr = h.service.SearchByText(r.Context(), query, kind, loc, pageToken)
			return rerr
		})
	}
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetState handles GET /api/providers/state
func (h *ProviderHandler) GetState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.State())
}

// ClearCache handles POST /api/admin/cache/clear
func (h *ProviderHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearCache(r.Context()); err != nil {
		respondWithError(w, r, apperrors.NewInternalError("failed to clear result cache", err))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *ProviderHandler) withRetry(r *http.Request, fn func() error) error {
	return retry.DoWithLog(r.Context(), h.retryCfg, "places-search", fn,
		func(attempt int, err error, nextDelay time.Duration) {
			observability.LoggerFromContext(r.Context()).Warn().
				Int("attempt", attempt).
				Err(err).
				Dur("next_delay", nextDelay).
				Msg("retrying provider search")
		})
}

func parseKind(raw string) (entities.ProviderKind, error) {
	if raw == "" {
		return entities.ProviderKindDoctor, nil
	}
	kind := entities.ProviderKind(raw)
	if !kind.Valid() {
		return "", apperrors.NewValidationError("kind must be doctor or hospital")
	}
	return kind, nil
}

func parseFloatParam(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// respondWithJSON writes a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.GetLogger().Error().Err(err).Msg("failed to encode response")
	}
}

// respondWithError maps application errors to HTTP status codes
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	errType := apperrors.ErrorTypeInternal

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		errType = appErr.Type
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			statusCode = http.StatusBadRequest
		case apperrors.ErrorTypeNotFound:
			statusCode = http.StatusNotFound
		case apperrors.ErrorTypeConfiguration:
			statusCode = http.StatusServiceUnavailable
		case apperrors.ErrorTypeNetwork, apperrors.ErrorTypeProvider:
			statusCode = http.StatusBadGateway
		case apperrors.ErrorTypeCancelled:
			statusCode = statusClientClosedRequest
		}
	}

	observability.LoggerFromContext(r.Context()).Error().
		Err(err).
		Str("error_type", string(errType)).
		Int("status", statusCode).
		Msg("request failed")

	respondWithJSON(w, statusCode, map[string]string{
		"error": err.Error(),
		"type":  string(errType),
	})
}
