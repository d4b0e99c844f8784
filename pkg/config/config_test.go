package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_PlacesConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("PLACES_PROVIDER", "google")
	os.Setenv("PLACES_API_KEY", "test-key")
	os.Setenv("PLACES_CACHE_TTL_SECONDS", "120")
	defer func() {
		os.Unsetenv("PLACES_PROVIDER")
		os.Unsetenv("PLACES_API_KEY")
		os.Unsetenv("PLACES_CACHE_TTL_SECONDS")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify places config
	assert.Equal(t, "google", cfg.Places.Provider)
	assert.Equal(t, "test-key", cfg.Places.APIKey)
	assert.Equal(t, 120, cfg.Places.CacheTTLSecs)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("PLACES_PROVIDER")
	os.Unsetenv("PLACES_API_KEY")
	os.Unsetenv("PLACES_CACHE_TTL_SECONDS")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "mock", cfg.Places.Provider)
	assert.Equal(t, 300, cfg.Places.CacheTTLSecs)
	assert.Equal(t, 8080, cfg.Server.Port)
}
