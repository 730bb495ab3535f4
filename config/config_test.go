package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected HTTPAddr :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.SongsTable != "songs" {
		t.Errorf("Expected SongsTable songs, got %s", cfg.SongsTable)
	}
	if cfg.CatalogTable != "unique_songs" {
		t.Errorf("Expected CatalogTable unique_songs, got %s", cfg.CatalogTable)
	}
	if cfg.JWTExpires != 15*time.Minute {
		t.Errorf("Expected 15m access TTL, got %s", cfg.JWTExpires)
	}
	if cfg.JWTRefreshExpires != 7*24*time.Hour {
		t.Errorf("Expected 168h refresh TTL, got %s", cfg.JWTRefreshExpires)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("DB_NAME", "hymnal_test")
	os.Setenv("JWT_EXPIRES_IN", "30m")
	os.Setenv("SONGS_TABLE", "songs_test")
	defer func() {
		os.Unsetenv("HTTP_ADDR")
		os.Unsetenv("DB_NAME")
		os.Unsetenv("JWT_EXPIRES_IN")
		os.Unsetenv("SONGS_TABLE")
	}()

	cfg := Load()

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("Expected HTTPAddr :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.DBName != "hymnal_test" {
		t.Errorf("Expected DBName hymnal_test, got %s", cfg.DBName)
	}
	if cfg.JWTExpires != 30*time.Minute {
		t.Errorf("Expected 30m access TTL, got %s", cfg.JWTExpires)
	}
	if cfg.SongsTable != "songs_test" {
		t.Errorf("Expected SongsTable songs_test, got %s", cfg.SongsTable)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	os.Setenv("JWT_EXPIRES_IN", "soon")
	defer os.Unsetenv("JWT_EXPIRES_IN")

	cfg := Load()
	if cfg.JWTExpires != 15*time.Minute {
		t.Errorf("Expected fallback 15m for unparsable duration, got %s", cfg.JWTExpires)
	}
}
