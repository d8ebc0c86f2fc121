// Package config loads environment configuration for the dashboard.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"poddash/client"
)

// Defaults for the dashboard.
const (
	DefaultListLimit = 20
	DefaultDemoPort  = client.DefaultPort
)

// Config carries the resolved runtime settings.
type Config struct {
	// APIBaseURL is the backend origin. Empty means resolve from the
	// environment at client construction (see client.ResolveBaseURL).
	APIBaseURL string
	// MediaDir is where downloaded audio assets are cached for probing and
	// playback.
	MediaDir string
	// ListLimit is the page size for episode listings.
	ListLimit int
}

// Load reads .env (when present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL: os.Getenv("POD_API_URL"),
		MediaDir:   mediaDir(),
		ListLimit:  envInt("POD_LIST_LIMIT", DefaultListLimit),
	}
}

func mediaDir() string {
	if dir := os.Getenv("POD_MEDIA_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "poddash", "audio")
}

func envInt(key string, defaultVal int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return defaultVal
	}
	return parsed
}
