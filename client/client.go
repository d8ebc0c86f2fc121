package client

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// DefaultPort is the fixed port the backend API listens on regardless of
// where it is deployed.
const DefaultPort = 5002

// Client is a typed wrapper around the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an API client. An empty baseURL resolves the backend origin
// from the environment (see ResolveBaseURL).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = ResolveBaseURL()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the resolved backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ResolveBaseURL determines the backend origin without a rebuild: an explicit
// POD_API_URL wins; otherwise the origin is derived from the current host
// name and the fixed API port, so the same binary works against a local or a
// remotely deployed backend.
func ResolveBaseURL() string {
	if url := os.Getenv("POD_API_URL"); url != "" {
		return url
	}
	scheme := GetEnvOrDefault("POD_API_SCHEME", "http")
	host := GetEnvOrDefault("POD_API_HOST", "localhost")
	return fmt.Sprintf("%s://%s:%d", scheme, host, DefaultPort)
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
