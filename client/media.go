package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// AudioURL resolves an episode's stored audio path to an absolute URL. Media
// assets are served as static files under /data/ on the API origin, outside
// the JSON API.
func (c *Client) AudioURL(storedPath string) string {
	return c.baseURL + "/data/" + strings.TrimPrefix(storedPath, "/")
}

// DownloadAudio streams an episode's audio asset into destDir and returns the
// local path. The file name is derived from the stored path so repeated
// downloads of the same asset overwrite rather than accumulate.
func (c *Client) DownloadAudio(ctx context.Context, storedPath, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.AudioURL(storedPath), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", classifyResponse(resp.StatusCode, "")
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio dir: %w", err)
	}

	local := filepath.Join(destDir, filepath.Base(storedPath))
	out, err := os.Create(local)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(local)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	return local, nil
}
