package ripper

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Client downloads data files from a live modulplaner frontend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a ripper client for the given frontend base URL.
func NewClient(baseURL string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

// Download fetches a frontend data file into localPath. A 404 is
// expected for optional files and reported as ok=false without error;
// other failures are errors.
func (c *Client) Download(remotePath string, localPath string) (bool, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, remotePath)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", "modulplaner-backend/planerctl")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Warn("file not found", "url", url)
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, url)
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return false, fmt.Errorf("could not create output directory: %w", err)
	}

	f, err := os.Create(localPath)
	if err != nil {
		return false, fmt.Errorf("could not create %s: %w", localPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", localPath, err)
	}

	c.log.Info("downloaded", "path", localPath)
	return true, nil
}
