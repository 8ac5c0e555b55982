package arr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"strikearr/internal/config"
)

const (
	PlatformRadarr = "radarr"
	PlatformSonarr = "sonarr"

	apiKeyHeader    = "X-Api-Key"
	defaultPageSize = 1000
	maxErrorBody    = 512
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a minimal Radarr/Sonarr API v3 client.
type Client struct {
	baseURL  string
	apiKey   string
	platform string
	pageSize int
	http     HTTPDoer
}

// NewClient constructs a client. A nil doer falls back to http.DefaultClient.
func NewClient(baseURL, apiKey, platform string, doer HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:   strings.TrimSpace(apiKey),
		platform: strings.ToLower(strings.TrimSpace(platform)),
		pageSize: defaultPageSize,
		http:     doer,
	}
}

// NewConfiguredClient builds a client from the platform section of cfg.
func NewConfiguredClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.Platform.RequestTimeout) * time.Second
	client := NewClient(cfg.Platform.URL, cfg.Platform.APIKey, cfg.Platform.Name, &http.Client{Timeout: timeout})
	if cfg.Platform.PageSize > 0 {
		client.pageSize = cfg.Platform.PageSize
	}
	return client
}

// Platform returns the normalized platform tag.
func (c *Client) Platform() string {
	return c.platform
}

// Queue fetches the first page of the download queue.
func (c *Client) Queue(ctx context.Context) ([]Record, error) {
	query := url.Values{}
	query.Set("page", "1")
	query.Set("pageSize", strconv.Itoa(c.pageSize))
	switch c.platform {
	case PlatformRadarr:
		query.Set("includeMovie", "true")
	case PlatformSonarr:
		query.Set("includeSeries", "true")
	}

	resp, err := c.do(ctx, http.MethodGet, "/api/v3/queue", query)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, "fetch queue"); err != nil {
		return nil, err
	}

	var page queuePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, wrap(ErrDecode, "fetch queue", "decode response", err)
	}
	return page.Records, nil
}

// Delete removes a queue item from the download client and blocklists the
// release.
func (c *Client) Delete(ctx context.Context, id int64) error {
	query := url.Values{}
	query.Set("removeFromClient", "true")
	query.Set("blocklist", "true")

	resp, err := c.do(ctx, http.MethodDelete, "/api/v3/queue/"+strconv.FormatInt(id, 10), query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp, fmt.Sprintf("delete queue item %d", id))
}

// Health probes the health endpoint to confirm the URL and API key.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/api/v3/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return wrap(ErrUnauthorized, "health check",
			fmt.Sprintf("status %d; obtain the API key in Settings > General > API Key", resp.StatusCode), nil)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, wrap(ErrTransport, method+" "+path, "build request", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrap(ErrTransport, method+" "+path, "", err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response, operation string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := fmt.Sprintf("status %d", resp.StatusCode)
	if text := strings.TrimSpace(string(body)); text != "" {
		message += ": " + text
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return wrap(ErrUnauthorized, operation, message, nil)
	}
	return wrap(ErrTransport, operation, message, nil)
}
