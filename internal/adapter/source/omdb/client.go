package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second

	// maxBodySize bounds JSON and image bodies alike
	maxBodySize = 16 << 20
)

// Client talks to an OMDb-compatible endpoint.
// It issues exactly one request per call and never retries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	maxBody    int64
}

// NewClient creates a new OMDb API client
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		maxBody: maxBodySize,
	}
}

// SearchURL builds the request URL for a title search
func (c *Client) SearchURL(query string) (string, error) {
	return c.buildURL("s", query)
}

// DetailURL builds the request URL for a detail lookup
func (c *Client) DetailURL(id string) (string, error) {
	return c.buildURL("i", id)
}

// buildURL sets key=value and apikey on the base endpoint
func (c *Client) buildURL(key, value string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", c.baseURL, err)
	}
	query := u.Query()
	query.Set(key, value)
	query.Set("apikey", c.apiKey)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// Search returns titles matching query in server order.
// Upstream answers unmatched queries with Response "False"; that is an
// empty result, not an error.
func (c *Client) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	reqURL, err := c.SearchURL(query)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: search %q: %w", domain.ErrDecode, query, err)
	}

	if failed(resp.Response) {
		c.logger.Debug("search returned no matches", "query", query, "upstream", resp.Error)
		return []domain.SearchResult{}, nil
	}

	return MapSearchResults(resp.Search), nil
}

// FetchDetail returns the full record for one title
func (c *Client) FetchDetail(ctx context.Context, id string) (*domain.TitleDetail, error) {
	reqURL, err := c.DetailURL(id)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp DetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: detail %q: %w", domain.ErrDecode, id, err)
	}

	if failed(resp.Response) {
		return nil, fmt.Errorf("%w: detail %q: %s", domain.ErrDecode, id, resp.Error)
	}

	return MapDetail(resp), nil
}

// FetchImage downloads an absolute image URL
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if !domain.HasPoster(imageURL) {
		return nil, domain.ErrNoPoster
	}
	return c.get(ctx, imageURL)
}

// get performs one GET and returns the body of a 2xx response.
// Transport failures and other statuses map to domain.ErrNetwork.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("omdb request", "url", redact(reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("omdb request failed", "url", redact(reqURL), "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("omdb request error", "status", resp.StatusCode, "url", redact(reqURL))
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrNetwork, resp.StatusCode)
	}

	if int64(len(body)) > c.maxBody {
		c.logger.Error("omdb response too large", "limit", c.maxBody, "url", redact(reqURL))
		return nil, fmt.Errorf("%w: response exceeds %d bytes", domain.ErrNetwork, c.maxBody)
	}

	return body, nil
}

// redact hides the api key in logged URLs
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := u.Query()
	if query.Has("apikey") {
		query.Set("apikey", "REDACTED")
		u.RawQuery = query.Encode()
	}
	return u.String()
}
