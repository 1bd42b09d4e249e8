package omdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher defines the provider calls the search pipeline depends on.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Search(ctx context.Context, query string) (SearchResponse, error)
	FetchMovie(ctx context.Context, imdbID string) (Movie, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// ErrMissingAPIKey is returned by NewClient when no credential was injected.
var ErrMissingAPIKey = errors.New("omdb api key is required")

// Client talks to the OMDb HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	http      *http.Client
	userAgent string
}

// Options configure a Client. APIKey is required.
type Options struct {
	BaseURL string
	APIKey  string
	// Timeout bounds each request; zero disables it.
	Timeout time.Duration
	// HTTPClient replaces the default client; Timeout is ignored when set.
	HTTPClient *http.Client
}

const (
	DefaultBaseURL   = "https://www.omdbapi.com/"
	defaultUserAgent = "marquee/0.1"
	maxBodyBytes     = 4 << 20
)

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:   base,
		apiKey:    key,
		http:      httpClient,
		userAgent: defaultUserAgent,
	}, nil
}

// Search queries the title search endpoint. The query is sent exactly as given.
// A provider "no match" answer is not an error; check SearchResponse.Found.
func (c *Client) Search(ctx context.Context, query string) (SearchResponse, error) {
	if c == nil {
		return SearchResponse{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("s", query)
	var payload SearchResponse
	if err := c.get(ctx, values, &payload); err != nil {
		return SearchResponse{}, err
	}
	return payload, nil
}

// FetchMovie retrieves the full record for one IMDb identifier.
func (c *Client) FetchMovie(ctx context.Context, imdbID string) (Movie, error) {
	if c == nil {
		return Movie{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("i", imdbID)
	var payload Movie
	if err := c.get(ctx, values, &payload); err != nil {
		return Movie{}, err
	}
	return payload, nil
}

func (c *Client) get(ctx context.Context, values url.Values, dest any) error {
	values.Set("apikey", c.apiKey)
	reqURL := *c.baseURL
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = redact(&reqURL)
		}
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	// OMDb reports some failures (bad key, unknown id) as a JSON envelope with
	// an error status; those decode like any other answer.
	err = decodeObject(body, dest)
	if err != nil && resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", redact(&reqURL), resp.StatusCode)
	}
	return err
}

// decodeObject decodes body into dest, rejecting anything that is not a JSON
// object. A null answer must not pass as an empty record.
func decodeObject(body []byte, dest any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("decode response: expected JSON object, got %q", truncateBody(trimmed))
	}
	if err := json.Unmarshal(trimmed, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncateBody(b []byte) string {
	const limit = 32
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}

func redact(u *url.URL) string {
	dup := *u
	q := dup.Query()
	if q.Has("apikey") {
		q.Set("apikey", "REDACTED")
	}
	dup.RawQuery = q.Encode()
	return dup.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base url %q: missing host", raw)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
