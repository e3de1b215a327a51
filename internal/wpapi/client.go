package wpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when the requested entity does not exist
var ErrNotFound = errors.New("not found")

// TotalPagesHeader carries the page count of a paginated collection
const TotalPagesHeader = "X-WP-TotalPages"

const maxBodySize = 8 << 20

// StatusError is returned for unsuccessful responses other than not found
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request %s failed: status=%d", e.Path, e.StatusCode)
}

// Response is a successful REST response
type Response struct {
	Body       []byte
	TotalPages int // 0 when the header is absent or unparseable
	StatusCode int
}

// Options configure a Client
type Options struct {
	BaseURL     string // REST root, e.g. https://example.test/wp-json
	Username    string
	AppPassword string
	Timeout     time.Duration
	HTTPClient  *http.Client // overrides Timeout when set
	UserAgent   string
}

// Client talks to the CMS REST API
type Client struct {
	base        string
	username    string
	appPassword string
	userAgent   string
	httpClient  *http.Client
}

// NewClient creates a REST client
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "contentpicker"
	}
	return &Client{
		base:        strings.TrimRight(opts.BaseURL, "/"),
		username:    opts.Username,
		appPassword: opts.AppPassword,
		userAgent:   userAgent,
		httpClient:  httpClient,
	}
}

// URL returns the absolute URL for an API path such as "wp/v2/search?search=x"
func (c *Client) URL(path string) string {
	return c.base + "/" + strings.TrimLeft(path, "/")
}

// Fetch performs a GET for path. Cancelling ctx aborts the request and the
// returned error wraps ctx.Err().
func (c *Client) Fetch(ctx context.Context, path string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.username != "" {
		req.SetBasicAuth(c.username, c.appPassword)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("request %s aborted: %w", path, ctxErr)
		}
		return nil, fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, fmt.Errorf("request %s: %w", path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("request %s aborted: %w", path, ctxErr)
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		Body:       body,
		TotalPages: parseTotalPages(resp.Header.Get(TotalPagesHeader)),
		StatusCode: resp.StatusCode,
	}, nil
}

func parseTotalPages(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
