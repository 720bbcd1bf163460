package mvg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/mvg/internal/logging"
)

const (
	// DefaultBaseURL is the public MVG web API
	DefaultBaseURL = "https://www.mvg.de"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for failed requests
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 5 * time.Second

	// DefaultCacheDuration is how long location lookups are reused
	DefaultCacheDuration = 10 * time.Minute

	// DefaultUserAgent identifies the client to the API
	DefaultUserAgent = "mvg-cli"
)

// API paths
const (
	locationPath     = "/api/fib/v2/location"
	connectionPath   = "/api/fib/v2/connection"
	departurePath    = "/api/fib/v2/departure"
	notificationPath = "/api/ems/tickers"
)

// maxBodyBytes caps how much of a response body is read
const maxBodyBytes = 8 << 20

// Client is an HTTP client for the MVG journey-planning API
type Client struct {
	// BaseURL is the API origin (e.g., "https://www.mvg.de")
	BaseURL string

	// UserAgent is sent with every request
	UserAgent string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the maximum number of retry attempts for failed requests
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay is the maximum delay for exponential backoff
	MaxRetryDelay time.Duration

	// UseExponentialBackoff enables exponential backoff for retries
	UseExponentialBackoff bool

	// CacheDuration is how long to reuse location lookups (0 = no cache)
	CacheDuration time.Duration

	cacheMutex sync.RWMutex
	cache      map[string]cachedLocations
}

type cachedLocations struct {
	locations []Location
	fetched   time.Time
}

// NewClient creates a client for the public MVG API
func NewClient() *Client {
	return NewClientWithURL(DefaultBaseURL)
}

// NewClientWithURL creates a new client with a custom base URL
// baseURL: API origin without trailing slash (e.g., "http://127.0.0.1:8080")
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:               strings.TrimRight(baseURL, "/"),
		UserAgent:             DefaultUserAgent,
		HTTPClient:            &http.Client{Timeout: DefaultTimeout},
		MaxRetries:            DefaultMaxRetries,
		RetryDelay:            DefaultRetryDelay,
		MaxRetryDelay:         DefaultMaxRetryDelay,
		UseExponentialBackoff: true,
		CacheDuration:         DefaultCacheDuration,
		cache:                 make(map[string]cachedLocations),
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// Locations searches stations, addresses and points of interest by free text.
// Results are cached per query for CacheDuration.
func (c *Client) Locations(ctx context.Context, query string) ([]Location, error) {
	key := strings.ToLower(strings.TrimSpace(query))

	if c.CacheDuration > 0 {
		c.cacheMutex.RLock()
		entry, ok := c.cache[key]
		c.cacheMutex.RUnlock()
		if ok && time.Since(entry.fetched) < c.CacheDuration {
			return entry.locations, nil
		}
	}

	params := url.Values{}
	params.Set("query", query)

	var locations []Location
	if err := c.getJSON(ctx, locationPath, params, &locations); err != nil {
		return nil, err
	}

	if c.CacheDuration > 0 {
		c.cacheMutex.Lock()
		if c.cache == nil {
			c.cache = make(map[string]cachedLocations)
		}
		c.cache[key] = cachedLocations{locations: locations, fetched: time.Now()}
		c.cacheMutex.Unlock()
	}

	return locations, nil
}

// Connections queries itineraries between two station global ids
func (c *Client) Connections(ctx context.Context, q ConnectionQuery) ([]Connection, error) {
	var connections []Connection
	if err := c.getJSON(ctx, connectionPath, q.values(), &connections); err != nil {
		return nil, err
	}
	return connections, nil
}

// Departures lists upcoming departures at a station
func (c *Client) Departures(ctx context.Context, globalID string) ([]Departure, error) {
	params := url.Values{}
	params.Set("globalId", globalID)

	var departures []Departure
	if err := c.getJSON(ctx, departurePath, params, &departures); err != nil {
		return nil, err
	}
	return departures, nil
}

// Notifications returns the current service disruption tickers
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.getJSON(ctx, notificationPath, nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// InvalidateCache drops every cached location lookup
func (c *Client) InvalidateCache() {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.cache = make(map[string]cachedLocations)
}

// values encodes the query the way the connection endpoint expects it
func (q ConnectionQuery) values() url.Values {
	when := q.When
	if when.IsZero() {
		when = time.Now()
	}

	params := url.Values{}
	params.Set("originStationGlobalId", q.OriginID)
	params.Set("destinationStationGlobalId", q.DestinationID)
	params.Set("routingDateTime", when.UTC().Format("2006-01-02T15:04:05.000Z"))
	params.Set("routingDateTimeIsArrival", strconv.FormatBool(q.Arrival))

	if len(q.TransportTypes) > 0 {
		types := make([]string, len(q.TransportTypes))
		for i, t := range q.TransportTypes {
			types[i] = string(t)
		}
		params.Set("transportTypes", strings.Join(types, ","))
	}
	return params
}

// getJSON performs a GET with retries and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	var lastErr error
	currentDelay := c.RetryDelay

	// Retry loop with exponential backoff
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return NewCanceledError(path, ctx.Err())
			case <-time.After(currentDelay):
			}

			if c.UseExponentialBackoff {
				currentDelay *= 2
				if currentDelay > c.MaxRetryDelay {
					currentDelay = c.MaxRetryDelay
				}
			}
		}

		err := c.getJSONAttempt(ctx, path, params, out)
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry non-retryable errors
		if !IsRetryable(err) {
			return err
		}

		logging.Debug("Retrying MVG request",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	return lastErr
}

// getJSONAttempt performs a single request
func (c *Client) getJSONAttempt(ctx context.Context, path string, params url.Values, out interface{}) error {
	target := c.BaseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return NewNetworkError("failed to create GET request", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	logging.LogHTTPRequest(http.MethodGet, path, params)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		// A client timeout also looks like a deadline; only the caller's ctx means canceled
		if ctx.Err() != nil {
			return NewCanceledError(path, err)
		}
		return NewNetworkError("GET request failed", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogHTTPResponse(path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return NewHTTPError(resp.StatusCode, path, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return NewNetworkError("failed to read response body", path, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return NewParseError("failed to parse JSON response", path, err)
	}

	return nil
}
