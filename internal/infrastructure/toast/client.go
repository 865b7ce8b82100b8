package toast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/tableorder/backend/internal/domain"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	loginPath      = "/authentication/v1/authentication/login"
	userAccessType = "TOAST_MACHINE_CLIENT"

	// maxErrorBodySize caps how much of an upstream error body is retained
	maxErrorBodySize = 4096
)

// Config holds the settings needed to construct a Client
type Config struct {
	BaseURL           string
	ClientID          string
	ClientSecret      string
	RestaurantGUID    string
	Environment       string // sent as the Toast-Environment header
	Timeout           time.Duration
	TokenMargin       time.Duration // refresh this long before token expiry
	RequestsPerSecond int
}

// Client handles communication with the Toast POS API. It owns the OAuth
// token lifecycle: a single token slot, refreshed lazily when a call finds it
// within the safety margin of expiry.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	clientID       string
	clientSecret   string
	restaurantGUID string
	environment    string
	tokenMargin    time.Duration
	rateLimiter    *rate.Limiter

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time

	// refreshGroup deduplicates concurrent token refreshes: late arrivals
	// wait for the in-flight exchange instead of issuing their own.
	refreshGroup singleflight.Group

	now   func() time.Time
	debug bool
}

// NewClient creates a new Toast API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	margin := cfg.TokenMargin
	if margin == 0 {
		margin = 60 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:        cfg.BaseURL,
		clientID:       cfg.ClientID,
		clientSecret:   cfg.ClientSecret,
		restaurantGUID: cfg.RestaurantGUID,
		environment:    cfg.Environment,
		tokenMargin:    margin,
		rateLimiter:    rate.NewLimiter(rate.Limit(rps), 2*rps),
		now:            time.Now,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[TOAST] "+format, args...)
	}
}

// token returns a valid bearer token, performing the credential exchange when
// the cached one is missing or within the safety margin of its expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached, expiry := c.accessToken, c.tokenExpiry
	c.mu.Unlock()

	if cached != "" && c.now().Before(expiry.Add(-c.tokenMargin)) {
		return cached, nil
	}

	value, err, _ := c.refreshGroup.Do("token", func() (interface{}, error) {
		// Another caller may have finished a refresh while we queued.
		c.mu.Lock()
		cached, expiry := c.accessToken, c.tokenExpiry
		c.mu.Unlock()
		if cached != "" && c.now().Before(expiry.Add(-c.tokenMargin)) {
			return cached, nil
		}
		return c.refreshToken(ctx)
	})
	if err != nil {
		return "", err
	}

	return value.(string), nil
}

// refreshToken performs the authentication exchange and stores the result
func (c *Client) refreshToken(ctx context.Context) (string, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", &domain.ConfigurationError{Field: "Toast OAuth credentials"}
	}

	payload, err := json.Marshal(map[string]string{
		"clientId":       c.clientID,
		"clientSecret":   c.clientSecret,
		"userAccessType": userAccessType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestedAt := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("toast authentication request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := readLimitedBody(resp.Body, maxErrorBodySize)
		return "", &domain.AuthenticationError{Status: resp.StatusCode, Body: string(body)}
	}

	var tokenResp domain.ToastTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = tokenResp.Token.AccessToken
	c.tokenExpiry = requestedAt.Add(time.Duration(tokenResp.Token.ExpiresIn) * time.Second)
	c.mu.Unlock()

	c.debugLog("token refreshed, expires in %ds", tokenResp.Token.ExpiresIn)

	return tokenResp.Token.AccessToken, nil
}

// Request executes an authenticated call against the Toast API. The body is
// serialized as JSON for mutating methods. Non-success responses are returned
// as RemoteAPIError; nothing is retried automatically.
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, int, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter error: %w", err)
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, 0, err
	}

	var reqBody io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch) {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Toast-Restaurant-External-ID", c.restaurantGUID)
	req.Header.Set("Toast-Environment", c.environment)

	c.debugLog("%s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("toast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := readLimitedBody(resp.Body, maxErrorBodySize)
		return nil, resp.StatusCode, &domain.RemoteAPIError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Body:       string(errBody),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, resp.StatusCode, nil
}

// GetMenus retrieves the published menus for the configured restaurant
func (c *Client) GetMenus(ctx context.Context) (*domain.ToastMenusResponse, error) {
	path := fmt.Sprintf("/menus/v2/menus?restaurantGuid=%s", c.restaurantGUID)

	data, _, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var menus domain.ToastMenusResponse
	if err := json.Unmarshal(data, &menus); err != nil {
		return nil, fmt.Errorf("failed to decode menus response: %w", err)
	}

	return &menus, nil
}

// CreateOrder mirrors an order to the Toast orders endpoint
func (c *Client) CreateOrder(ctx context.Context, payload *domain.ToastOrderPayload) (*domain.ToastOrderResponse, error) {
	path := fmt.Sprintf("/restaurants/%s/orders", c.restaurantGUID)

	data, _, err := c.Request(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}

	var order domain.ToastOrderResponse
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	return &order, nil
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}
