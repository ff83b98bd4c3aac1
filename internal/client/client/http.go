package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/models"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 4 << 20
)

// HTTPClient talks to the storefront REST API.
//
// The bearer credential set with SetToken is attached to every request.
// Every call is bounded by the client timeout; a timeout is a terminal
// failure of that call and is reported as ErrUnavailable.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	limiter *rate.Limiter
	logger  logging.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func(ctx context.Context, token string)
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client; its Timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// rps <= 0 disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient returns a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("module", "api_client")
	return c, nil
}

// SetToken sets or, for "", clears the default bearer credential.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// OnUnauthorized registers fn to be called when a request that carried a
// bearer credential is answered with 401. fn receives the rejected
// credential. Login and registration calls never trigger it.
func (c *HTTPClient) OnUnauthorized(fn func(ctx context.Context, token string)) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

type request struct {
	method string
	path   string
	query  url.Values
	body   any
	// notify enables the unauthorized hook for this call.
	notify bool
}

func (c *HTTPClient) do(ctx context.Context, r request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s %s: rate limiter: %w", r.method, r.path, err)
		}
	}

	u := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	logCtx := logging.ContextWithRequestID(ctx, requestID)

	token := c.currentToken()
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(logCtx, "request failed", "method", r.method, "path", r.path, "error", err)
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, mapTransportError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", r.method, r.path, mapTransportError(err))
	}

	c.logger.Debug(logCtx, "request done",
		"method", r.method, "path", r.path, "status", resp.StatusCode,
		"elapsed", time.Since(start))

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return data, nil
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var payload models.ErrorPayload
	if json.Unmarshal(data, &payload) == nil {
		apiErr.Message = payload.Message
	}

	if resp.StatusCode == http.StatusUnauthorized && r.notify && token != "" {
		c.mu.RLock()
		hook := c.onUnauthorized
		c.mu.RUnlock()
		if hook != nil {
			hook(ctx, token)
		}
	}

	return nil, apiErr
}

// mapTransportError classifies everything but caller cancellation as the
// server being unreachable; timeouts included.
func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   models.Credentials{Email: email, Password: password},
	})
	if err != nil {
		return "", err
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("login: %w: %v", ErrBadResponse, err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("login: %w: no token", ErrBadResponse)
	}
	return resp.Token, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password, name string) error {
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/register",
		body:   models.Registration{Email: email, Password: password, Name: name},
	})
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me", notify: true})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("me: %w: %v", ErrBadResponse, err)
	}
	return &user, nil
}

func (c *HTTPClient) GetCart(ctx context.Context) ([]models.LineItem, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/cart", notify: true})
	if err != nil {
		return nil, err
	}
	return models.DecodeCartResponse(data), nil
}

func (c *HTTPClient) AddCartItem(ctx context.Context, productID int64, quantity int) ([]models.LineItem, error) {
	data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/cart/items",
		body:   models.AddItemRequest{ProductID: productID, Quantity: quantity},
		notify: true,
	})
	if err != nil {
		return nil, err
	}
	return models.DecodeCartResponse(data), nil
}

func (c *HTTPClient) UpdateCartItem(ctx context.Context, itemID int64, quantity int) ([]models.LineItem, error) {
	data, err := c.do(ctx, request{
		method: http.MethodPatch,
		path:   "/cart/items/" + strconv.FormatInt(itemID, 10),
		body:   models.UpdateItemRequest{Quantity: quantity},
		notify: true,
	})
	if err != nil {
		return nil, err
	}
	return models.DecodeCartResponse(data), nil
}

func (c *HTTPClient) RemoveCartItem(ctx context.Context, itemID int64) ([]models.LineItem, error) {
	data, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/cart/items/" + strconv.FormatInt(itemID, 10),
		notify: true,
	})
	if err != nil {
		return nil, err
	}
	return models.DecodeCartResponse(data), nil
}

func (c *HTTPClient) ListProducts(ctx context.Context, q models.ProductQuery) (models.ProductPage, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/products", query: q.Values()})
	if err != nil {
		return models.ProductPage{}, err
	}
	return models.DecodeProductPage(data), nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/products/" + strconv.FormatInt(id, 10)})
	if err != nil {
		return nil, err
	}

	var p models.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("product %d: %w: %v", id, ErrBadResponse, err)
	}
	return &p, nil
}
