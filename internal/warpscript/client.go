package warpscript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	userAgent          = "warp10-zeppelin/1.0"
	programContentType = "text/plain; charset=utf-8"
)

// ClientOptions tunes the exec client.
type ClientOptions struct {
	// RateLimit caps requests per second. Zero means unlimited.
	RateLimit float64
	Logger    *zap.Logger
}

// Client posts programs to <base>/exec. It never retries and sets no
// timeout beyond the transport defaults.
type Client struct {
	Resty    *resty.Client
	Limiter  *rate.Limiter
	endpoint string
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewClient creates a client for the engine at baseURL.
func NewClient(baseURL string, opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Only the pooled transport is borrowed; retries stay off.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetRetryCount(0).
		SetHeader("User-Agent", userAgent).
		SetLogger(logger.Sugar())
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	c := &Client{
		Resty:    restyClient,
		Limiter:  rate.NewLimiter(rate.Inf, 0),
		endpoint: strings.TrimRight(baseURL, "/") + "/exec",
		logger:   logger,
	}
	c.SetRateLimit(opts.RateLimit)
	return c
}

// Endpoint is the exec URL requests go to.
func (c *Client) Endpoint() string { return c.endpoint }

// SetRateLimit configures rate limiting (requests per second).
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rps <= 0 {
		c.Limiter = rate.NewLimiter(rate.Inf, 0)
	} else {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// Exec streams program to the engine and classifies the answer: 200 is a
// success carrying the body, anything else a failure carrying the header
// diagnostic. A non-nil error is always a *TransportError.
func (c *Client) Exec(ctx context.Context, program io.Reader) (Outcome, error) {
	c.mu.RLock()
	limiter := c.Limiter
	c.mu.RUnlock()
	if err := limiter.Wait(ctx); err != nil {
		return Outcome{}, &TransportError{Err: fmt.Errorf("rate limit error: %w", err)}
	}

	start := time.Now()
	resp, err := c.Resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", programContentType).
		SetBody(program).
		Post(c.endpoint)
	if err != nil {
		c.logger.Warn("exec request failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		return Outcome{}, &TransportError{Err: err}
	}

	c.logger.Debug("exec request completed",
		zap.String("endpoint", c.endpoint),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)),
		zap.Int("bytes", len(resp.Body())),
	)

	if resp.StatusCode() == http.StatusOK {
		return Outcome{
			Status:     StatusSuccess,
			Body:       joinLines(string(resp.Body())),
			StatusCode: resp.StatusCode(),
		}, nil
	}

	header := resp.Header()
	var body *string
	if captureBody(header.Get("Content-Type")) {
		text := joinLines(string(resp.Body()))
		body = &text
	}
	diag, err := buildDiagnostic(header.Values(HeaderErrorLine), header.Values(HeaderErrorMessage), body)
	if err != nil {
		return Outcome{}, &TransportError{Err: err}
	}
	return Outcome{Status: StatusFailure, Body: diag, StatusCode: resp.StatusCode()}, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.Resty.GetClient().CloseIdleConnections()
}
