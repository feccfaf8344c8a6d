package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gaolamthuy/storefront/common/globals"
	"github.com/gaolamthuy/storefront/common/metrics"
	"github.com/gaolamthuy/storefront/common/telemetry/attributes"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Options controls timeouts, retry backoff and outbound rate limiting.
type Options struct {
	Timeout       time.Duration
	Retries       int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
	RateLimit     float64
	Burst         int
}

// DefaultOptions mirrors the storefront's production settings.
func DefaultOptions() Options {
	return Options{
		Timeout:       10 * time.Second,
		Retries:       3,
		RetryDelay:    time.Second,
		MaxRetryDelay: 8 * time.Second,
		RateLimit:     5,
		Burst:         5,
	}
}

// Client fetches JSON documents from the catalog API.
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	metrics *metrics.Registry
	logger  *slog.Logger

	now func() time.Time

	// newTimer returns the timer used between retries; nil means a real one.
	newTimer func() backoff.Timer
}

// New builds a Client. reg may be nil when metrics are not collected.
func New(opts Options, reg *metrics.Registry) *Client {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		opts:     opts,
		limiter:  rate.NewLimiter(limit, burst),
		metrics:  reg,
		logger:   globals.Logger(),
		now:      time.Now,
		newTimer: func() backoff.Timer { return nil },
	}
}

// GetJSON fetches rawURL and decodes the body into dest. Only responses with
// status >= 500 are retried; timeouts surface as a 408 StatusError.
func (c *Client) GetJSON(ctx context.Context, rawURL string, dest interface{}) (opErr error) {
	ctx, span := commontrace.StartSpan(ctx, attributes.AttrUpstreamURLKey.String(redact(rawURL)))
	defer commontrace.EndSpan(span, &opErr, nil)

	attempt := 0
	operation := func() error {
		attempt++
		err := c.attempt(ctx, rawURL, dest)
		var statusErr *StatusError
		if err != nil && (!errors.As(err, &statusErr) || !statusErr.Retryable()) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		status := 0
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			status = statusErr.StatusCode
		}
		c.logger.WarnContext(ctx, "Upstream request failed, retrying",
			slog.String("url", redact(rawURL)),
			slog.Int("status", status),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
		)
		if c.metrics != nil {
			c.metrics.RecordRetry(hostOf(rawURL))
		}
	}
	return backoff.RetryNotifyWithTimer(operation, c.retryPolicy(ctx), notify, c.newTimer())
}

// retryPolicy doubles the delay from RetryDelay up to MaxRetryDelay, with no
// jitter, for at most Retries extra attempts.
func (c *Client) retryPolicy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(c.opts.RetryDelay),
		backoff.WithRandomizationFactor(0),
		backoff.WithMultiplier(2),
		backoff.WithMaxElapsedTime(0),
	)
	if c.opts.MaxRetryDelay > 0 {
		exp.MaxInterval = c.opts.MaxRetryDelay
	} else {
		exp.MaxInterval = time.Duration(math.MaxInt64)
	}
	retries := uint64(0)
	if c.opts.Retries > 0 {
		retries = uint64(c.opts.Retries)
	}
	return backoff.WithContext(backoff.WithMaxRetries(exp, retries), ctx)
}

func (c *Client) attempt(ctx context.Context, rawURL string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	attemptCtx := ctx
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	target, err := c.withCacheBuster(rawURL)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	start := c.now()
	status := 0
	defer func() {
		if c.metrics != nil {
			c.metrics.RecordUpstream(hostOf(rawURL), status, c.now().Sub(start))
		}
	}()

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(ctx, attemptCtx) {
			status = http.StatusRequestTimeout
			return &StatusError{StatusCode: http.StatusRequestTimeout, Message: "Request timeout"}
		}
		return fmt.Errorf("GET %s: %w", redact(rawURL), err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, attemptCtx) {
			return &StatusError{StatusCode: http.StatusRequestTimeout, Message: "Request timeout"}
		}
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp, body)}
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return &StatusError{StatusCode: resp.StatusCode, Message: invalidJSONMessage, Err: err}
	}
	return nil
}

// withCacheBuster sets t=<unix millis> so intermediaries never serve a stale catalog.
func (c *Client) withCacheBuster(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(c.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// errorMessage prefers the body's "message" then "error" field over the status line.
func errorMessage(resp *http.Response, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

func isTimeout(parent, attempt context.Context) bool {
	return parent.Err() == nil && errors.Is(attempt.Err(), context.DeadlineExceeded)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}

func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
