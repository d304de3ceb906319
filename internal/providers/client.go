// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/lineup/internal/config"
	"github.com/tomtom215/lineup/internal/logging"
	"github.com/tomtom215/lineup/internal/metrics"
)

// errorBodyLimit bounds how much of a non-2xx body is kept in an HTTPError.
const errorBodyLimit = 512

// BreakerConfig holds circuit breaker thresholds.
type BreakerConfig struct {
	MaxRequests  uint32        // concurrent probes in half-open state
	Interval     time.Duration // closed-state count reset period
	Timeout      time.Duration // open duration before half-open
	MinRequests  uint32        // requests needed before the ratio is evaluated
	FailureRatio float64
}

// DefaultBreakerConfig returns the production breaker thresholds:
// 3 half-open probes, 1 minute window, 2 minute open timeout, and trip at a
// 60% failure rate once 10 requests were seen.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Client is the shared outbound HTTP plumbing of every adapter: bounded
// timeout, per-provider rate limiter, per-provider circuit breaker, body
// size cap and JSON decoding into untyped values.
type Client struct {
	name      string
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
	cb        *gobreaker.CircuitBreaker[interface{}]
	cbName    string
	maxBody   int64
	userAgent string
}

// NewClient creates a client for one provider.
func NewClient(name string, cfg *config.ProviderConfig, breaker BreakerConfig) *Client {
	limit := rate.Inf
	burst := 1
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
		burst = cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 4 << 20
	}

	c := &Client{
		name:      name,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, burst),
		cbName:    name + "-api",
		maxBody:   maxBody,
		userAgent: cfg.UserAgent,
	}
	c.cb = newBreaker(c.cbName, breaker)
	return c
}

func newBreaker(cbName string, cfg BreakerConfig) *gobreaker.CircuitBreaker[interface{}] {
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbName).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio
			if shouldTrip {
				logging.Warn().Str("breaker", cbName).Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).
				Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
}

// Name returns the provider ID this client serves.
func (c *Client) Name() string {
	return c.name
}

// BreakerState returns closed, half-open or open.
func (c *Client) BreakerState() string {
	return stateToString(c.cb.State())
}

// GetJSON performs GET baseURL+path?query and decodes the body into an
// untyped value. Errors wrap ErrProviderTimeout, ErrProviderHTTP,
// ErrProviderShape or ErrBreakerOpen.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (interface{}, error) {
	start := time.Now()

	result, err := c.getJSON(ctx, path, query)

	metrics.RecordProviderRequest(c.name, outcome(err), time.Since(start))
	return result, err
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (interface{}, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	return c.execute(func() (interface{}, error) {
		return c.do(ctx, reqURL)
	})
}

// wait blocks on the provider's rate limiter.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter.Allow() {
		return nil
	}
	metrics.ProviderRateLimitWaits.WithLabelValues(c.name).Inc()
	if err := c.limiter.Wait(ctx); err != nil {
		// Wait fails fast when the deadline cannot accommodate the delay.
		return fmt.Errorf("%w: %s: rate limiter: %v", ErrProviderTimeout, c.name, err)
	}
	return nil
}

// execute wraps a provider call with circuit breaker protection.
func (c *Client) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := c.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.cbName, "rejected").Inc()
			logging.Warn().Str("provider", c.name).Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
			return nil, fmt.Errorf("%w: %s: %v", ErrBreakerOpen, c.name, err)
		}

		metrics.CircuitBreakerRequests.WithLabelValues(c.cbName, "failure").Inc()
		counts := c.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.cbName).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(c.cbName, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(c.cbName).Set(0)
	return result, nil
}

func (c *Client) do(ctx context.Context, reqURL string) (interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logging.Ctx(ctx).Debug().Str("provider", c.name).Str("url", logging.RedactURL(reqURL)).Msg("Provider request")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("%w: %s: %v", ErrProviderTimeout, c.name, err)
		}
		return nil, fmt.Errorf("%s: request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &HTTPError{Provider: c.name, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, fmt.Errorf("%w: %s: reading body: %v", ErrProviderTimeout, c.name, err)
		}
		return nil, fmt.Errorf("%s: read body: %w", c.name, err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s: body exceeds %d bytes", ErrProviderShape, c.name, c.maxBody)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: %s: empty body", ErrProviderShape, c.name)
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProviderShape, c.name, err)
	}
	return decoded, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// outcome is the provider_requests_total label for err.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(Classify(err))
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
