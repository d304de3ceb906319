// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/tomtom215/lineup/internal/models"
)

var (
	// ErrProviderTimeout is returned when a provider call exceeds its deadline.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderHTTP is matched by every *HTTPError.
	ErrProviderHTTP = errors.New("provider http error")

	// ErrProviderShape is returned for a 2xx response whose body is not JSON.
	ErrProviderShape = errors.New("provider response unparseable")

	// ErrBreakerOpen is returned without a network call while a provider's
	// circuit breaker is open or saturated in half-open state.
	ErrBreakerOpen = errors.New("provider circuit breaker open")

	// ErrUnknownProvider is returned when a selector names no registered provider.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrUnsupportedKind is returned when a named provider does not serve
	// the requested content kind.
	ErrUnsupportedKind = errors.New("provider does not serve content kind")

	// ErrNoProviders is returned when no registered provider serves a kind.
	ErrNoProviders = errors.New("no provider serves content kind")
)

// HTTPError is a non-2xx provider response.
type HTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

// Unwrap makes errors.Is(err, ErrProviderHTTP) hold.
func (e *HTTPError) Unwrap() error {
	return ErrProviderHTTP
}

// Classify maps a provider error to the diagnostic error kind.
func Classify(err error) models.ErrorKind {
	if err == nil {
		return ""
	}

	var netErr net.Error
	switch {
	case errors.Is(err, ErrBreakerOpen):
		return models.ErrorKindBreakerOpen
	case errors.Is(err, ErrProviderTimeout), errors.Is(err, context.DeadlineExceeded):
		return models.ErrorKindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return models.ErrorKindTimeout
	case errors.Is(err, ErrProviderHTTP):
		return models.ErrorKindHTTP
	case errors.Is(err, ErrProviderShape):
		return models.ErrorKindShape
	default:
		return models.ErrorKindRequest
	}
}
