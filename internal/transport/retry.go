package transport

import (
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v5"
)

// Retry wraps a RoundTripper with exponential backoff. Only idempotent
// bodiless requests (GET, HEAD) are retried; everything else passes
// through on the first attempt. Non-5xx answers are final.
type Retry struct {
	next     http.RoundTripper
	maxTries uint
}

// NewRetry wraps next with a retry policy of at most maxTries attempts.
func NewRetry(next http.RoundTripper, maxTries uint) *Retry {
	if next == nil {
		next = http.DefaultTransport
	}
	if maxTries == 0 {
		maxTries = 1
	}
	return &Retry{next: next, maxTries: maxTries}
}

// RoundTrip implements http.RoundTripper.
func (r *Retry) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return r.next.RoundTrip(req)
	}

	operation := func() (*http.Response, error) {
		resp, err := r.next.RoundTrip(req.Clone(req.Context()))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, fmt.Errorf("server returned HTTP %d", resp.StatusCode)
		}
		return resp, nil
	}

	return backoff.Retry(req.Context(), operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(r.maxTries),
	)
}
