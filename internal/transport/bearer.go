// Package transport is the dashboard's HTTP collaborator: it carries the
// session's bearer token on outgoing requests and owns retry policy for
// idempotent calls. The session core arms and disarms it but never retries
// through it.
package transport

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

// Bearer is an http.RoundTripper that attaches the session's bearer token
// to outgoing requests. While disarmed, requests pass through untouched.
type Bearer struct {
	mu    sync.RWMutex
	token string
	next  http.RoundTripper
}

// NewBearer creates a disarmed bearer transport over next. A nil next
// falls back to http.DefaultTransport.
func NewBearer(next http.RoundTripper) *Bearer {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Bearer{next: next}
}

// SetBearerToken arms the transport with token, replacing any prior one.
func (b *Bearer) SetBearerToken(token string) {
	b.mu.Lock()
	b.token = token
	b.mu.Unlock()

	log.Debug().Msg("transport bearer token armed")
}

// ClearBearerToken disarms the transport.
func (b *Bearer) ClearBearerToken() {
	b.mu.Lock()
	b.token = ""
	b.mu.Unlock()

	log.Debug().Msg("transport bearer token cleared")
}

// RoundTrip implements http.RoundTripper. The incoming request is never
// mutated; an armed token is set on a clone.
func (b *Bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	b.mu.RLock()
	token := b.token
	b.mu.RUnlock()

	if token == "" {
		return b.next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return b.next.RoundTrip(clone)
}
