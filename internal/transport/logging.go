package transport

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Logging is an http.RoundTripper that records each request with its
// duration and outcome.
type Logging struct {
	next   http.RoundTripper
	logger zerolog.Logger
}

// NewLogging wraps next with request logging.
func NewLogging(next http.RoundTripper, logger zerolog.Logger) *Logging {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Logging{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (l *Logging) RoundTrip(req *http.Request) (*http.Response, error) {
	started := time.Now()

	resp, err := l.next.RoundTrip(req)

	if err != nil {
		l.logger.Error().
			Err(err).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Dur("duration", time.Since(started)).
			Msg("http call")

		return resp, err
	}

	l.logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Msg("http call")

	return resp, err
}
