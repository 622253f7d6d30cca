package transport

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Config holds dashboard HTTP client configuration.
type Config struct {
	Timeout    time.Duration
	MaxRetries uint
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// NewClient builds the dashboard's HTTP client and the bearer transport
// the session core arms. The bearer sits inside the retry wrapper so each
// retry attempt carries the currently armed token.
func NewClient(cfg Config, logger zerolog.Logger) (*http.Client, *Bearer) {
	bearer := NewBearer(http.DefaultTransport)

	var rt http.RoundTripper = NewLogging(bearer, logger)
	if cfg.MaxRetries > 1 {
		rt = NewRetry(rt, cfg.MaxRetries)
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: rt,
	}, bearer
}
