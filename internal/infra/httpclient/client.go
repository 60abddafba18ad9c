package httpclient

import (
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// New returns an http.Client with an overall request timeout. A zero or
// negative timeout falls back to the default.
func New(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
