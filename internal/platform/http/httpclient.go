// Package http builds the outbound HTTP client used for third-party APIs.
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns a client with an overall request timeout and an
// explicitly tuned transport. http.DefaultClient has no timeout and must not
// be used for outbound calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		// Uploads stream a multipart body; wait for 100-continue briefly.
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
