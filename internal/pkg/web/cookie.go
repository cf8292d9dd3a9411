package web

import (
	"errors"
	"net"
	"net/http"
	"slices"
	"strings"
)

var ErrCookieNotSet = errors.New("web: cookie not set")

// FindCookie returns the first cookie in cookies with the given name.
func FindCookie(cookies []*http.Cookie, name string) (*http.Cookie, error) {
	index := slices.IndexFunc(cookies, func(c *http.Cookie) bool {
		return c.Name == name
	})

	if index < 0 {
		return nil, ErrCookieNotSet
	}

	return cookies[index], nil
}

// ClientIP extracts the client's IP address from the request, preferring
// forwarding headers. The headers are client supplied.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	if forwardedFor := r.Header.Get("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}

	return RemoteIP(r)
}

// RemoteIP returns the IP address of the connected peer.
func RemoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
