package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// UnknownClient is the identifier used when no address can be determined.
const UnknownClient = "unknown"

// ClientID derives the client identifier for a request: the first
// X-Forwarded-For entry, then X-Real-IP, then the remote address.
//
// Forwarding headers are trusted as-is, so the service must sit behind a
// proxy that overwrites them.
func ClientID(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	if r.RemoteAddr != "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
			return host
		}
		return r.RemoteAddr
	}

	return UnknownClient
}
