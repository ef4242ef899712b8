// ABOUTME: Client identity middleware records caller IP and user agent in the request context
// ABOUTME: Handlers read them to derive the anonymous AI quota fingerprint

package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type clientInfoKey struct{}

// ClientInfo identifies the caller of a request
type ClientInfo struct {
	IP        string
	UserAgent string
}

// ClientInfoMiddleware stores the caller's IP and user agent in the context
func ClientInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := ClientInfo{IP: extractIP(r), UserAgent: r.UserAgent()}
		next.ServeHTTP(w, r.WithContext(WithClientInfo(r.Context(), info)))
	})
}

// WithClientInfo returns a context carrying info
func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey{}, info)
}

// ClientInfoFrom returns the caller info stored in ctx, if any
func ClientInfoFrom(ctx context.Context) ClientInfo {
	info, _ := ctx.Value(clientInfoKey{}).(ClientInfo)
	return info
}

// extractIP gets the client IP from the request
func extractIP(r *http.Request) string {
	// the first X-Forwarded-For entry is the original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
