package router

import (
	"net"
	"net/http"
	"strings"
)

func middlewareIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rip := realIP(r); rip != "" {
			r.RemoteAddr = rip
		}
		next.ServeHTTP(w, r)
	})
}

// realIP prefers proxy headers in the order True-Client-IP, X-Real-IP,
// X-Forwarded-For (first hop) and falls back to the socket address.
func realIP(r *http.Request) string {
	xff, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")

	for _, candidate := range []string{
		r.Header.Get("True-Client-IP"),
		r.Header.Get("X-Real-IP"),
		xff,
	} {
		if candidate = strings.TrimSpace(candidate); net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}

	return ""
}
