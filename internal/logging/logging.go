package logging

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
)

var debugEnabled atomic.Bool

// EnableDebug turns on verbose debug logging for the application lifecycle.
func EnableDebug() {
	debugEnabled.Store(true)
	log.Printf("[DEBUG] debug logging enabled")
}

// DebugEnabled reports whether debug logging is active.
func DebugEnabled() bool {
	return debugEnabled.Load()
}

// Debugf emits a formatted debug log message when debugging is enabled.
func Debugf(format string, args ...interface{}) {
	if !DebugEnabled() {
		return
	}
	log.Printf("[DEBUG] "+format, args...)
}

// LogRequest emits a line for an inbound bridge request when debugging is
// enabled. Tokens in the query string and the Authorization header are masked.
func LogRequest(req *http.Request) {
	if !DebugEnabled() || req == nil {
		return
	}

	target := sanitizeURL(req.URL)
	if target == "" {
		target = "<unknown>"
	}

	auth := req.Header.Get("Authorization")
	if auth != "" {
		log.Printf("[DEBUG] HTTP request %s %s from %s (authorization: %s)", req.Method, target, req.RemoteAddr, sanitizeSensitiveValue("authorization", auth))
		return
	}
	log.Printf("[DEBUG] HTTP request %s %s from %s", req.Method, target, req.RemoteAddr)
}

func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	clone := *u

	if clone.RawQuery != "" {
		query := clone.Query()
		sanitized := false
		for key, values := range query {
			if isSensitiveKey(key) {
				sanitized = true
				for idx, value := range values {
					query[key][idx] = sanitizeSensitiveValue(key, value)
				}
			}
		}
		if sanitized {
			clone.RawQuery = query.Encode()
		}
	}

	if clone.User != nil {
		username := clone.User.Username()
		password, hasPassword := clone.User.Password()
		if hasPassword {
			clone.User = url.UserPassword(username, MaskIdentifier(password))
		}
	}

	return clone.String()
}

func isSensitiveKey(name string) bool {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "authorization"),
		strings.Contains(lower, "secret"),
		strings.Contains(lower, "token"):
		return true
	default:
		return false
	}
}

func sanitizeSensitiveValue(name, value string) string {
	if value == "" {
		return value
	}
	if isSensitiveKey(name) {
		return MaskIdentifier(value)
	}
	return value
}

// MaskIdentifier obscures sensitive identifiers leaving only the last four characters visible.
func MaskIdentifier(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(trimmed)-4) + trimmed[len(trimmed)-4:]
}
