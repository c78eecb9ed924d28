package transport

import (
	"context"
	"net/http"
)

// SessionHeader lets clients pick a planning session once per connection
// instead of repeating sessionId in every body.
const SessionHeader = "X-Planner-Session"

type sessionKey struct{}

// SessionIDFromContext returns the session ID from context, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionKey{}).(string)
	return sessionID, ok
}

// SessionMiddleware extracts X-Planner-Session and stores it in context.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID != "" {
			ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// resolveSessionID prefers an explicit id, then the header, then "" which
// the session service maps to the default session.
func resolveSessionID(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if id, ok := SessionIDFromContext(r.Context()); ok {
		return id
	}
	return ""
}
