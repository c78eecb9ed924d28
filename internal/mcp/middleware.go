package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SessionHeader selects a planning session for every tool call on an HTTP
// connection. Over stdio the same value is read from _meta.planner_session.
const SessionHeader = "X-Planner-Session"

const sessionMetaKey = "planner_session"

type contextKey int

const sessionIDKey contextKey = iota

// getSessionID extracts the planning session ID from context.
func getSessionID(ctx context.Context) string {
	v, _ := ctx.Value(sessionIDKey).(string)
	return v
}

// resolveSessionID prefers an explicit tool argument over the connection's
// session. An empty result selects the default session.
func resolveSessionID(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return getSessionID(ctx)
}

// sessionMiddleware extracts the planning session from the X-Planner-Session
// header (HTTP) or request metadata (stdio).
func sessionMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var sessionID string

			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				sessionID = extra.Header.Get(SessionHeader)
			}

			// Notifications such as "initialized" carry nil params, and
			// GetMeta on a typed nil panics.
			if sessionID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if sid, ok := meta[sessionMetaKey].(string); ok {
								sessionID = sid
							}
						}
					}()
				}
			}

			if sessionID != "" {
				ctx = context.WithValue(ctx, sessionIDKey, sessionID)
			}
			return next(ctx, method, req)
		}
	}
}
