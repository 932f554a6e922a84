package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// trafficLoggingMiddleware logs protocol traffic at debug level. It is
// installed in both directions so tool calls and server-initiated
// messages show up in one stream.
func trafficLoggingMiddleware(logger *slog.Logger, direction string) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if logger == nil || !logger.Enabled(ctx, slog.LevelDebug) {
				return next(ctx, method, req)
			}

			log := logger.With("direction", direction, "method", method, "session_id", sessionID(req))
			log.Debug("mcp traffic", "stage", "request", "params", payload(requestParams(req)))

			result, err := next(ctx, method, req)

			// Notifications have no response worth logging.
			if !strings.HasPrefix(method, "notifications/") {
				if err != nil {
					log.Debug("mcp traffic", "stage", "response", "error", err)
				} else {
					log.Debug("mcp traffic", "stage", "response", "result", payload(result))
				}
			}
			return result, err
		}
	}
}

func sessionID(req sdkmcp.Request) string {
	if req == nil {
		return ""
	}
	if session := req.GetSession(); session != nil {
		return session.ID()
	}
	return ""
}

func requestParams(req sdkmcp.Request) any {
	if req == nil {
		return nil
	}
	return req.GetParams()
}

func payload(v any) string {
	if v == nil {
		return "<nil>"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	return string(data)
}
