package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/customs/internal/core"
	mw "github.com/JonMunkholm/customs/internal/web/middleware"
)

// withRequestMetadata adds client IP and User-Agent to ctx for mutation logs.
func withRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ctx = core.ContextWithIPAddress(ctx, mw.ClientIP(r))
	ctx = core.ContextWithUserAgent(ctx, r.UserAgent())
	return ctx
}
