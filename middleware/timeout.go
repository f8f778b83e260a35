package middleware

import (
	"context"
	"time"

	"github.com/jmylchreest/kagi-mcp-server/protocol"
)

// Timeout returns middleware that enforces a request deadline. The protocol
// itself has no cancellation mechanism, so this is the only guard against a
// hung tool invocation; deployments that prefer to block indefinitely simply
// omit it.
func Timeout(d time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, req)
		}
	}
}
