// Package middleware provides request/response middleware for the MCP
// dispatch pipeline.
//
// Middleware follows the standard pattern where each middleware wraps the
// next handler in the chain, allowing pre- and post-processing of requests.
//
// # Basic Usage
//
// Create and compose middleware:
//
//	chain := middleware.Chain(
//	    middleware.Recover(),
//	    middleware.RequestID(),
//	    middleware.Logging(logger),
//	)
//	handler := chain(baseHandler)
//
// # Available Middleware
//
//   - Recover: Catches panics and converts them to internal errors
//   - RequestID: Injects unique request IDs into the context
//   - Timeout: Enforces request deadlines
//   - Logging: Logs request details and timing
//   - RateLimit: Token-bucket rate limiting, optionally per-method
//   - OTel: OpenTelemetry tracing and metrics
//
// # Default Stack
//
// DefaultStack returns the Recover + RequestID + Logging combination used by
// the stdio server binary:
//
//	stack := middleware.DefaultStack(logger)
//
// # Custom Middleware
//
// Implement custom middleware using the Middleware type:
//
//	func Audit(log middleware.Logger) middleware.Middleware {
//	    return func(next middleware.HandlerFunc) middleware.HandlerFunc {
//	        return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
//	            log.Info("request", middleware.F("method", req.Method))
//	            return next(ctx, req)
//	        }
//	    }
//	}
package middleware
