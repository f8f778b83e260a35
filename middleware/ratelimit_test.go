package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/jmylchreest/kagi-mcp-server/protocol"
)

func TestRateLimit(t *testing.T) {
	t.Run("allows requests within burst", func(t *testing.T) {
		handler := RateLimit(1, 3)(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			return protocol.NewResponse(req.ID, "ok"), nil
		})

		for i := 0; i < 3; i++ {
			if _, err := handler(context.Background(), &protocol.Request{Method: "tools/call"}); err != nil {
				t.Fatalf("request %d: unexpected error: %v", i, err)
			}
		}
	})

	t.Run("rejects requests over burst", func(t *testing.T) {
		handler := RateLimit(1, 1)(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			return protocol.NewResponse(req.ID, "ok"), nil
		})

		if _, err := handler(context.Background(), &protocol.Request{Method: "tools/call"}); err != nil {
			t.Fatalf("first request: unexpected error: %v", err)
		}

		_, err := handler(context.Background(), &protocol.Request{Method: "tools/call"})
		var mcpErr *protocol.Error
		if !errors.As(err, &mcpErr) {
			t.Fatalf("error = %v, want protocol error", err)
		}
		if mcpErr.Code != protocol.CodeToolError {
			t.Errorf("code = %d, want %d", mcpErr.Code, protocol.CodeToolError)
		}
	})

	t.Run("logs rejections", func(t *testing.T) {
		logger := &recordingLogger{}
		handler := RateLimit(1, 1, WithRateLimitLogger(logger))(
			func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
				return protocol.NewResponse(req.ID, "ok"), nil
			})

		_, _ = handler(context.Background(), &protocol.Request{Method: "tools/call"})
		_, _ = handler(context.Background(), &protocol.Request{Method: "tools/call"})

		if len(logger.entries) != 1 {
			t.Fatalf("log entries = %d, want 1", len(logger.entries))
		}
		if logger.entries[0].level != "warn" {
			t.Errorf("level = %q, want warn", logger.entries[0].level)
		}
	})

	t.Run("per-method limits are independent", func(t *testing.T) {
		handler := RateLimitByMethod(1, 1)(
			func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
				return protocol.NewResponse(req.ID, "ok"), nil
			})

		if _, err := handler(context.Background(), &protocol.Request{Method: "tools/call"}); err != nil {
			t.Fatalf("tools/call: unexpected error: %v", err)
		}
		// The tools/call bucket is exhausted, but tools/list has its own.
		if _, err := handler(context.Background(), &protocol.Request{Method: "tools/list"}); err != nil {
			t.Fatalf("tools/list: unexpected error: %v", err)
		}
		if _, err := handler(context.Background(), &protocol.Request{Method: "tools/call"}); err == nil {
			t.Error("second tools/call: expected rate limit error")
		}
	})
}
