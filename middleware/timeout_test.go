package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmylchreest/kagi-mcp-server/protocol"
)

func TestTimeout(t *testing.T) {
	t.Run("allows fast requests through", func(t *testing.T) {
		handler := Timeout(time.Second)(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			return protocol.NewResponse(req.ID, "fast"), nil
		})

		resp, err := handler(context.Background(), &protocol.Request{Method: "test"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp == nil {
			t.Fatal("expected response")
		}
	})

	t.Run("sets deadline on context", func(t *testing.T) {
		var receivedCtx context.Context

		handler := Timeout(100 * time.Millisecond)(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			receivedCtx = ctx
			return protocol.NewResponse(req.ID, "ok"), nil
		})

		_, _ = handler(context.Background(), &protocol.Request{Method: "test"})

		deadline, ok := receivedCtx.Deadline()
		if !ok {
			t.Fatal("expected context to have deadline")
		}
		if deadline.Before(time.Now()) {
			t.Error("deadline should be in the future")
		}
	})

	t.Run("cancels slow requests", func(t *testing.T) {
		handler := Timeout(20 * time.Millisecond)(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			select {
			case <-time.After(500 * time.Millisecond):
				return protocol.NewResponse(req.ID, "slow"), nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		})

		_, err := handler(context.Background(), &protocol.Request{Method: "test"})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("error = %v, want deadline exceeded", err)
		}
	})
}
