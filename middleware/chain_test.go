package middleware

import (
	"context"
	"testing"

	"github.com/jmylchreest/kagi-mcp-server/protocol"
)

func TestChain(t *testing.T) {
	t.Run("empty chain returns handler unchanged", func(t *testing.T) {
		called := false
		handler := HandlerFunc(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			called = true
			return protocol.NewResponse(req.ID, "ok"), nil
		})

		chained := Chain()(handler)
		if _, err := chained(context.Background(), &protocol.Request{Method: "test"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !called {
			t.Error("handler was not called")
		}
	})

	t.Run("middleware execute in declaration order", func(t *testing.T) {
		var order []string

		tag := func(name string) Middleware {
			return func(next HandlerFunc) HandlerFunc {
				return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
					order = append(order, name+"-before")
					resp, err := next(ctx, req)
					order = append(order, name+"-after")
					return resp, err
				}
			}
		}

		handler := HandlerFunc(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
			order = append(order, "handler")
			return protocol.NewResponse(req.ID, "ok"), nil
		})

		chained := Chain(tag("first"), tag("second"))(handler)
		_, _ = chained(context.Background(), &protocol.Request{Method: "test"})

		expected := []string{"first-before", "second-before", "handler", "second-after", "first-after"}
		if len(order) != len(expected) {
			t.Fatalf("order = %v, want %v", order, expected)
		}
		for i, v := range expected {
			if order[i] != v {
				t.Errorf("order[%d] = %q, want %q", i, order[i], v)
			}
		}
	})
}

func TestDefaultStack(t *testing.T) {
	stack := DefaultStack(NopLogger{})
	if len(stack) != 3 {
		t.Fatalf("got %d middleware, want 3", len(stack))
	}

	handler := HandlerFunc(func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
		if RequestIDFromContext(ctx) == "" {
			t.Error("expected request ID in context")
		}
		return protocol.NewResponse(req.ID, "ok"), nil
	})

	chained := Chain(stack...)(handler)
	if _, err := chained(context.Background(), &protocol.Request{Method: "test"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
