package kagimcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jmylchreest/kagi-mcp-server/protocol"
	"github.com/jmylchreest/kagi-mcp-server/server"
)

type echoInput struct {
	Message string `json:"message" jsonschema:"required"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	srv := NewServer(ServerInfo{Name: "test-server", Version: "1.2.3"})

	srv.Tool("echo").
		Description("Echo a message").
		Handler(func(ctx context.Context, input echoInput) (string, error) {
			return input.Message, nil
		})

	srv.Tool("fail").
		Description("Always fails").
		Handler(func(ctx context.Context, input echoInput) (string, error) {
			return "", errors.New("tool exploded")
		})

	return srv
}

func callHandler(t *testing.T, reg Registry, method string, params string) (*protocol.Response, error) {
	t.Helper()

	req := &protocol.Request{
		JSONRPC: protocol.JSONRPCVersion,
		ID:      json.RawMessage(`1`),
		Method:  method,
	}
	if params != "" {
		req.Params = json.RawMessage(params)
	}
	return NewHandler(reg).HandleRequest(context.Background(), req)
}

func TestHandleInitialize(t *testing.T) {
	srv := newTestServer(t)

	resp, err := callHandler(t, srv, protocol.MethodInitialize, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected protocol error: %v", resp.Error)
	}

	result := resp.Result.(map[string]any)

	if result["protocolVersion"] != protocol.MCPVersion {
		t.Errorf("protocolVersion = %v, want %v", result["protocolVersion"], protocol.MCPVersion)
	}

	serverInfo := result["serverInfo"].(map[string]any)
	if serverInfo["name"] != "test-server" {
		t.Errorf("serverInfo.name = %v, want test-server", serverInfo["name"])
	}
	if serverInfo["version"] != "1.2.3" {
		t.Errorf("serverInfo.version = %v, want 1.2.3", serverInfo["version"])
	}

	capabilities := result["capabilities"].(map[string]any)
	if _, ok := capabilities["tools"]; !ok {
		t.Error("expected tools capability")
	}
}

func TestHandleToolsList(t *testing.T) {
	srv := newTestServer(t)

	t.Run("returns catalog in registration order", func(t *testing.T) {
		resp, err := callHandler(t, srv, protocol.MethodToolsList, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tools := resp.Result.(map[string]any)["tools"].([]map[string]any)
		if len(tools) != 2 {
			t.Fatalf("got %d tools, want 2", len(tools))
		}
		if tools[0]["name"] != "echo" || tools[1]["name"] != "fail" {
			t.Errorf("tool order = [%v %v], want [echo fail]", tools[0]["name"], tools[1]["name"])
		}
		if tools[0]["description"] != "Echo a message" {
			t.Errorf("description = %v", tools[0]["description"])
		}
		if tools[0]["inputSchema"] == nil {
			t.Error("expected inputSchema to be present")
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			resp, err := callHandler(t, srv, protocol.MethodToolsList, "")
			if err != nil {
				t.Fatalf("call %d: unexpected error: %v", i, err)
			}
			tools := resp.Result.(map[string]any)["tools"].([]map[string]any)
			if len(tools) != 2 || tools[0]["name"] != "echo" {
				t.Errorf("call %d: catalog changed: %v", i, tools)
			}
		}
	})
}

func TestHandleToolsCall(t *testing.T) {
	srv := newTestServer(t)

	t.Run("successful invocation wraps content blocks", func(t *testing.T) {
		resp, err := callHandler(t, srv, protocol.MethodToolsCall,
			`{"name":"echo","arguments":{"message":"X"}}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Error != nil {
			t.Fatalf("unexpected protocol error: %v", resp.Error)
		}

		content := resp.Result.(map[string]any)["content"].([]Content)
		if len(content) != 1 {
			t.Fatalf("got %d content blocks, want 1", len(content))
		}
		text, ok := content[0].(TextContent)
		if !ok {
			t.Fatalf("content[0] = %T, want TextContent", content[0])
		}
		if text.Type != "text" || text.Text != "X" {
			t.Errorf("content = %+v, want {text X}", text)
		}
	})

	t.Run("missing params", func(t *testing.T) {
		for _, params := range []string{"", "null"} {
			_, err := callHandler(t, srv, protocol.MethodToolsCall, params)
			assertProtocolError(t, err, protocol.CodeInvalidParams, "Missing parameters")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := callHandler(t, srv, protocol.MethodToolsCall, `{"arguments":{}}`)
		assertProtocolError(t, err, protocol.CodeInvalidParams, "Missing name parameter")
	})

	t.Run("non-string name", func(t *testing.T) {
		_, err := callHandler(t, srv, protocol.MethodToolsCall, `{"name":42,"arguments":{}}`)
		assertProtocolError(t, err, protocol.CodeInvalidParams, "Missing name parameter")
	})

	t.Run("null name", func(t *testing.T) {
		_, err := callHandler(t, srv, protocol.MethodToolsCall, `{"name":null,"arguments":{}}`)
		assertProtocolError(t, err, protocol.CodeInvalidParams, "Missing name parameter")
	})

	t.Run("missing arguments", func(t *testing.T) {
		_, err := callHandler(t, srv, protocol.MethodToolsCall, `{"name":"echo"}`)
		assertProtocolError(t, err, protocol.CodeInvalidParams, "Missing arguments parameter")
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := callHandler(t, srv, protocol.MethodToolsCall,
			`{"name":"does_not_exist","arguments":{}}`)
		assertProtocolError(t, err, protocol.CodeMethodNotFound, "Unknown tool: does_not_exist")
	})

	t.Run("tool failure becomes invocation error", func(t *testing.T) {
		_, err := callHandler(t, srv, protocol.MethodToolsCall,
			`{"name":"fail","arguments":{"message":"x"}}`)
		assertProtocolError(t, err, protocol.CodeToolError, "tool exploded")
	})

	t.Run("protocol errors from tools pass through", func(t *testing.T) {
		_, err := callHandler(t, srv, protocol.MethodToolsCall,
			`{"name":"echo","arguments":"not an object"}`)

		var mcpErr *protocol.Error
		if !errors.As(err, &mcpErr) {
			t.Fatalf("error = %v, want protocol error", err)
		}
		if mcpErr.Code != protocol.CodeInvalidParams {
			t.Errorf("code = %d, want %d", mcpErr.Code, protocol.CodeInvalidParams)
		}
	})
}

func TestHandleUnknownMethod(t *testing.T) {
	srv := newTestServer(t)

	_, err := callHandler(t, srv, "resources/list", "")
	assertProtocolError(t, err, protocol.CodeMethodNotFound, "Unknown method: resources/list")
}

// mockRegistry exercises the dispatcher independently of the concrete server.
type mockRegistry struct {
	calls []string
}

func (m *mockRegistry) Manifest() server.Manifest {
	return server.Manifest{Name: "mock", Version: "0.0.0", ProtocolVersion: protocol.MCPVersion}
}

func (m *mockRegistry) Tools() []server.ToolInfo {
	return []server.ToolInfo{
		{Name: "first", Description: "first tool"},
		{Name: "second", Description: "second tool"},
	}
}

func (m *mockRegistry) HasTool(name string) bool {
	return name == "first" || name == "second"
}

func (m *mockRegistry) CallTool(ctx context.Context, name string, args json.RawMessage) ([]server.Content, error) {
	m.calls = append(m.calls, name)
	if name == "second" {
		return nil, errors.New("second is broken")
	}
	return []server.Content{server.NewTextContent("from " + name)}, nil
}

func TestDispatcherWithMockRegistry(t *testing.T) {
	t.Run("lists mock catalog", func(t *testing.T) {
		reg := &mockRegistry{}
		resp, err := callHandler(t, reg, protocol.MethodToolsList, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tools := resp.Result.(map[string]any)["tools"].([]map[string]any)
		if len(tools) != 2 || tools[0]["name"] != "first" {
			t.Errorf("tools = %v", tools)
		}
	})

	t.Run("delegates invocation", func(t *testing.T) {
		reg := &mockRegistry{}
		resp, err := callHandler(t, reg, protocol.MethodToolsCall,
			`{"name":"first","arguments":{}}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content := resp.Result.(map[string]any)["content"].([]server.Content)
		if text := content[0].(server.TextContent); text.Text != "from first" {
			t.Errorf("content = %+v", text)
		}
		if len(reg.calls) != 1 || reg.calls[0] != "first" {
			t.Errorf("calls = %v, want [first]", reg.calls)
		}
	})

	t.Run("does not invoke unknown tools", func(t *testing.T) {
		reg := &mockRegistry{}
		_, err := callHandler(t, reg, protocol.MethodToolsCall,
			`{"name":"third","arguments":{}}`)

		assertProtocolError(t, err, protocol.CodeMethodNotFound, "Unknown tool: third")
		if len(reg.calls) != 0 {
			t.Errorf("calls = %v, want none", reg.calls)
		}
	})
}

func TestWithMiddleware(t *testing.T) {
	srv := newTestServer(t)

	var order []string
	tag := func(name string) Middleware {
		return func(next MiddlewareHandlerFunc) MiddlewareHandlerFunc {
			return func(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	handler := NewHandler(srv, WithMiddleware(tag("outer"), tag("inner")))

	req := &protocol.Request{
		JSONRPC: protocol.JSONRPCVersion,
		ID:      json.RawMessage(`1`),
		Method:  protocol.MethodToolsList,
	}
	if _, err := handler.HandleRequest(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v, want [outer inner]", order)
	}
}

func assertProtocolError(t *testing.T, err error, wantCode int, wantMsg string) {
	t.Helper()

	var mcpErr *protocol.Error
	if !errors.As(err, &mcpErr) {
		t.Fatalf("error = %v, want protocol error", err)
	}
	if mcpErr.Code != wantCode {
		t.Errorf("code = %d, want %d", mcpErr.Code, wantCode)
	}
	if mcpErr.Message != wantMsg {
		t.Errorf("message = %q, want %q", mcpErr.Message, wantMsg)
	}
}
