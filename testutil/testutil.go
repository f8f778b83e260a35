// Package testutil provides testing utilities for MCP servers.
//
// The in-memory TestClient drives a server through the same request handler
// the stdio transport uses, without spawning a process or wiring pipes.
//
// Example usage:
//
//	func TestMyServer(t *testing.T) {
//	    srv := kagimcp.NewServer(kagimcp.ServerInfo{Name: "test", Version: "1.0.0"})
//	    srv.Tool("greet").Handler(func(ctx context.Context, input GreetInput) (string, error) {
//	        return "Hello, " + input.Name, nil
//	    })
//
//	    tc := testutil.NewTestClient(t, srv)
//	    defer tc.Close()
//
//	    result, err := tc.CallTool("greet", map[string]any{"name": "World"})
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    if result != "Hello, World" {
//	        t.Errorf("result = %q", result)
//	    }
//	}
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	kagimcp "github.com/jmylchreest/kagi-mcp-server"
	"github.com/jmylchreest/kagi-mcp-server/protocol"
	"github.com/jmylchreest/kagi-mcp-server/server"
	"github.com/jmylchreest/kagi-mcp-server/transport"
)

// TestClient is an in-memory client for MCP servers.
type TestClient struct {
	t       testing.TB
	handler transport.Handler
	reqID   int64
	mu      sync.Mutex
}

// NewTestClient creates a test client for the given registry and performs the
// initialize handshake.
func NewTestClient(t testing.TB, reg server.Registry) *TestClient {
	t.Helper()

	tc := &TestClient{
		t:       t,
		handler: kagimcp.NewHandler(reg),
	}

	if _, err := tc.Initialize(); err != nil {
		t.Fatalf("failed to initialize server: %v", err)
	}
	return tc
}

// NewTestClientWithHandler creates a test client with a custom handler.
// Useful for testing middleware.
func NewTestClientWithHandler(t testing.TB, handler transport.Handler) *TestClient {
	t.Helper()
	return &TestClient{
		t:       t,
		handler: handler,
	}
}

// Close releases the client. The in-memory client holds no resources; the
// method exists so tests read the same as against a real transport.
func (tc *TestClient) Close() {}

func (tc *TestClient) nextID() json.RawMessage {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.reqID++
	return json.RawMessage(fmt.Sprintf("%d", tc.reqID))
}

// SendRequest sends a raw request and returns the response.
func (tc *TestClient) SendRequest(method string, params any) (*protocol.Response, error) {
	tc.t.Helper()

	var paramsData json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params: %w", err)
		}
		paramsData = data
	}

	req := &protocol.Request{
		JSONRPC: protocol.JSONRPCVersion,
		ID:      tc.nextID(),
		Method:  method,
		Params:  paramsData,
	}

	return tc.handler.HandleRequest(context.Background(), req)
}

// Initialize sends an initialize request and returns the result object.
func (tc *TestClient) Initialize() (map[string]any, error) {
	tc.t.Helper()

	resp, err := tc.SendRequest(protocol.MethodInitialize, map[string]any{
		"protocolVersion": protocol.MCPVersion,
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "1.0.0",
		},
	})
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	result, ok := resp.Result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected result type: %T", resp.Result)
	}
	return result, nil
}

// ListTools lists all available tools.
func (tc *TestClient) ListTools() ([]map[string]any, error) {
	tc.t.Helper()

	resp, err := tc.SendRequest(protocol.MethodToolsList, nil)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	result, ok := resp.Result.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected result type: %T", resp.Result)
	}

	// Handle both []any (from JSON) and []map[string]any (from direct call)
	var toolMaps []map[string]any
	switch v := result["tools"].(type) {
	case []any:
		toolMaps = make([]map[string]any, len(v))
		for i, tool := range v {
			toolMaps[i], _ = tool.(map[string]any)
		}
	case []map[string]any:
		toolMaps = v
	default:
		return nil, fmt.Errorf("unexpected tools type: %T", result["tools"])
	}
	return toolMaps, nil
}

// CallTool calls a tool with the given arguments and returns the text of the
// first content block.
func (tc *TestClient) CallTool(name string, args any) (string, error) {
	tc.t.Helper()

	resp, err := tc.CallToolRaw(name, args)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", resp.Error
	}

	result, ok := resp.Result.(map[string]any)
	if !ok {
		return "", fmt.Errorf("unexpected result type: %T", resp.Result)
	}

	var first map[string]any
	switch v := result["content"].(type) {
	case []any:
		if len(v) == 0 {
			return "", fmt.Errorf("empty content array")
		}
		first, _ = v[0].(map[string]any)
	case []server.Content:
		if len(v) == 0 {
			return "", fmt.Errorf("empty content array")
		}
		if text, ok := v[0].(server.TextContent); ok {
			return text.Text, nil
		}
		return "", fmt.Errorf("unexpected content block type: %T", v[0])
	default:
		return "", fmt.Errorf("unexpected content type: %T", result["content"])
	}

	if first == nil {
		return "", fmt.Errorf("nil content item")
	}
	text, _ := first["text"].(string)
	return text, nil
}

// CallToolRaw calls a tool and returns the raw response.
func (tc *TestClient) CallToolRaw(name string, args any) (*protocol.Response, error) {
	tc.t.Helper()

	return tc.SendRequest(protocol.MethodToolsCall, map[string]any{
		"name":      name,
		"arguments": args,
	})
}
