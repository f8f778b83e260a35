// Package kagimcp provides a line-delimited JSON-RPC 2.0 server implementing
// the Model Context Protocol (MCP) control surface used by AI-assistant hosts
// to discover and invoke tools.
//
// The package ties together three layers: the protocol codec (protocol), the
// stdio transport loop (transport), and the tool registry (server). Tool
// implementations are registered at startup and the server is bound to a
// byte stream:
//
//	srv := kagimcp.NewServer(kagimcp.ServerInfo{
//	    Name:    "kagi-mcp-server",
//	    Version: "0.1.0",
//	})
//
//	type EchoInput struct {
//	    Message string `json:"message" jsonschema:"required"`
//	}
//
//	srv.Tool("echo").
//	    Description("Echo the input back").
//	    Handler(func(ctx context.Context, input EchoInput) (string, error) {
//	        return input.Message, nil
//	    })
//
//	kagimcp.ServeStdio(ctx, srv)
package kagimcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jmylchreest/kagi-mcp-server/middleware"
	"github.com/jmylchreest/kagi-mcp-server/protocol"
	"github.com/jmylchreest/kagi-mcp-server/server"
	"github.com/jmylchreest/kagi-mcp-server/transport"
)

// Re-export core types for convenience.

// ServerInfo contains server identity exposed to clients.
type ServerInfo = server.Info

// Server is the production tool registry.
type Server = server.Server

// Registry is the capability interface the dispatcher consumes.
type Registry = server.Registry

// Content types returned by tool handlers.
type Content = server.Content
type TextContent = server.TextContent
type ImageContent = server.ImageContent

// NewTextContent creates a text content block.
var NewTextContent = server.NewTextContent

// Middleware types.
type Middleware = middleware.Middleware
type MiddlewareHandlerFunc = middleware.HandlerFunc
type Logger = middleware.Logger
type LogField = middleware.Field

// NopLogger discards all log output.
type NopLogger = middleware.NopLogger

// Middleware re-exports.
var (
	Chain     = middleware.Chain
	Recover   = middleware.Recover
	RequestID = middleware.RequestID
	Timeout   = middleware.Timeout
	Logging   = middleware.Logging
	RateLimit = middleware.RateLimit
	OTel      = middleware.OTel
)

// DefaultMiddleware returns the recommended production middleware stack.
func DefaultMiddleware(logger Logger) []Middleware {
	return middleware.DefaultStack(logger)
}

// LogF creates a new log field with the given key and value.
func LogF(key string, value any) LogField {
	return middleware.F(key, value)
}

// ServeOption configures how the server is run.
type ServeOption func(*serveOptions)

type serveOptions struct {
	middleware []Middleware
}

// WithMiddleware adds middleware to the request handling chain.
func WithMiddleware(m ...Middleware) ServeOption {
	return func(o *serveOptions) {
		o.middleware = append(o.middleware, m...)
	}
}

// NewServer creates a new MCP server with the given identity.
func NewServer(info ServerInfo) *Server {
	return server.New(info)
}

// ServeStdio runs the server over the stdio transport. This blocks until the
// input stream is exhausted (clean nil return), the context is canceled, or
// a write error occurs.
func ServeStdio(ctx context.Context, srv *Server, opts ...ServeOption) error {
	return Serve(ctx, transport.NewStdio(), srv, opts...)
}

// Serve runs the server over an arbitrary transport.
func Serve(ctx context.Context, t transport.Transport, reg Registry, opts ...ServeOption) error {
	return t.Serve(ctx, NewHandler(reg, opts...))
}

// NewHandler builds the transport handler (the request dispatcher) for a
// registry. Exposed so tests can drive the dispatcher without a transport.
func NewHandler(reg Registry, opts ...ServeOption) transport.Handler {
	return newRequestHandler(reg, opts...)
}

// requestHandler is the protocol state machine: a stateless per-request
// transform from Request to Response, generic over any Registry.
type requestHandler struct {
	registry   server.Registry
	handleFunc middleware.HandlerFunc
}

func newRequestHandler(reg server.Registry, opts ...ServeOption) *requestHandler {
	options := &serveOptions{}
	for _, opt := range opts {
		opt(options)
	}

	h := &requestHandler{registry: reg}

	baseHandler := middleware.HandlerFunc(h.handle)
	if len(options.middleware) > 0 {
		h.handleFunc = middleware.Chain(options.middleware...)(baseHandler)
	} else {
		h.handleFunc = baseHandler
	}

	return h
}

// HandleRequest implements transport.Handler.
func (h *requestHandler) HandleRequest(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	return h.handleFunc(ctx, req)
}

func (h *requestHandler) handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	switch req.Method {
	case protocol.MethodInitialize:
		return h.handleInitialize(req)
	case protocol.MethodToolsList:
		return h.handleToolsList(req)
	case protocol.MethodToolsCall:
		return h.handleToolsCall(ctx, req)
	default:
		return nil, protocol.NewMethodNotFound("Unknown method: " + req.Method)
	}
}

func (h *requestHandler) handleInitialize(req *protocol.Request) (*protocol.Response, error) {
	manifest := h.registry.Manifest()

	result := map[string]any{
		"protocolVersion": manifest.ProtocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    manifest.Name,
			"version": manifest.Version,
		},
	}

	return protocol.NewResponse(req.ID, result), nil
}

func (h *requestHandler) handleToolsList(req *protocol.Request) (*protocol.Response, error) {
	tools := h.registry.Tools()

	toolList := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		toolList = append(toolList, map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"inputSchema": t.InputSchema,
		})
	}

	return protocol.NewResponse(req.ID, map[string]any{"tools": toolList}), nil
}

func (h *requestHandler) handleToolsCall(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if len(req.Params) == 0 || string(req.Params) == "null" {
		return nil, protocol.NewInvalidParams("Missing parameters")
	}

	var params struct {
		Name      json.RawMessage `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, protocol.NewInvalidParams("Missing name parameter")
	}

	// A JSON null unmarshals into a string as a no-op, so it must be
	// rejected alongside an absent name.
	var name string
	if len(params.Name) == 0 || string(params.Name) == "null" ||
		json.Unmarshal(params.Name, &name) != nil {
		return nil, protocol.NewInvalidParams("Missing name parameter")
	}

	if len(params.Arguments) == 0 {
		return nil, protocol.NewInvalidParams("Missing arguments parameter")
	}

	// Unknown tools are rejected here, before invocation, so the host sees a
	// method-not-found class error naming the tool.
	if !h.registry.HasTool(name) {
		return nil, protocol.NewMethodNotFound("Unknown tool: " + name)
	}

	content, err := h.registry.CallTool(ctx, name, params.Arguments)
	if err != nil {
		var mcpErr *protocol.Error
		if errors.As(err, &mcpErr) {
			return nil, mcpErr
		}
		return nil, protocol.NewToolError(err.Error())
	}
	if content == nil {
		content = []server.Content{}
	}

	return protocol.NewResponse(req.ID, map[string]any{"content": content}), nil
}
