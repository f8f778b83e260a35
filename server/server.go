package server

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jmylchreest/kagi-mcp-server/protocol"
)

// Info contains server identity exposed to clients. It is set at
// construction and immutable thereafter.
type Info struct {
	Name    string
	Version string
}

// Manifest represents the server manifest returned during initialization.
type Manifest struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocolVersion"`
}

// ToolInfo represents metadata about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
	InputSchema any
}

// Registry is the capability interface the request dispatcher consumes.
// Tools returns the static catalog in registration order, stable across
// calls. CallTool runs the named tool with an opaque argument bag; it may
// block for unbounded wall-clock time when the tool performs network I/O.
type Registry interface {
	Manifest() Manifest
	Tools() []ToolInfo
	HasTool(name string) bool
	CallTool(ctx context.Context, name string, args json.RawMessage) ([]Content, error)
}

// Server is the production Registry implementation.
type Server struct {
	mu sync.RWMutex

	info  Info
	tools map[string]*Tool
	order []string
}

// New creates a new server with the given identity.
func New(info Info) *Server {
	return &Server{
		info:  info,
		tools: make(map[string]*Tool),
	}
}

// Info returns the server identity.
func (s *Server) Info() Info {
	return s.info
}

// Manifest returns the server manifest for MCP initialization.
func (s *Server) Manifest() Manifest {
	return Manifest{
		Name:            s.info.Name,
		Version:         s.info.Version,
		ProtocolVersion: protocol.MCPVersion,
	}
}

// Tool starts building a new tool with the given name.
func (s *Server) Tool(name string) *ToolBuilder {
	return &ToolBuilder{
		tool: &Tool{
			name: name,
		},
		server: s,
	}
}

// Tools returns the catalog in registration order.
func (s *Server) Tools() []ToolInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ToolInfo, 0, len(s.order))
	for _, name := range s.order {
		t := s.tools[name]
		result = append(result, ToolInfo{
			Name:        t.name,
			Description: t.description,
			InputSchema: t.inputSchema,
		})
	}
	return result
}

// HasTool reports whether a tool with the given name is registered.
func (s *Server) HasTool(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tools[name]
	return ok
}

// CallTool executes the named tool and wraps its result into content blocks.
func (s *Server) CallTool(ctx context.Context, name string, args json.RawMessage) ([]Content, error) {
	s.mu.RLock()
	t, ok := s.tools[name]
	s.mu.RUnlock()
	if !ok {
		return nil, protocol.NewMethodNotFound("Unknown tool: " + name)
	}

	result, err := t.Execute(ctx, args)
	if err != nil {
		return nil, err
	}

	return wrapContent(result)
}

// registerTool adds a tool to the server, keeping registration order.
// Re-registering a name replaces the tool in place.
func (s *Server) registerTool(t *Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tools[t.name]; !exists {
		s.order = append(s.order, t.name)
	}
	s.tools[t.name] = t
}

// getTool retrieves a tool by name.
func (s *Server) getTool(name string) (*Tool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tools[name]
	return t, ok
}

// GetTool retrieves a tool by name (public).
func (s *Server) GetTool(name string) (*Tool, bool) {
	return s.getTool(name)
}

// wrapContent converts a handler result into content blocks. Handlers may
// return content blocks directly, a single block, or a plain string; any
// other value is serialized to JSON text.
func wrapContent(result any) ([]Content, error) {
	switch v := result.(type) {
	case []Content:
		return v, nil
	case Content:
		return []Content{v}, nil
	case string:
		return []Content{NewTextContent(v)}, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, protocol.NewInternalError("failed to encode tool result: " + err.Error())
		}
		return []Content{NewTextContent(string(data))}, nil
	}
}
