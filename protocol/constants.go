package protocol

// MCPVersion is the protocol revision reported during initialization.
const MCPVersion = "2024-11-05"

// MCP method names.
const (
	MethodInitialize = "initialize"
	MethodToolsList  = "tools/list"
	MethodToolsCall  = "tools/call"
)
