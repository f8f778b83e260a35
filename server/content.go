package server

// Content is a typed unit of tool-invocation output returned to the caller.
type Content interface {
	isContent()
}

// TextContent represents a text fragment produced by a tool.
type TextContent struct {
	Type string `json:"type"` // Always "text"
	Text string `json:"text"`
}

func (TextContent) isContent() {}

// NewTextContent creates a text content block.
func NewTextContent(text string) TextContent {
	return TextContent{Type: "text", Text: text}
}

// ImageContent represents image data produced by a tool.
type ImageContent struct {
	Type     string `json:"type"` // Always "image"
	Data     string `json:"data"` // Base64 encoded
	MimeType string `json:"mimeType"`
}

func (ImageContent) isContent() {}
