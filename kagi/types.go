package kagi

import "fmt"

// Result type discriminator values in search responses.
const (
	ResultTypeSearch  = 0
	ResultTypeRelated = 1
)

// SearchResponse is the Search API response envelope.
type SearchResponse struct {
	Meta Meta           `json:"meta"`
	Data []SearchResult `json:"data"`
}

// Meta carries per-request accounting common to all Kagi API responses.
type Meta struct {
	ID         string   `json:"id"`
	Node       string   `json:"node"`
	MS         int64    `json:"ms"`
	APIBalance *float64 `json:"api_balance,omitempty"`
}

// SearchResult is a single row from the Search API. Rows with Type 0 are
// search results; Type 1 rows are related-search suggestions and carry no
// URL or snippet.
type SearchResult struct {
	Type      int        `json:"t"`
	Rank      *int       `json:"rank,omitempty"`
	URL       string     `json:"url"`
	Title     string     `json:"title"`
	Snippet   string     `json:"snippet"`
	Published string     `json:"published,omitempty"`
	Thumbnail *Thumbnail `json:"thumbnail,omitempty"`
	List      []string   `json:"list,omitempty"`
}

// Thumbnail is an optional preview image attached to a search result.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  *int   `json:"width,omitempty"`
	Height *int   `json:"height,omitempty"`
}

// SummaryResponse is the Universal Summarizer response envelope.
type SummaryResponse struct {
	Meta Meta        `json:"meta"`
	Data SummaryData `json:"data"`
}

// SummaryData is the summarizer payload.
type SummaryData struct {
	Output string `json:"output"`
	Tokens int    `json:"tokens,omitempty"`
}

// FastGPTResponse is the FastGPT response envelope.
type FastGPTResponse struct {
	Meta Meta        `json:"meta"`
	Data FastGPTData `json:"data"`
}

// FastGPTData is the FastGPT answer payload.
type FastGPTData struct {
	Output     string             `json:"output"`
	Tokens     int                `json:"tokens,omitempty"`
	References []FastGPTReference `json:"references,omitempty"`
}

// FastGPTReference is a source citation attached to a FastGPT answer.
type FastGPTReference struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Engine selects the Universal Summarizer model.
type Engine string

// Summarizer engines, in ascending quality and cost.
const (
	EngineCecil  Engine = "cecil"
	EngineAgnes  Engine = "agnes"
	EngineDaphne Engine = "daphne"
	EngineMuriel Engine = "muriel"
)

// ParseEngine maps an engine name to an Engine, falling back to the given
// default for unrecognized names.
func ParseEngine(s string, fallback Engine) Engine {
	switch Engine(s) {
	case EngineCecil, EngineAgnes, EngineDaphne, EngineMuriel:
		return Engine(s)
	default:
		return fallback
	}
}

// SummaryType selects the output shape of the summarizer.
type SummaryType string

const (
	SummaryTypeSummary  SummaryType = "summary"
	SummaryTypeTakeaway SummaryType = "takeaway"
)

// ParseSummaryType maps a summary type name, defaulting to SummaryTypeSummary.
func ParseSummaryType(s string) SummaryType {
	if SummaryType(s) == SummaryTypeTakeaway {
		return SummaryTypeTakeaway
	}
	return SummaryTypeSummary
}

// APIError is a non-2xx response from the Kagi API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("kagi: API error: %d - %s", e.Status, e.Message)
}

// Temporary reports whether the error is worth retrying.
func (e *APIError) Temporary() bool {
	return e.Status >= 500
}
