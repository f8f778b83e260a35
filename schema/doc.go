// Package schema provides JSON Schema generation from Go types.
//
// Schemas are generated via reflection from the struct type of a tool's
// input. Field metadata is declared with `jsonschema` struct tags:
//
//	type SummarizerInput struct {
//	    URL  string `json:"url" jsonschema:"required,description=A URL to a document to summarize."`
//	    Type string `json:"summary_type" jsonschema:"enum=summary|takeaway,default=summary"`
//	}
//
// Supported tag directives: required, enum= (values separated by |),
// default=, and description=. The description directive consumes the rest of
// the tag so the text may contain commas; it must be the last directive.
package schema
