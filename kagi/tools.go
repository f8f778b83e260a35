package kagi

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmylchreest/kagi-mcp-server/server"
)

type searchInput struct {
	Queries []string `json:"queries" jsonschema:"required,description=One or more concise, keyword-focused search queries. Include essential context within each query for standalone use."`
}

type summarizerInput struct {
	URL            string `json:"url" jsonschema:"required,description=A URL to a document to summarize."`
	SummaryType    string `json:"summary_type,omitempty" jsonschema:"enum=summary|takeaway,default=summary,description=Type of summary to produce. Options are 'summary' for paragraph prose and 'takeaway' for a bulleted list of key points."`
	Engine         string `json:"engine,omitempty" jsonschema:"enum=cecil|agnes|daphne|muriel,description=Summarization engine to use. Defaults to configured engine."`
	TargetLanguage string `json:"target_language,omitempty" jsonschema:"description=Desired output language using language codes (e.g., 'EN' for English). If not specified, the document's original language influences the output."`
}

type fastGPTInput struct {
	Query string `json:"query" jsonschema:"required,description=A question to answer with a cited web search."`
}

type enrichInput struct {
	Query string `json:"query" jsonschema:"required,description=A concise search query to enrich with non-mainstream web results."`
}

// Register adds the Kagi tools to the server in a fixed order so tools/list
// output is stable across runs.
func Register(srv *server.Server, client *Client, cfg *Config) error {
	searchLimit := cfg.SearchLimit
	if searchLimit <= 0 {
		searchLimit = 10
	}
	defaultEngine := cfg.DefaultEngine()

	err := srv.Tool("kagi_search_fetch").
		Description("Fetch web results based on one or more queries using the Kagi Search API. Use for general search and when the user explicitly tells you to 'fetch' results/information. Results are from all queries given. They are numbered continuously, so that a user may be able to refer to a result by a specific number.").
		Handler(func(ctx context.Context, input searchInput) (string, error) {
			var all strings.Builder
			number := 1
			for i, query := range input.Queries {
				resp, err := client.Search(ctx, query, searchLimit)
				if err != nil {
					return "", fmt.Errorf("Search failed for query '%s': %w", query, err)
				}
				if i > 0 {
					all.WriteByte('\n')
				}
				block, next := FormatSearchResults(query, resp.Data, number)
				all.WriteString(block)
				number = next
			}
			return all.String(), nil
		}).Err()
	if err != nil {
		return err
	}

	err = srv.Tool("kagi_summarizer").
		Description("Summarize content from a URL using the Kagi Summarizer API. The Summarizer can summarize any document type (text webpage, video, audio, etc.)").
		Handler(func(ctx context.Context, input summarizerInput) (string, error) {
			summary, err := client.Summarize(ctx, SummarizeRequest{
				URL:            input.URL,
				Engine:         ParseEngine(input.Engine, defaultEngine),
				SummaryType:    ParseSummaryType(input.SummaryType),
				TargetLanguage: input.TargetLanguage,
			})
			if err != nil {
				return "", fmt.Errorf("Summarization failed: %w", err)
			}
			return summary.Output, nil
		}).Err()
	if err != nil {
		return err
	}

	err = srv.Tool("kagi_fastgpt").
		Description("Answer a question using Kagi FastGPT, which runs a web search and generates a concise answer with numbered references to its sources.").
		Handler(func(ctx context.Context, input fastGPTInput) (string, error) {
			answer, err := client.FastGPT(ctx, input.Query)
			if err != nil {
				return "", fmt.Errorf("FastGPT failed: %w", err)
			}
			return FormatFastGPT(answer), nil
		}).Err()
	if err != nil {
		return err
	}

	return srv.Tool("kagi_enrich").
		Description("Fetch supplemental web results from the Kagi Enrichment API, which indexes the non-commercial, small web. Use when mainstream search results are not enough.").
		Handler(func(ctx context.Context, input enrichInput) (string, error) {
			resp, err := client.EnrichWeb(ctx, input.Query)
			if err != nil {
				return "", fmt.Errorf("Enrichment failed for query '%s': %w", input.Query, err)
			}
			block, _ := FormatSearchResults(input.Query, resp.Data, 1)
			return block, nil
		}).Err()
}
