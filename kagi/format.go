package kagi

import (
	"fmt"
	"strings"
)

// FormatSearchResults renders one query's results as the text block handed
// to the model. Only plain search rows are numbered; related-search rows are
// skipped. Numbering starts at start so results from consecutive queries are
// numbered continuously and a user can refer to "result 7" unambiguously.
// Returns the block and the next number to use.
func FormatSearchResults(query string, results []SearchResult, start int) (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "-----\nResults for search query \"%s\":\n-----\n", query)

	n := start
	for _, r := range results {
		if r.Type != ResultTypeSearch {
			continue
		}
		published := r.Published
		if published == "" {
			published = "Not Available"
		}
		fmt.Fprintf(&b, "%d: %s\n%s\nPublished Date: %s\n%s\n\n", n, r.Title, r.URL, published, r.Snippet)
		n++
	}
	return b.String(), n
}

// FormatFastGPT renders a FastGPT answer with its numbered references.
func FormatFastGPT(data *FastGPTData) string {
	var b strings.Builder
	b.WriteString(data.Output)

	if len(data.References) > 0 {
		b.WriteString("\n\nReferences:\n")
		for i, ref := range data.References {
			fmt.Fprintf(&b, "%d: %s\n%s\n%s\n\n", i+1, ref.Title, ref.URL, ref.Snippet)
		}
	}
	return b.String()
}
