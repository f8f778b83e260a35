package kagi

import (
	"strings"
	"testing"
)

func TestFormatSearchResults(t *testing.T) {
	t.Run("formats numbered results", func(t *testing.T) {
		results := []SearchResult{
			{Type: 0, Title: "Go", URL: "https://go.dev", Snippet: "The Go programming language", Published: "2024-01-15"},
			{Type: 0, Title: "Go blog", URL: "https://go.dev/blog", Snippet: "News from the Go team"},
		}

		got, next := FormatSearchResults("golang", results, 1)

		want := "-----\nResults for search query \"golang\":\n-----\n" +
			"1: Go\nhttps://go.dev\nPublished Date: 2024-01-15\nThe Go programming language\n\n" +
			"2: Go blog\nhttps://go.dev/blog\nPublished Date: Not Available\nNews from the Go team\n\n"
		if got != want {
			t.Errorf("block = %q, want %q", got, want)
		}
		if next != 3 {
			t.Errorf("next = %d, want 3", next)
		}
	})

	t.Run("skips related search rows", func(t *testing.T) {
		results := []SearchResult{
			{Type: 0, Title: "Hit", URL: "https://a.example", Snippet: "s"},
			{Type: 1, List: []string{"related one", "related two"}},
			{Type: 0, Title: "Other", URL: "https://b.example", Snippet: "s"},
		}

		got, next := FormatSearchResults("q", results, 1)

		if next != 3 {
			t.Errorf("next = %d, want 3", next)
		}
		for _, unwanted := range []string{"related one", "3:"} {
			if strings.Contains(got, unwanted) {
				t.Errorf("block contains %q:\n%s", unwanted, got)
			}
		}
	})

	t.Run("continues numbering across blocks", func(t *testing.T) {
		first := []SearchResult{{Type: 0, Title: "A", URL: "u", Snippet: "s"}}
		second := []SearchResult{{Type: 0, Title: "B", URL: "u", Snippet: "s"}}

		_, next := FormatSearchResults("one", first, 1)
		got, _ := FormatSearchResults("two", second, next)

		if !strings.Contains(got, "2: B") {
			t.Errorf("expected second block to start at 2:\n%s", got)
		}
	})

	t.Run("empty results keep the header", func(t *testing.T) {
		got, next := FormatSearchResults("nothing", nil, 5)

		if got != "-----\nResults for search query \"nothing\":\n-----\n" {
			t.Errorf("block = %q", got)
		}
		if next != 5 {
			t.Errorf("next = %d, want 5", next)
		}
	})
}

func TestFormatFastGPT(t *testing.T) {
	t.Run("answer with references", func(t *testing.T) {
		data := &FastGPTData{
			Output: "Go is a programming language.",
			References: []FastGPTReference{
				{Title: "Go", URL: "https://go.dev", Snippet: "The Go programming language"},
			},
		}

		got := FormatFastGPT(data)

		want := "Go is a programming language.\n\nReferences:\n" +
			"1: Go\nhttps://go.dev\nThe Go programming language\n\n"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("answer without references", func(t *testing.T) {
		got := FormatFastGPT(&FastGPTData{Output: "42"})
		if got != "42" {
			t.Errorf("got %q, want 42", got)
		}
	})
}
