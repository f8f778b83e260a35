// Package kagi provides a client for the Kagi Search, Universal Summarizer,
// FastGPT, and Enrichment APIs, plus the tool registrations that expose them
// over MCP.
//
// API references:
//   - https://help.kagi.com/kagi/api/search.html
//   - https://help.kagi.com/kagi/api/summarizer.html
//   - https://help.kagi.com/kagi/api/fastgpt.html
//   - https://help.kagi.com/kagi/api/enrich.html
package kagi
