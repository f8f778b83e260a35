package kagi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go"
)

// Client talks to the Kagi APIs. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	attempts   uint
	retryDelay time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetryAttempts sets the number of tries per API call. 1 disables retry.
func WithRetryAttempts(n uint) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithRetryDelay sets the base delay between retries.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// NewClient creates a Kagi API client authenticating with the given key.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromConfig creates a client from a validated Config.
func NewClientFromConfig(cfg *Config) *Client {
	return NewClient(cfg.APIKey,
		WithBaseURL(cfg.BaseURL),
		WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		WithRetryAttempts(cfg.RetryAttempts),
	)
}

// Search runs a web search. A limit of 0 uses the API default.
func (c *Client) Search(ctx context.Context, query string, limit int) (*SearchResponse, error) {
	body := map[string]any{"q": query}
	if limit > 0 {
		body["limit"] = limit
	}

	var resp SearchResponse
	if err := c.post(ctx, "/search", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SummarizeRequest describes a Universal Summarizer call. Exactly one of URL
// or Text must be set.
type SummarizeRequest struct {
	URL            string
	Text           string
	Engine         Engine
	SummaryType    SummaryType
	TargetLanguage string
}

// Summarize produces a summary of a document by URL or of raw text.
func (c *Client) Summarize(ctx context.Context, req SummarizeRequest) (*SummaryData, error) {
	if (req.URL == "") == (req.Text == "") {
		return nil, errors.New("kagi: exactly one of URL or Text must be set")
	}

	body := map[string]any{}
	if req.URL != "" {
		body["url"] = req.URL
	} else {
		body["text"] = req.Text
	}
	if req.Engine != "" {
		body["engine"] = string(req.Engine)
	}
	if req.SummaryType != "" {
		body["summary_type"] = string(req.SummaryType)
	}
	if req.TargetLanguage != "" {
		body["target_language"] = req.TargetLanguage
	}

	var resp SummaryResponse
	if err := c.post(ctx, "/summarize", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// FastGPT asks FastGPT a question and returns the answer with references.
func (c *Client) FastGPT(ctx context.Context, query string) (*FastGPTData, error) {
	var resp FastGPTResponse
	if err := c.post(ctx, "/fastgpt", map[string]any{"query": query}, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// EnrichWeb fetches supplemental, non-mainstream web results for a query
// from the Enrichment API.
func (c *Client) EnrichWeb(ctx context.Context, query string) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.get(ctx, "/enrich/web", url.Values{"q": {query}}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Balance reports the remaining API credit. The Search API exposes it in
// response metadata; there is no dedicated endpoint.
func (c *Client) Balance(ctx context.Context) (float64, error) {
	resp, err := c.Search(ctx, "test", 1)
	if err != nil {
		return 0, err
	}
	if resp.Meta.APIBalance == nil {
		return 0, &APIError{Status: http.StatusNotFound, Message: "balance not available"}
	}
	return *resp.Meta.APIBalance, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("kagi: encode request: %w", err)
	}
	return c.do(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	}, out)
}

// do issues the request with retry on transient failures. Client errors
// (4xx) are returned immediately; 5xx and transport errors are retried.
func (c *Client) do(ctx context.Context, newReq func() (*http.Request, error), out any) error {
	return retry.Do(
		func() error {
			req, err := newReq()
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("kagi: build request: %w", err))
			}
			req.Header.Set("Authorization", "Bot "+c.apiKey)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("kagi: request failed: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
				apiErr := &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(msg))}
				if !apiErr.Temporary() {
					return retry.Unrecoverable(apiErr)
				}
				return apiErr
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(fmt.Errorf("kagi: decode response: %w", err))
			}
			return nil
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
}
