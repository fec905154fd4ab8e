package ai

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL       = "https://generativelanguage.googleapis.com/v1beta"
	defaultGenerateModel = "gemini-2.0-flash-exp"
	defaultEmbedModel    = "text-embedding-004"
)

// Error represents a provider-side AI failure. Callers recover from it with
// deterministic fallbacks instead of failing the user-visible operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ai %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Config struct {
	APIKey        string
	BaseURL       string
	GenerateModel string
	EmbedModel    string
}

// Client calls the Google AI Studio (Gemini) API over REST.
type Client struct {
	apiKey        string
	baseURL       string
	generateModel string
	embedModel    string
	httpClient    *http.Client
}

// NewClient constructs a client. An empty API key is allowed: every call
// then fails with *Error and the ingestion/search fallbacks take over.
func NewClient(config Config) *Client {
	return &Client{
		apiKey:        strings.TrimSpace(config.APIKey),
		baseURL:       cmp.Or(config.BaseURL, defaultBaseURL),
		generateModel: cmp.Or(config.GenerateModel, defaultGenerateModel),
		embedModel:    cmp.Or(config.EmbedModel, defaultEmbedModel),
		httpClient:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GenerateSummary produces a concise natural-language summary of the
// article content.
func (c *Client) GenerateSummary(ctx context.Context, content, title string) (string, error) {
	if c.apiKey == "" {
		return "", &Error{Op: "summarize", Err: fmt.Errorf("api key not configured")}
	}

	prompt := fmt.Sprintf(`Please provide a concise summary of this article titled %q:

%s

Focus on the key points, main arguments, and practical insights. Keep it under 200 words and make it informative for someone building a knowledge base.`, title, content)

	reqBody := generateRequest{
		Contents: []generateContent{
			{
				Role:  "user",
				Parts: []part{{Text: prompt}},
			},
		},
	}

	var resp generateResponse
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.generateModel, c.apiKey)
	if err := c.doJSON(ctx, url, reqBody, &resp); err != nil {
		return "", &Error{Op: "summarize", Err: err}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &Error{Op: "summarize", Err: fmt.Errorf("empty response")}
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// EmbedText generates an embedding vector for the input text.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float64, error) {
	if c.apiKey == "" {
		return nil, &Error{Op: "embed", Err: fmt.Errorf("api key not configured")}
	}

	reqBody := embedRequest{
		Content: generateContent{
			Parts: []part{{Text: text}},
		},
	}

	var resp embedResponse
	url := fmt.Sprintf("%s/models/%s:embedContent?key=%s", c.baseURL, c.embedModel, c.apiKey)
	if err := c.doJSON(ctx, url, reqBody, &resp); err != nil {
		return nil, &Error{Op: "embed", Err: err}
	}

	if len(resp.Embedding.Values) == 0 {
		return nil, &Error{Op: "embed", Err: fmt.Errorf("empty embedding")}
	}

	return resp.Embedding.Values, nil
}

func (c *Client) doJSON(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error.Message != "" {
			return fmt.Errorf("gemini api error: %s", errResp.Error.Message)
		}
		return fmt.Errorf("gemini api error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}

	return nil
}

type part struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

type embedRequest struct {
	Content generateContent `json:"content"`
}

type embedResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
