package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

const (
	geminiDefaultBaseURL = "https://generativelanguage.googleapis.com"
	geminiDefaultModel   = "gemini-2.5-flash"
)

// Gemini completes prompts against the Google generateContent API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// GeminiOption configures a Gemini adapter.
type GeminiOption func(*Gemini)

// WithGeminiModel overrides the model identifier.
func WithGeminiModel(model string) GeminiOption {
	return func(g *Gemini) { g.model = model }
}

// WithGeminiBaseURL overrides the API host. Tests point this at a local server.
func WithGeminiBaseURL(baseURL string) GeminiOption {
	return func(g *Gemini) { g.baseURL = baseURL }
}

// WithGeminiHTTPClient overrides the HTTP client (and with it, the timeout).
func WithGeminiHTTPClient(client *http.Client) GeminiOption {
	return func(g *Gemini) { g.client = client }
}

// WithGeminiLimiter paces requests with a client-side rate limiter.
func WithGeminiLimiter(limiter *rate.Limiter) GeminiOption {
	return func(g *Gemini) { g.limiter = limiter }
}

// NewGemini creates a Gemini adapter. An empty apiKey yields an adapter that
// reports itself unavailable.
func NewGemini(apiKey string, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		apiKey:  apiKey,
		model:   geminiDefaultModel,
		baseURL: geminiDefaultBaseURL,
		client:  defaultClient,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name implements Adapter.
func (g *Gemini) Name() string { return "Gemini" }

// Available implements Adapter.
func (g *Gemini) Available() bool { return g.apiKey != "" }

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete implements Adapter.
func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	if err := waitLimiter(ctx, g.limiter); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s",
		g.baseURL, g.model, url.QueryEscape(g.apiKey))

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:     defaultTemperature,
			MaxOutputTokens: defaultMaxTokens,
		},
	}

	var resp geminiResponse
	if err := doJSON(ctx, g.client, endpoint, nil, body, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
