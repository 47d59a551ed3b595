package provider

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"
)

const (
	groqDefaultBaseURL = "https://api.groq.com"
	groqDefaultModel   = "llama-3.3-70b-versatile"
)

// Groq completes prompts against the Groq OpenAI-compatible chat API.
type Groq struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// GroqOption configures a Groq adapter.
type GroqOption func(*Groq)

// WithGroqModel overrides the model identifier.
func WithGroqModel(model string) GroqOption {
	return func(g *Groq) { g.model = model }
}

// WithGroqBaseURL overrides the API host. Tests point this at a local server.
func WithGroqBaseURL(baseURL string) GroqOption {
	return func(g *Groq) { g.baseURL = baseURL }
}

// WithGroqHTTPClient overrides the HTTP client (and with it, the timeout).
func WithGroqHTTPClient(client *http.Client) GroqOption {
	return func(g *Groq) { g.client = client }
}

// WithGroqLimiter paces requests with a client-side rate limiter.
func WithGroqLimiter(limiter *rate.Limiter) GroqOption {
	return func(g *Groq) { g.limiter = limiter }
}

// NewGroq creates a Groq adapter. An empty apiKey yields an adapter that
// reports itself unavailable.
func NewGroq(apiKey string, opts ...GroqOption) *Groq {
	g := &Groq{
		apiKey:  apiKey,
		model:   groqDefaultModel,
		baseURL: groqDefaultBaseURL,
		client:  defaultClient,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name implements Adapter.
func (g *Groq) Name() string { return "Groq" }

// Available implements Adapter.
func (g *Groq) Available() bool { return g.apiKey != "" }

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

// Complete implements Adapter.
func (g *Groq) Complete(ctx context.Context, prompt string) (string, error) {
	if err := waitLimiter(ctx, g.limiter); err != nil {
		return "", err
	}

	body := groqRequest{
		Model:       g.model,
		Messages:    []groqMessage{{Role: "user", Content: prompt}},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + g.apiKey}

	var resp groqResponse
	if err := doJSON(ctx, g.client, g.baseURL+"/openai/v1/chat/completions", headers, body, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
