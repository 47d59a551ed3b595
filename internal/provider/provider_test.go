package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"golang.org/x/time/rate"

	"github.com/kivosy/factory/internal/provider"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGemini_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("path = %s, want generateContent endpoint", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("key = %q, want %q", got, "test-key")
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		if _, ok := req["contents"]; !ok {
			t.Error("request missing contents field")
		}
		if _, ok := req["generationConfig"]; !ok {
			t.Error("request missing generationConfig field")
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"<html>ok</html>"}]}}]}`)); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer srv.Close()

	g := provider.NewGemini("test-key",
		provider.WithGeminiBaseURL(srv.URL),
		provider.WithGeminiHTTPClient(srv.Client()))

	got, err := g.Complete(context.Background(), "make an app")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "<html>ok</html>" {
		t.Errorf("completion = %q, want %q", got, "<html>ok</html>")
	}
}

func TestGemini_ErrorMessageSurfaced(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		if _, err := w.Write([]byte(`{"error":{"message":"quota exhausted for model"}}`)); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer srv.Close()

	g := provider.NewGemini("k",
		provider.WithGeminiBaseURL(srv.URL),
		provider.WithGeminiHTTPClient(srv.Client()))

	_, err := g.Complete(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "quota exhausted for model" {
		t.Errorf("error = %q, want provider message", err)
	}
}

func TestGemini_BareStatusWhenBodyUnparseable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		if _, err := w.Write([]byte("upstream exploded")); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer srv.Close()

	g := provider.NewGemini("k",
		provider.WithGeminiBaseURL(srv.URL),
		provider.WithGeminiHTTPClient(srv.Client()))

	_, err := g.Complete(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "HTTP 502" {
		t.Errorf("error = %q, want %q", err, "HTTP 502")
	}
}

func TestGemini_EmptyCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"candidates":[]}`)); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer srv.Close()

	g := provider.NewGemini("k",
		provider.WithGeminiBaseURL(srv.URL),
		provider.WithGeminiHTTPClient(srv.Client()))

	_, err := g.Complete(context.Background(), "p")
	if !errors.Is(err, provider.ErrEmptyCompletion) {
		t.Errorf("error = %v, want ErrEmptyCompletion", err)
	}
}

func TestGemini_LimiterBlocksRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server when the limiter denies it")
	}))
	defer srv.Close()

	// A zero-burst limiter can never admit a request.
	g := provider.NewGemini("k",
		provider.WithGeminiBaseURL(srv.URL),
		provider.WithGeminiHTTPClient(srv.Client()),
		provider.WithGeminiLimiter(rate.NewLimiter(rate.Every(time.Minute), 0)))

	if _, err := g.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected limiter error")
	}
}

func TestGemini_LimiterHonorsContextDeadline(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if _, err := w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer srv.Close()

	// Burst of one: the first call passes, the second must wait an hour.
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	g := provider.NewGemini("k",
		provider.WithGeminiBaseURL(srv.URL),
		provider.WithGeminiHTTPClient(srv.Client()),
		provider.WithGeminiLimiter(limiter))

	if _, err := g.Complete(context.Background(), "p"); err != nil {
		t.Fatalf("first Complete: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := g.Complete(ctx, "p"); err == nil {
		t.Fatal("expected error when the wait exceeds the context deadline")
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("requests = %d, want 1", got)
	}
}

func TestGroq_LimiterBlocksRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server when the limiter denies it")
	}))
	defer srv.Close()

	g := provider.NewGroq("k",
		provider.WithGroqBaseURL(srv.URL),
		provider.WithGroqHTTPClient(srv.Client()),
		provider.WithGroqLimiter(rate.NewLimiter(rate.Every(time.Minute), 0)))

	if _, err := g.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected limiter error")
	}
}

func TestGroq_Complete(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Errorf("path = %s, want /openai/v1/chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer groq-key" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		if req.Model == "" {
			t.Error("request missing model")
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v, want single user message", req.Messages)
		}

		if _, err := w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"<html>groq</html>"}}]}`)); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer srv.Close()

	g := provider.NewGroq("groq-key",
		provider.WithGroqBaseURL(srv.URL),
		provider.WithGroqHTTPClient(srv.Client()))

	got, err := g.Complete(context.Background(), "make an app")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "<html>groq</html>" {
		t.Errorf("completion = %q, want %q", got, "<html>groq</html>")
	}
}

func TestGroq_ErrorMessageSurfaced(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		if _, err := w.Write([]byte(`{"error":{"message":"invalid api key"}}`)); err != nil {
			t.Errorf("writing response: %v", err)
		}
	}))
	defer srv.Close()

	g := provider.NewGroq("bad",
		provider.WithGroqBaseURL(srv.URL),
		provider.WithGroqHTTPClient(srv.Client()))

	_, err := g.Complete(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "invalid api key" {
		t.Errorf("error = %q, want provider message", err)
	}
}

func TestAvailability(t *testing.T) {
	t.Parallel()

	if provider.NewGemini("").Available() {
		t.Error("Gemini without key must be unavailable")
	}
	if !provider.NewGemini("k").Available() {
		t.Error("Gemini with key must be available")
	}
	if provider.NewGroq("").Available() {
		t.Error("Groq without key must be unavailable")
	}
	if !provider.NewGroq("k").Available() {
		t.Error("Groq with key must be available")
	}
}
