package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSelectMode(t *testing.T) {
	tests := []struct {
		openAIKey string
		noAI      bool
		want      Mode
	}{
		{"", false, ModeHeuristic},
		{"", true, ModeHeuristic},
		{"sk-key", false, ModeAI},
		{"sk-key", true, ModeHeuristic},
	}
	for _, tt := range tests {
		if got := SelectMode(tt.openAIKey, tt.noAI); got != tt.want {
			t.Errorf("SelectMode(%q, %v) = %v, want %v", tt.openAIKey, tt.noAI, got, tt.want)
		}
	}
}

func TestTranslator_NoCredentialNeverCallsAI(t *testing.T) {
	// A server that fails the test if it receives any request.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("AI endpoint was called despite missing credential")
	}))
	defer server.Close()

	oldClient := DefaultHTTPClient
	DefaultHTTPClient = server.Client()
	defer func() { DefaultHTTPClient = oldClient }()

	tr := NewTranslator("", false)
	if tr.AIClient() != nil {
		t.Fatal("expected no AI client without a credential")
	}

	result := tr.Translate(context.Background(), "servidores apache en chile")
	if result.Query == "" {
		t.Error("heuristic path produced an empty query")
	}
	if !strings.Contains(result.Source, "heuristic") {
		t.Errorf("Source = %q, want the heuristic path", result.Source)
	}
}

func TestTranslator_AIFailureFallsBackToHeuristic(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"server overloaded"}}`))
	}))
	defer server.Close()

	oldClient := DefaultHTTPClient
	DefaultHTTPClient = server.Client()
	defer func() { DefaultHTTPClient = oldClient }()

	tr := NewTranslator("sk-key", false)
	tr.AIClient().BaseURL = server.URL

	result := tr.Translate(context.Background(), "servidores apache en chile")
	if !strings.Contains(result.Query, `product:"apache"`) || !strings.Contains(result.Query, `country:"CL"`) {
		t.Errorf("fallback query = %q, want heuristic fragments", result.Query)
	}
	if !strings.Contains(result.Source, "heuristic") {
		t.Errorf("Source = %q, want the heuristic path after AI failure", result.Source)
	}
}

func TestTranslator_AISuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"product:\"apache\" country:\"CL\""}}]}`))
	}))
	defer server.Close()

	oldClient := DefaultHTTPClient
	DefaultHTTPClient = server.Client()
	defer func() { DefaultHTTPClient = oldClient }()

	tr := NewTranslator("sk-key", false)
	tr.AIClient().BaseURL = server.URL

	result := tr.Translate(context.Background(), "servidores apache en chile")
	if result.Query != `product:"apache" country:"CL"` {
		t.Errorf("Query = %q, want the AI completion", result.Query)
	}
	if !strings.Contains(result.Source, "OpenAI") {
		t.Errorf("Source = %q, want the AI path", result.Source)
	}
}

func TestTranslator_NoAIFlagSkipsAI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("AI endpoint was called despite --no-ai")
	}))
	defer server.Close()

	oldClient := DefaultHTTPClient
	DefaultHTTPClient = server.Client()
	defer func() { DefaultHTTPClient = oldClient }()

	tr := NewTranslator("sk-key", true)
	tr.AIClient().BaseURL = server.URL

	result := tr.Translate(context.Background(), "nginx in spain")
	if !strings.Contains(result.Source, "heuristic") {
		t.Errorf("Source = %q, want the heuristic path with --no-ai", result.Source)
	}
}
