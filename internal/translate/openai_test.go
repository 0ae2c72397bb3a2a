package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Mock completion server: swap DefaultHTTPClient and point BaseURL at it.
func setupCompletionServer(t *testing.T, status int, body string) *OpenAIClient {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization header = %q, want Bearer test-key", got)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	oldClient := DefaultHTTPClient
	DefaultHTTPClient = server.Client()
	t.Cleanup(func() { DefaultHTTPClient = oldClient })

	client := NewOpenAIClient("test-key")
	client.BaseURL = server.URL
	return client
}

func completionBody(content string) string {
	return `{"choices":[{"message":{"content":` + jsonString(content) + `}}]}`
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}
	return out + `"`
}

func TestOpenAIClient_TranslateQuery(t *testing.T) {
	client := setupCompletionServer(t, http.StatusOK, completionBody(`product:"apache" country:"CL"`))

	query, err := client.TranslateQuery(context.Background(), "servidores apache en chile")
	if err != nil {
		t.Fatalf("TranslateQuery returned an error: %v", err)
	}
	if query != `product:"apache" country:"CL"` {
		t.Errorf("query = %q, want the raw completion content", query)
	}
}

func TestOpenAIClient_TranslateQuery_FirstLineOnly(t *testing.T) {
	client := setupCompletionServer(t, http.StatusOK,
		completionBody("port:3389 country:\"AR\"\nThis query finds exposed RDP."))

	query, err := client.TranslateQuery(context.Background(), "rdp en argentina")
	if err != nil {
		t.Fatalf("TranslateQuery returned an error: %v", err)
	}
	if query != `port:3389 country:"AR"` {
		t.Errorf("query = %q, want only the first line", query)
	}
}

func TestOpenAIClient_TranslateQuery_StripsCodeFences(t *testing.T) {
	client := setupCompletionServer(t, http.StatusOK,
		completionBody("```\nproduct:\"nginx\"\n```"))

	query, err := client.TranslateQuery(context.Background(), "nginx servers")
	if err != nil {
		t.Fatalf("TranslateQuery returned an error: %v", err)
	}
	if query != `product:"nginx"` {
		t.Errorf("query = %q, want fences stripped", query)
	}
}

func TestOpenAIClient_TranslateQuery_EmptyCompletion(t *testing.T) {
	client := setupCompletionServer(t, http.StatusOK, completionBody("   \n  "))

	if _, err := client.TranslateQuery(context.Background(), "anything"); err == nil {
		t.Error("expected an error for an empty completion, got nil")
	}
}

func TestOpenAIClient_TranslateQuery_NoChoices(t *testing.T) {
	client := setupCompletionServer(t, http.StatusOK, `{"choices":[]}`)

	if _, err := client.TranslateQuery(context.Background(), "anything"); err == nil {
		t.Error("expected an error when the response has no choices, got nil")
	}
}

func TestOpenAIClient_TranslateQuery_APIError(t *testing.T) {
	client := setupCompletionServer(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided"}}`)

	_, err := client.TranslateQuery(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected an error for a 401 response, got nil")
	}
}
