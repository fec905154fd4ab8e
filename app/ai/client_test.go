package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestClient_GenerateSummary(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("Expected api key in query, got '%s'", r.URL.Query().Get("key"))
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Fatal("Expected a single prompt part")
		}
		if !strings.Contains(req.Contents[0].Parts[0].Text, "Test Article") {
			t.Error("Expected prompt to reference the article title")
		}

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "A concise summary."}}}},
			},
		})
	})

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	summary, err := client.GenerateSummary(context.Background(), "article body", "Test Article")
	if err != nil {
		t.Fatalf("GenerateSummary failed: %v", err)
	}
	if summary != "A concise summary." {
		t.Errorf("Expected summary 'A concise summary.', got '%s'", summary)
	}
}

func TestClient_EmbedText(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":embedContent") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": map[string]any{"values": []float64{0.1, 0.2, 0.3}},
		})
	})

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	embedding, err := client.EmbedText(context.Background(), "some text")
	if err != nil {
		t.Fatalf("EmbedText failed: %v", err)
	}
	if len(embedding) != 3 || embedding[1] != 0.2 {
		t.Errorf("Unexpected embedding: %v", embedding)
	}
}

func TestClient_MissingAPIKey(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.GenerateSummary(context.Background(), "content", "title")
	var aiErr *Error
	if !errors.As(err, &aiErr) {
		t.Fatalf("Expected *ai.Error, got %v", err)
	}
	if aiErr.Op != "summarize" {
		t.Errorf("Expected op 'summarize', got '%s'", aiErr.Op)
	}

	_, err = client.EmbedText(context.Background(), "text")
	if !errors.As(err, &aiErr) {
		t.Fatalf("Expected *ai.Error, got %v", err)
	}
	if aiErr.Op != "embed" {
		t.Errorf("Expected op 'embed', got '%s'", aiErr.Op)
	}
}

func TestClient_APIError(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "API key not valid"},
		})
	})

	client := NewClient(Config{APIKey: "bad-key", BaseURL: server.URL})

	_, err := client.GenerateSummary(context.Background(), "content", "title")
	var aiErr *Error
	if !errors.As(err, &aiErr) {
		t.Fatalf("Expected *ai.Error, got %v", err)
	}
	if !strings.Contains(aiErr.Error(), "API key not valid") {
		t.Errorf("Expected provider message in error, got '%s'", aiErr.Error())
	}
}

func TestClient_EmptyResponse(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.GenerateSummary(context.Background(), "content", "title")
	var aiErr *Error
	if !errors.As(err, &aiErr) {
		t.Fatalf("Expected *ai.Error for empty response, got %v", err)
	}
}

func TestClient_EmptyEmbedding(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embedding": map[string]any{"values": []float64{}}})
	})

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.EmbedText(context.Background(), "text")
	var aiErr *Error
	if !errors.As(err, &aiErr) {
		t.Fatalf("Expected *ai.Error for empty embedding, got %v", err)
	}
}
