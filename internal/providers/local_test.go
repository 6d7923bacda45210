package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocal_CompleteOpenAIFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q, want /v1/chat/completions", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("expected no Authorization header for keyless local server")
		}

		resp := openaiResponse{
			Choices: []openaiChoice{
				{Message: openaiMessage{Role: "assistant", Content: `{"groupName":"News","color":"red"}`}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	l, err := NewLocal(Config{BaseURL: server.URL, Model: "llama3.2", Format: "openai"})
	if err != nil {
		t.Fatalf("NewLocal error: %v", err)
	}
	l.client = server.Client()

	got, err := l.Complete(context.Background(), "classify")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if got != `{"groupName":"News","color":"red"}` {
		t.Errorf("Complete = %q", got)
	}
}

func TestLocal_CompleteOllamaFormat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Stream {
			t.Error("stream must be disabled")
		}
		if req.Model != "llama3.2" {
			t.Errorf("model = %q", req.Model)
		}

		json.NewEncoder(w).Encode(ollamaResponse{
			Message: openaiMessage{Role: "assistant", Content: `{"groupName":"Docs","color":"yellow"}`},
		})
	}))
	defer server.Close()

	l, err := NewLocal(Config{BaseURL: server.URL, Model: "llama3.2", Format: "ollama"})
	if err != nil {
		t.Fatalf("NewLocal error: %v", err)
	}
	l.client = server.Client()

	got, err := l.Complete(context.Background(), "classify")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if got != `{"groupName":"Docs","color":"yellow"}` {
		t.Errorf("Complete = %q", got)
	}
}

func TestLocal_ListModelsOllama(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %q, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"llama3.2"},{"name":"qwen2.5-coder"}]}`))
	}))
	defer server.Close()

	l, err := NewLocal(Config{BaseURL: server.URL, Format: "ollama"})
	if err != nil {
		t.Fatalf("NewLocal error: %v", err)
	}
	l.client = server.Client()

	models, err := l.ListModels(context.Background())
	if err != nil {
		t.Fatalf("ListModels error: %v", err)
	}
	if len(models) != 2 || models[0].ID != "llama3.2" {
		t.Errorf("models = %+v", models)
	}
}

func TestNewLocal_URLNormalization(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"bare host", "http://localhost:11434", "http://localhost:11434"},
		{"trailing slash", "http://localhost:11434/", "http://localhost:11434"},
		{"v1 suffix", "http://localhost:11434/v1", "http://localhost:11434"},
		{"full endpoint", "http://localhost:1234/v1/chat/completions", "http://localhost:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := NewLocal(Config{BaseURL: tt.url})
			if err != nil {
				t.Fatalf("NewLocal error: %v", err)
			}
			if l.baseURL != tt.want {
				t.Errorf("baseURL = %q, want %q", l.baseURL, tt.want)
			}
		})
	}
}

func TestNewLocal_Validation(t *testing.T) {
	if _, err := NewLocal(Config{}); err == nil {
		t.Error("expected error for missing base URL")
	}
	if _, err := NewLocal(Config{BaseURL: "http://x", Format: "grpc"}); err == nil {
		t.Error("expected error for unknown format")
	}
}
