package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Local implements the Provider interface for a locally hosted server
// (Ollama, LM Studio, llama.cpp, ...). It speaks either the
// OpenAI-compatible or the Ollama-native wire format.
type Local struct {
	apiKey  string
	model   string
	baseURL string
	format  string
	client  *http.Client
}

// NewLocal creates a new Local provider. BaseURL is required; an API key is
// optional (some local servers require one).
func NewLocal(cfg Config) (*Local, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("local: base URL is required")
	}
	format := cfg.Format
	if format == "" {
		format = "openai"
	}
	if format != "openai" && format != "ollama" {
		return nil, fmt.Errorf("local: unknown API format %q", format)
	}

	// Normalize URL: strip trailing /, /v1, /v1/chat/completions
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	return &Local{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		format:  format,
		client:  &http.Client{Timeout: defaultProviderTimeout},
	}, nil
}

func (l *Local) Name() string { return "local" }

func (l *Local) Complete(ctx context.Context, prompt string) (string, error) {
	if l.format == "ollama" {
		return l.completeOllama(ctx, prompt)
	}
	return chatComplete(ctx, l.client, chatCompleteParams{
		provider: "local",
		url:      l.baseURL + "/v1/chat/completions",
		apiKey:   l.apiKey,
		model:    l.model,
		prompt:   prompt,
	})
}

func (l *Local) completeOllama(ctx context.Context, prompt string) (string, error) {
	body := ollamaRequest{
		Model:    l.model,
		Stream:   false,
		Messages: []openaiMessage{{Role: "user", Content: prompt}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", l.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := l.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != 200 {
		return "", statusError("local", httpResp.StatusCode, string(respBody))
	}

	var result ollamaResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if result.Message.Content == "" {
		return "", fmt.Errorf("empty text content in API response")
	}
	return result.Message.Content, nil
}

// ListModels enumerates models from the local server, using the endpoint
// matching the configured wire format.
func (l *Local) ListModels(ctx context.Context) ([]Model, error) {
	if l.format == "ollama" {
		return l.listOllamaModels(ctx)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET", l.baseURL+"/v1/models", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if l.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+l.apiKey)
	}

	httpResp, err := l.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != 200 {
		return nil, statusError("local", httpResp.StatusCode, string(respBody))
	}

	var result openaiModelsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	models := make([]Model, 0, len(result.Data))
	for _, m := range result.Data {
		models = append(models, Model{ID: m.ID, DisplayName: m.ID})
	}
	return models, nil
}

func (l *Local) listOllamaModels(ctx context.Context) ([]Model, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", l.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpResp, err := l.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != 200 {
		return nil, statusError("local", httpResp.StatusCode, string(respBody))
	}

	var result ollamaTagsResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	models := make([]Model, 0, len(result.Models))
	for _, m := range result.Models {
		models = append(models, Model{ID: m.Name, DisplayName: m.Name})
	}
	return models, nil
}

type ollamaRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaResponse struct {
	Message openaiMessage `json:"message"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}
