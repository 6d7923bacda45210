package providers

import (
	"context"
	"fmt"
)

// Model describes one entry of a provider's model catalog.
type Model struct {
	ID          string
	DisplayName string
}

// Provider is the uniform capability every backend implements.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// ModelLister is implemented by providers that can enumerate their models.
type ModelLister interface {
	ListModels(ctx context.Context) ([]Model, error)
}

// Config is the explicit construction input for a provider. APIKey and
// Model apply to hosted backends; BaseURL and Format to the local one.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Format  string
}

// New creates a provider by name.
func New(provider string, cfg Config) (Provider, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(cfg)
	case "openai":
		return NewOpenAI(cfg)
	case "gemini", "google":
		return NewGemini(cfg)
	case "local":
		return NewLocal(cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
