package settings

import (
	"context"
	"errors"
	"fmt"
)

// Synced-area field names.
const (
	KeyEnabled         = "enabled"
	KeyDefaultProvider = "defaultProvider"
	KeyLocalURL        = "localUrl"
	KeyLocalModel      = "localModel"
	KeyLocalAPIFormat  = "localApiFormat"
)

// KeyFetchedModels is the local-area cache of model lists per provider.
const KeyFetchedModels = "fetchedModels"

// Local API wire formats.
const (
	FormatOpenAI = "openai"
	FormatOllama = "ollama"
)

// Providers lists every supported provider identifier.
var Providers = []string{"anthropic", "openai", "gemini", "local"}

// ErrNotConfigured indicates required fields are absent for the selected
// provider. Surfaced before any network call.
var ErrNotConfigured = errors.New("settings: provider not configured")

// ProviderKeyField is the API key field name for a provider ("anthropicKey").
func ProviderKeyField(provider string) string { return provider + "Key" }

// ProviderModelField is the model field name for a provider ("anthropicModel").
func ProviderModelField(provider string) string { return provider + "Model" }

// SecretFields returns the closed list of secret field names: one API key
// field per provider. Nothing else is ever classified secret by default.
func SecretFields() []string {
	out := make([]string, 0, len(Providers))
	for _, p := range Providers {
		out = append(out, ProviderKeyField(p))
	}
	return out
}

// AllFields enumerates every known field name, secret and plain. The layout
// migration uses this to recognize pre-namespace flat keys.
func AllFields() []string {
	fields := []string{
		KeyEnabled,
		KeyDefaultProvider,
		KeyLocalURL,
		KeyLocalModel,
		KeyLocalAPIFormat,
		KeyFetchedModels,
	}
	for _, p := range Providers {
		fields = append(fields, ProviderKeyField(p), ProviderModelField(p))
	}
	return fields
}

// Store is the subset of the secure store the settings layer reads and
// writes through. Secret fields arrive already decrypted.
type Store interface {
	GetMany(ctx context.Context, keys []string) (map[string]any, error)
	Set(ctx context.Context, fields map[string]any) error
}

// Settings is the effective configuration for one classification run.
type Settings struct {
	Enabled     bool
	Provider    string
	APIKey      string
	Model       string
	LocalURL    string
	LocalFormat string
}

// Load reads the configuration record for the currently selected provider.
func Load(ctx context.Context, st Store) (Settings, error) {
	keys := []string{KeyEnabled, KeyDefaultProvider, KeyLocalURL, KeyLocalModel, KeyLocalAPIFormat}
	for _, p := range Providers {
		keys = append(keys, ProviderKeyField(p), ProviderModelField(p))
	}

	fields, err := st.GetMany(ctx, keys)
	if err != nil {
		return Settings{}, fmt.Errorf("loading settings: %w", err)
	}

	s := Settings{
		Enabled:     asBool(fields[KeyEnabled]),
		Provider:    asString(fields[KeyDefaultProvider]),
		LocalURL:    asString(fields[KeyLocalURL]),
		LocalFormat: asString(fields[KeyLocalAPIFormat]),
	}
	// Grouping is on until the user explicitly turns it off.
	if _, ok := fields[KeyEnabled]; !ok {
		s.Enabled = true
	}
	if s.LocalFormat == "" {
		s.LocalFormat = FormatOpenAI
	}
	if s.Provider != "" {
		s.APIKey = asString(fields[ProviderKeyField(s.Provider)])
		s.Model = asString(fields[ProviderModelField(s.Provider)])
	}
	if s.Provider == "local" {
		s.Model = asString(fields[KeyLocalModel])
	}
	return s, nil
}

// Validate reports whether the selected provider is minimally configured.
// The returned error wraps ErrNotConfigured and names the missing fields.
func (s Settings) Validate() error {
	if s.Provider == "" {
		return fmt.Errorf("%w: no provider selected", ErrNotConfigured)
	}
	if s.Provider == "local" {
		if s.LocalURL == "" {
			return fmt.Errorf("%w: local provider needs %s", ErrNotConfigured, KeyLocalURL)
		}
		if s.Model == "" {
			return fmt.Errorf("%w: local provider needs %s", ErrNotConfigured, KeyLocalModel)
		}
		return nil
	}
	if s.APIKey == "" {
		return fmt.Errorf("%w: %s is not set", ErrNotConfigured, ProviderKeyField(s.Provider))
	}
	return nil
}

// Status is the summary surfaced to the UI layer.
type Status struct {
	Enabled    bool   `json:"enabled"`
	Provider   string `json:"provider"`
	Configured bool   `json:"configured"`
}

// StatusOf summarizes the settings for display.
func StatusOf(s Settings) Status {
	return Status{
		Enabled:    s.Enabled,
		Provider:   s.Provider,
		Configured: s.Validate() == nil,
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}
