package settings

import (
	"context"
	"fmt"
)

// ModelInfo is one entry of a provider's fetched model list, cached in the
// local (device-only) storage area.
type ModelInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// SaveFetchedModels caches a provider's model list in the local store.
func SaveFetchedModels(ctx context.Context, local Store, provider string, models []ModelInfo) error {
	fields, err := local.GetMany(ctx, []string{KeyFetchedModels})
	if err != nil {
		return fmt.Errorf("loading model cache: %w", err)
	}
	cache, _ := fields[KeyFetchedModels].(map[string]any)
	if cache == nil {
		cache = map[string]any{}
	}

	entries := make([]any, 0, len(models))
	for _, m := range models {
		entries = append(entries, map[string]any{"id": m.ID, "displayName": m.DisplayName})
	}
	cache[provider] = entries

	return local.Set(ctx, map[string]any{KeyFetchedModels: cache})
}

// FetchedModels returns the cached model list for a provider, or nil when
// nothing has been cached.
func FetchedModels(ctx context.Context, local Store, provider string) ([]ModelInfo, error) {
	fields, err := local.GetMany(ctx, []string{KeyFetchedModels})
	if err != nil {
		return nil, fmt.Errorf("loading model cache: %w", err)
	}
	cache, _ := fields[KeyFetchedModels].(map[string]any)
	entries, _ := cache[provider].([]any)
	if entries == nil {
		return nil, nil
	}

	models := make([]ModelInfo, 0, len(entries))
	for _, e := range entries {
		m, _ := e.(map[string]any)
		if m == nil {
			continue
		}
		id, _ := m["id"].(string)
		name, _ := m["displayName"].(string)
		models = append(models, ModelInfo{ID: id, DisplayName: name})
	}
	return models, nil
}
