package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// FileBackend persists one storage area as a JSON file. Files are written
// with 0600 since the synced area can contain ciphertext envelopes.
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend persisting to the given path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load reads the stored object. A missing file is an empty store.
func (f *FileBackend) Load(_ context.Context) (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}

// Store replaces the stored object.
func (f *FileBackend) Store(_ context.Context, obj map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}
	return os.WriteFile(f.path, data, 0o600)
}

// DefaultDir returns the platform-appropriate directory for the store files.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tabgroup"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "tabgroup"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tabgroup"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "tabgroup"), nil
	default:
		return filepath.Join(home, ".config", "tabgroup"), nil
	}
}

// SyncedPath is the file backing the synced storage area.
func SyncedPath(dir string) string { return filepath.Join(dir, "synced.json") }

// LocalPath is the file backing the local-only storage area.
func LocalPath(dir string) string { return filepath.Join(dir, "local.json") }
