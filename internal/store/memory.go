package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryBackend is an in-memory Backend for tests. Objects round-trip
// through JSON so stored values have the same types a FileBackend would
// return (numbers as float64, nested objects as map[string]any).
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(_ context.Context) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.data) == 0 {
		return map[string]any{}, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(m.data, &obj); err != nil {
		return nil, fmt.Errorf("parsing stored object: %w", err)
	}
	return obj, nil
}

func (m *MemoryBackend) Store(_ context.Context, obj map[string]any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshaling stored object: %w", err)
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}
