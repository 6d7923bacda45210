package store

import (
	"context"
	"fmt"
	"sync"
)

// Namespace is the single top-level key all configuration lives under.
const Namespace = "tabgroup"

// Backend is one underlying storage area. Load returns the entire stored
// object (an empty map when nothing has been stored); Store replaces it.
type Backend interface {
	Load(ctx context.Context) (map[string]any, error)
	Store(ctx context.Context, obj map[string]any) error
}

// Namespaced is a key-value store scoped to the namespace object inside a
// Backend.
type Namespaced struct {
	mu      sync.Mutex
	backend Backend
	ns      string
}

// NewNamespaced wraps a backend under the default namespace key.
func NewNamespaced(backend Backend) *Namespaced {
	return &Namespaced{backend: backend, ns: Namespace}
}

// GetOne returns the value for one field, or nil when absent.
func (s *Namespaced) GetOne(ctx context.Context, key string) (any, error) {
	fields, err := s.GetMany(ctx, []string{key})
	if err != nil {
		return nil, err
	}
	return fields[key], nil
}

// GetMany returns the values for the requested fields. Absent fields are
// omitted from the result.
func (s *Namespaced) GetMany(ctx context.Context, keys []string) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, obj, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// Set merges the given fields into the namespace object and persists it.
func (s *Namespaced) Set(ctx context.Context, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, obj, err := s.load(ctx)
	if err != nil {
		return err
	}
	for k, v := range fields {
		obj[k] = v
	}
	return s.save(ctx, root, obj)
}

// Remove deletes the given fields from the namespace object.
func (s *Namespaced) Remove(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, obj, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(obj, k)
	}
	return s.save(ctx, root, obj)
}

// Clear removes the entire namespace object, leaving unrelated data in the
// backend untouched.
func (s *Namespaced) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading store: %w", err)
	}
	delete(root, s.ns)
	return s.backend.Store(ctx, root)
}

// MigrateFlatKeys moves any of the given keys found at the top level of the
// backend (the pre-namespace layout) into the namespace object, then deletes
// the flat keys. A key already present in the namespace keeps its namespace
// value. Safe to call repeatedly: once no flat keys remain it is a no-op.
func (s *Namespaced) MigrateFlatKeys(ctx context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	root, obj, err := s.load(ctx)
	if err != nil {
		return err
	}

	migrated := false
	for _, k := range keys {
		v, ok := root[k]
		if !ok {
			continue
		}
		if _, exists := obj[k]; !exists {
			obj[k] = v
		}
		delete(root, k)
		migrated = true
	}
	if !migrated {
		return nil
	}
	return s.save(ctx, root, obj)
}

func (s *Namespaced) load(ctx context.Context) (root, obj map[string]any, err error) {
	root, err = s.backend.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading store: %w", err)
	}
	if root == nil {
		root = map[string]any{}
	}
	obj, _ = root[s.ns].(map[string]any)
	if obj == nil {
		obj = map[string]any{}
	}
	return root, obj, nil
}

func (s *Namespaced) save(ctx context.Context, root, obj map[string]any) error {
	root[s.ns] = obj
	if err := s.backend.Store(ctx, root); err != nil {
		return fmt.Errorf("saving store: %w", err)
	}
	return nil
}
