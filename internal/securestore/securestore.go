package securestore

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dshills/tabgroup/internal/crypto"
	"github.com/dshills/tabgroup/internal/settings"
	"github.com/dshills/tabgroup/internal/store"
)

// SecureStore wraps the synced namespaced store and transparently encrypts
// the fields in its secret list.
type SecureStore struct {
	store  *store.Namespaced
	engine *crypto.Engine
	log    *slog.Logger

	mu     sync.RWMutex
	secret map[string]bool
}

// New creates a SecureStore seeded with the default secret field list (one
// API key field per provider). A nil logger discards warnings.
func New(st *store.Namespaced, engine *crypto.Engine, log *slog.Logger) *SecureStore {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	secret := make(map[string]bool)
	for _, f := range settings.SecretFields() {
		secret[f] = true
	}
	return &SecureStore{store: st, engine: engine, log: log, secret: secret}
}

// GetOne returns one field, decrypted if it is a secret, or nil when absent.
func (s *SecureStore) GetOne(ctx context.Context, key string) (any, error) {
	fields, err := s.GetMany(ctx, []string{key})
	if err != nil {
		return nil, err
	}
	return fields[key], nil
}

// GetMany returns the requested fields with secret values decrypted. A
// secret that is not an envelope (legacy plaintext) or that fails to
// decrypt is returned as stored, with a warning for the latter.
func (s *SecureStore) GetMany(ctx context.Context, keys []string) (map[string]any, error) {
	fields, err := s.store.GetMany(ctx, keys)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		if !s.isSecret(k) {
			continue
		}
		str, ok := v.(string)
		if !ok || str == "" || !crypto.IsEnvelope(str) {
			continue
		}
		plaintext, err := s.engine.Decrypt(ctx, str, "")
		if err != nil {
			// Never fail the whole read; the raw value may be legacy
			// plaintext that happened to look like an envelope.
			s.log.Warn("secret field failed to decrypt, returning raw value",
				"field", k, "error", err)
			continue
		}
		fields[k] = plaintext
	}
	return fields, nil
}

// GetRaw returns the requested fields exactly as stored, bypassing
// decryption. Diagnostics only.
func (s *SecureStore) GetRaw(ctx context.Context, keys []string) (map[string]any, error) {
	return s.store.GetMany(ctx, keys)
}

// Set persists the given fields, encrypting non-empty string values of
// secret fields. Each write seals a fresh envelope.
func (s *SecureStore) Set(ctx context.Context, fields map[string]any) error {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if s.isSecret(k) {
			if str, ok := v.(string); ok && str != "" {
				env, err := s.engine.Encrypt(ctx, str, "")
				if err != nil {
					return fmt.Errorf("encrypting field %s: %w", k, err)
				}
				out[k] = env
				continue
			}
		}
		out[k] = v
	}
	return s.store.Set(ctx, out)
}

// Remove deletes the given fields.
func (s *SecureStore) Remove(ctx context.Context, keys []string) error {
	return s.store.Remove(ctx, keys)
}

// Clear removes the entire namespace object.
func (s *SecureStore) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// AddSensitiveKey classifies an additional field as secret at runtime (used
// when a new provider is registered). Existing plaintext values for the
// field are encrypted on the next Set or migration.
func (s *SecureStore) AddSensitiveKey(key string) {
	s.mu.Lock()
	s.secret[key] = true
	s.mu.Unlock()
}

// RemoveSensitiveKey declassifies a field. Values already encrypted stay
// encrypted until rewritten.
func (s *SecureStore) RemoveSensitiveKey(key string) {
	s.mu.Lock()
	delete(s.secret, key)
	s.mu.Unlock()
}

// SensitiveKeys returns the current secret field list.
func (s *SecureStore) SensitiveKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.secret))
	for k := range s.secret {
		out = append(out, k)
	}
	return out
}

func (s *SecureStore) isSecret(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secret[key]
}
