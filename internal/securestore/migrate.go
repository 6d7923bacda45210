package securestore

import (
	"context"
	"fmt"

	"github.com/dshills/tabgroup/internal/crypto"
	"github.com/dshills/tabgroup/internal/settings"
)

// MigrateToEncrypted runs the two-phase storage migration:
//
//  1. Layout: pre-namespace flat keys are merged into the namespace object
//     (never overwriting a key already present there) and deleted.
//  2. Encryption: every secret field still stored as plaintext is rewritten
//     through Set, which seals it into an envelope.
//
// Both phases are idempotent, so this is safe to invoke from every entry
// point and safe to re-run after a crash mid-migration. IsEnvelope guards
// against double-encrypting a value that is already sealed.
func (s *SecureStore) MigrateToEncrypted(ctx context.Context) error {
	if err := s.store.MigrateFlatKeys(ctx, settings.AllFields()); err != nil {
		return fmt.Errorf("layout migration: %w", err)
	}

	raw, err := s.store.GetMany(ctx, s.SensitiveKeys())
	if err != nil {
		return fmt.Errorf("encryption migration: %w", err)
	}

	for k, v := range raw {
		str, ok := v.(string)
		if !ok || str == "" || crypto.IsEnvelope(str) {
			continue
		}
		if err := s.Set(ctx, map[string]any{k: str}); err != nil {
			return fmt.Errorf("encryption migration: %w", err)
		}
		s.log.Info("encrypted plaintext secret field", "field", k)
	}
	return nil
}
