// Package securestore layers transparent field encryption over the synced
// storage area.
//
// A closed list of field names is classified secret (provider API keys).
// Writes encrypt those fields into envelopes before they reach the store;
// reads decrypt them, so callers only ever see plaintext. Every write
// produces a fresh envelope — an old envelope is never updated in place.
//
// A secret that fails to decrypt is returned raw with a logged warning
// instead of failing the whole read. This tolerates legacy plaintext keys
// written before encryption existed while keeping genuine corruption
// observable on the warning channel.
//
// MigrateToEncrypted is the single idempotent migration routine: it first
// moves pre-namespace flat keys into the namespace (without clobbering
// newer nested values), then encrypts any secret field still stored as
// plaintext. Entry points call it defensively; idempotence, not a run-once
// flag, is what makes that safe, including after a crash mid-migration.
package securestore
