// Package crypto implements the password-based envelope encryption used to
// protect provider API keys at rest.
//
// An envelope is the printable transport form of one encrypted value:
// a "gv1:" version tag followed by base64(salt || nonce || ciphertext).
// Keys are derived with PBKDF2-SHA256 (100,000 iterations) and sealed with
// AES-256-GCM. Every call to Encrypt draws a fresh salt and nonce, so
// encrypting the same plaintext twice yields unrelated envelopes.
//
// When no password is supplied, the engine falls back to device key material:
// an installation-bound secret held in the OS keyring, created on first use.
// This binds envelopes to the machine without asking the user for a password.
//
// All decryption failures (malformed envelope, wrong password, corrupted
// payload) surface as ErrDecryptFailed; the engine never returns partially
// decrypted bytes.
package crypto
