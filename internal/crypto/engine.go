package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	envelopePrefix = "gv1:"

	saltSize      = 16
	nonceSize     = 12
	keySize       = 32
	tagSize       = 16
	kdfIterations = 100_000

	// Minimum decoded size of any envelope: salt, nonce, and the GCM tag.
	minBlobSize = saltSize + nonceSize + tagSize
)

// ErrDecryptFailed is returned for every decryption failure: malformed
// envelope, wrong password, or corrupted payload. Callers cannot and should
// not distinguish between them.
var ErrDecryptFailed = errors.New("crypto: decryption failed")

// plaintextKeyPrefixes are known vendor API key formats. A value starting
// with one of these is an unencrypted legacy secret, never an envelope, even
// if it happens to satisfy the base64 shape check.
var plaintextKeyPrefixes = []string{"sk-", "AIza", "gsk_", "hf_"}

// DeviceKey supplies the installation-bound default password used when no
// explicit password is given.
type DeviceKey interface {
	DeviceKey(ctx context.Context) (string, error)
}

// Engine encrypts and decrypts secret values. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	device DeviceKey
}

// NewEngine creates an Engine that falls back to the given device key source
// when a call supplies no password.
func NewEngine(device DeviceKey) *Engine {
	return &Engine{device: device}
}

// Encrypt seals plaintext into a version-tagged envelope. If password is
// empty, the device key material is used. A fresh random salt and nonce are
// drawn on every call.
func (e *Engine) Encrypt(ctx context.Context, plaintext, password string) (string, error) {
	pw, err := e.resolvePassword(ctx, password)
	if err != nil {
		return "", err
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	gcm, err := newAEAD(pw, salt)
	if err != nil {
		return "", err
	}

	ct := gcm.Seal(nil, nonce, []byte(plaintext), nil)

	blob := make([]byte, 0, saltSize+nonceSize+len(ct))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, ct...)

	return envelopePrefix + base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt opens an envelope produced by Encrypt and returns the exact
// original plaintext. Both tagged and legacy untagged envelopes are accepted.
func (e *Engine) Decrypt(ctx context.Context, envelope, password string) (string, error) {
	pw, err := e.resolvePassword(ctx, password)
	if err != nil {
		return "", err
	}

	blob, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(envelope, envelopePrefix))
	if err != nil || len(blob) < minBlobSize {
		return "", ErrDecryptFailed
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ct := blob[saltSize+nonceSize:]

	gcm, err := newAEAD(pw, salt)
	if err != nil {
		return "", err
	}

	pt, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", ErrDecryptFailed
	}
	return string(pt), nil
}

func (e *Engine) resolvePassword(ctx context.Context, password string) (string, error) {
	if password != "" {
		return password, nil
	}
	if e.device == nil {
		return "", errors.New("crypto: no password and no device key source")
	}
	pw, err := e.device.DeviceKey(ctx)
	if err != nil {
		return "", fmt.Errorf("loading device key: %w", err)
	}
	return pw, nil
}

func newAEAD(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, kdfIterations, keySize, sha256.New)
	defer zero(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("initializing cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// IsEnvelope reports whether value looks like an encrypted envelope. Tagged
// values are a structural check; untagged values fall back to a shape
// heuristic (base64 alphabet, minimum length) kept for data written before
// the version tag existed. Values matching a known vendor key prefix are
// always classified as plaintext.
func IsEnvelope(value string) bool {
	if value == "" {
		return false
	}
	if strings.HasPrefix(value, envelopePrefix) {
		blob, err := base64.StdEncoding.DecodeString(value[len(envelopePrefix):])
		return err == nil && len(blob) >= minBlobSize
	}
	for _, p := range plaintextKeyPrefixes {
		if strings.HasPrefix(value, p) {
			return false
		}
	}
	blob, err := base64.StdEncoding.DecodeString(value)
	return err == nil && len(blob) >= minBlobSize
}
