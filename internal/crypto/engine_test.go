package crypto

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(StaticDeviceKey("test-installation-secret"))
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	tests := []struct {
		name      string
		plaintext string
		password  string
	}{
		{"explicit password", "sk-ant-api03-abcdef123456", "hunter2"},
		{"device default password", "sk-proj-xyz789", ""},
		{"empty plaintext", "", "pw"},
		{"unicode plaintext", "clé-secrète-日本語", "pw"},
		{"long plaintext", strings.Repeat("a", 4096), "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := e.Encrypt(ctx, tt.plaintext, tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(env, "gv1:"), "new envelopes must carry the version tag")

			got, err := e.Decrypt(ctx, env, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, got)
		})
	}
}

func TestEncrypt_FreshSaltAndNonce(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	env1, err := e.Encrypt(ctx, "same plaintext", "pw")
	require.NoError(t, err)
	env2, err := e.Encrypt(ctx, "same plaintext", "pw")
	require.NoError(t, err)

	assert.NotEqual(t, env1, env2, "identical plaintexts must produce unlinkable envelopes")

	got1, err := e.Decrypt(ctx, env1, "pw")
	require.NoError(t, err)
	got2, err := e.Decrypt(ctx, env2, "pw")
	require.NoError(t, err)
	assert.Equal(t, got1, got2)
}

func TestDecrypt_WrongPassword(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	env, err := e.Encrypt(ctx, "secret", "correct")
	require.NoError(t, err)

	_, err = e.Decrypt(ctx, env, "incorrect")
	require.ErrorIs(t, err, ErrDecryptFailed, "wrong password must never return garbage silently")
}

func TestDecrypt_Malformed(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
	}{
		{"not base64", "gv1:!!!not-base64!!!"},
		{"too short", "gv1:QUJD"},
		{"empty", ""},
		{"truncated envelope", "gv1:QUFBQUFBQUFBQUFBQUFBQQ=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Decrypt(ctx, tt.input, "pw")
			assert.ErrorIs(t, err, ErrDecryptFailed)
		})
	}
}

func TestDecrypt_CorruptedPayload(t *testing.T) {
	e := newTestEngine()
	ctx := context.Background()

	env, err := e.Encrypt(ctx, "secret", "pw")
	require.NoError(t, err)

	// Flip a character inside the base64 body.
	body := []byte(env)
	i := len(body) - 5
	if body[i] == 'A' {
		body[i] = 'B'
	} else {
		body[i] = 'A'
	}

	_, err = e.Decrypt(ctx, string(body), "pw")
	assert.ErrorIs(t, err, ErrDecryptFailed)
}

func TestIsEnvelope(t *testing.T) {
	e := newTestEngine()
	env, err := e.Encrypt(context.Background(), "secret", "pw")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"tagged envelope", env, true},
		{"legacy untagged envelope", strings.TrimPrefix(env, "gv1:"), true},
		{"empty", "", false},
		{"openai key", "sk-" + strings.Repeat("a", 48), false},
		{"anthropic key", "sk-ant-api03-" + strings.Repeat("a", 95), false},
		{"google key", "AIza" + strings.Repeat("B", 35), false},
		{"short base64", "QUJDRA==", false},
		{"plain text", "not an envelope at all", false},
		{"tagged but truncated", "gv1:QUJDRA==", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEnvelope(tt.value))
		})
	}
}
