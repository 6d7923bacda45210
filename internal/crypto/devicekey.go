package crypto

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/zalando/go-keyring"
)

const (
	keyringService = "tabgroup"
	keyringUser    = "device-key"
)

// KeyringDeviceKey stores the installation secret in the OS keyring. The
// secret is generated on first use and is reproducible only on this
// installation; it is never written anywhere else.
type KeyringDeviceKey struct {
	service string
}

// NewKeyringDeviceKey returns a device key source backed by the OS keyring.
func NewKeyringDeviceKey() *KeyringDeviceKey {
	return &KeyringDeviceKey{service: keyringService}
}

// DeviceKey returns the installation secret, creating it if absent.
func (k *KeyringDeviceKey) DeviceKey(_ context.Context) (string, error) {
	secret, err := keyring.Get(k.service, keyringUser)
	if err == nil {
		return secret, nil
	}
	if !errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("reading keyring: %w", err)
	}

	secret = uuid.NewString()
	if err := keyring.Set(k.service, keyringUser, secret); err != nil {
		return "", fmt.Errorf("storing device key: %w", err)
	}
	return secret, nil
}

// StaticDeviceKey is a fixed device key for tests and headless environments
// without a keyring.
type StaticDeviceKey string

func (s StaticDeviceKey) DeviceKey(context.Context) (string, error) {
	if s == "" {
		return "", errors.New("crypto: empty static device key")
	}
	return string(s), nil
}
