package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dshills/tabgroup/internal/crypto"
	"github.com/dshills/tabgroup/internal/providers"
	"github.com/dshills/tabgroup/internal/securestore"
	"github.com/dshills/tabgroup/internal/settings"
	"github.com/dshills/tabgroup/internal/store"
)

// app bundles the wired dependencies every command operates on.
type app struct {
	dir    string
	synced *securestore.SecureStore
	local  *store.Namespaced
	log    *slog.Logger
}

// newApp constructs the application object and runs the storage migration
// so commands always see the namespaced, encrypted layout.
func newApp(ctx context.Context) (*app, error) {
	_ = godotenv.Load()

	dir := flagStoreDir
	if dir == "" {
		var err error
		dir, err = store.DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	engine := crypto.NewEngine(crypto.NewKeyringDeviceKey())
	synced := securestore.New(
		store.NewNamespaced(store.NewFileBackend(store.SyncedPath(dir))),
		engine, log,
	)
	local := store.NewNamespaced(store.NewFileBackend(store.LocalPath(dir)))

	if err := synced.MigrateToEncrypted(ctx); err != nil {
		return nil, fmt.Errorf("storage migration: %w", err)
	}

	return &app{dir: dir, synced: synced, local: local, log: log}, nil
}

// providerConfig assembles the construction input for the named provider
// from stored settings. Secret fields come back decrypted.
func (a *app) providerConfig(ctx context.Context, provider string) (providers.Config, error) {
	fields, err := a.synced.GetMany(ctx, []string{
		settings.ProviderKeyField(provider),
		settings.ProviderModelField(provider),
		settings.KeyLocalURL,
		settings.KeyLocalModel,
		settings.KeyLocalAPIFormat,
	})
	if err != nil {
		return providers.Config{}, err
	}

	cfg := providers.Config{
		APIKey: asString(fields[settings.ProviderKeyField(provider)]),
		Model:  asString(fields[settings.ProviderModelField(provider)]),
	}
	if provider == "local" {
		cfg.BaseURL = asString(fields[settings.KeyLocalURL])
		cfg.Model = asString(fields[settings.KeyLocalModel])
		cfg.Format = asString(fields[settings.KeyLocalAPIFormat])
	}
	return cfg, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
