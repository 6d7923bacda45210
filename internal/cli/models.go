package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/tabgroup/internal/providers"
	"github.com/dshills/tabgroup/internal/settings"
)

var (
	flagModelsProvider string
	flagModelsCached   bool
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List a provider's available models",
	Long: "Fetches the model catalog from the selected provider and caches it in\n" +
		"the local store. With --cached, prints the cache without a network call.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		provider := flagModelsProvider
		if provider == "" {
			s, err := settings.Load(ctx, a.synced)
			if err != nil {
				return err
			}
			provider = s.Provider
		}
		if provider == "" {
			return fmt.Errorf("no provider selected; use --provider or config set %s", settings.KeyDefaultProvider)
		}

		if flagModelsCached {
			cached, err := settings.FetchedModels(ctx, a.local, provider)
			if err != nil {
				return err
			}
			if len(cached) == 0 {
				fmt.Fprintf(os.Stdout, "No cached models for %s\n", provider)
				return nil
			}
			printModels(provider, cached)
			return nil
		}

		cfg, err := a.providerConfig(ctx, provider)
		if err != nil {
			return err
		}
		p, err := providers.New(provider, cfg)
		if err != nil {
			exitCode = ExitAuthError
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return nil
		}
		lister, ok := p.(providers.ModelLister)
		if !ok {
			return fmt.Errorf("provider %s cannot list models", provider)
		}

		models, err := lister.ListModels(ctx)
		if err != nil {
			if providers.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return nil
		}

		infos := make([]settings.ModelInfo, 0, len(models))
		for _, m := range models {
			infos = append(infos, settings.ModelInfo{ID: m.ID, DisplayName: m.DisplayName})
		}
		if err := settings.SaveFetchedModels(ctx, a.local, provider, infos); err != nil {
			a.log.Warn("failed to cache model list", "provider", provider, "error", err)
		}

		printModels(provider, infos)
		return nil
	},
}

func printModels(provider string, models []settings.ModelInfo) {
	fmt.Fprintf(os.Stdout, "%s:\n", provider)
	for _, m := range models {
		if m.DisplayName != "" && m.DisplayName != m.ID {
			fmt.Fprintf(os.Stdout, "  - %s (%s)\n", m.ID, m.DisplayName)
		} else {
			fmt.Fprintf(os.Stdout, "  - %s\n", m.ID)
		}
	}
}

func init() {
	modelsCmd.Flags().StringVar(&flagModelsProvider, "provider", "", "Provider to query (default: configured provider)")
	modelsCmd.Flags().BoolVar(&flagModelsCached, "cached", false, "Print the cached list without a network call")
}
