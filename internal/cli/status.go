package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dshills/tabgroup/internal/settings"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show grouping status and provider configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		s, err := settings.Load(ctx, a.synced)
		if err != nil {
			return err
		}
		st := settings.StatusOf(s)

		onOff := func(b bool) string {
			if b {
				return pterm.Green("yes")
			}
			return pterm.Red("no")
		}
		provider := s.Provider
		if provider == "" {
			provider = "(none)"
		}

		data := pterm.TableData{
			{"Grouping enabled", onOff(st.Enabled)},
			{"Provider", provider},
			{"Configured", onOff(st.Configured)},
			{"Store directory", a.dir},
		}
		if err := pterm.DefaultTable.WithData(data).Render(); err != nil {
			return err
		}

		if !st.Configured {
			pterm.Info.Println("Run `tabgroup config set defaultProvider <name>` and set its API key to get started.")
		}
		return nil
	},
}
