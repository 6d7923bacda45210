package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/dshills/tabgroup/internal/settings"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tabgroup configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		key := args[0]
		if !lo.Contains(settings.AllFields(), key) {
			return fmt.Errorf("unknown config key: %s", key)
		}

		v, err := a.synced.GetOne(ctx, key)
		if err != nil {
			return err
		}
		if v == nil {
			fmt.Fprintln(os.Stdout, "(not set)")
			return nil
		}
		switch val := v.(type) {
		case string:
			fmt.Fprintln(os.Stdout, val)
		default:
			data, err := json.Marshal(val)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(data))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		key, raw := args[0], args[1]
		if !lo.Contains(settings.AllFields(), key) {
			return fmt.Errorf("unknown config key: %s", key)
		}
		if key == settings.KeyFetchedModels {
			return fmt.Errorf("%s is managed by the models command", key)
		}

		var value any = raw
		if key == settings.KeyEnabled {
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("%s takes true or false", key)
			}
			value = b
		}

		if err := a.synced.Set(ctx, map[string]any{key: value}); err != nil {
			return err
		}

		if lo.Contains(settings.SecretFields(), key) {
			fmt.Fprintf(os.Stdout, "Set %s (stored encrypted)\n", key)
		} else {
			fmt.Fprintf(os.Stdout, "Set %s = %v\n", key, value)
		}
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration with secrets masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		fields, err := a.synced.GetMany(ctx, settings.AllFields())
		if err != nil {
			return err
		}
		for k, v := range fields {
			if lo.Contains(settings.SecretFields(), k) {
				if s, ok := v.(string); ok && s != "" {
					fields[k] = "(set)"
				}
			}
		}

		data, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}
