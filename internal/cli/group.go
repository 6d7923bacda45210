package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/dshills/tabgroup/internal/group"
	"github.com/dshills/tabgroup/internal/providers"
	"github.com/dshills/tabgroup/internal/sanitize"
	"github.com/dshills/tabgroup/internal/settings"
)

var (
	flagGroupTabs string
	flagGroupTab  int
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Group tabs from a tab snapshot file",
	Long: "Reads a JSON snapshot of open tabs and existing groups, classifies each\n" +
		"tab with the configured provider, and prints the group assignments.\n" +
		"Titles and URLs are sanitized before leaving the machine.",
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
		if err := s.Validate(); err != nil {
			exitCode = ExitAuthError
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return nil
		}

		p, err := providers.New(s.Provider, providers.Config{
			APIKey:  s.APIKey,
			Model:   s.Model,
			BaseURL: s.LocalURL,
			Format:  s.LocalFormat,
		})
		if err != nil {
			exitCode = ExitAuthError
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return nil
		}

		browser, err := loadJSONBrowser(flagGroupTabs, os.Stdout)
		if err != nil {
			return err
		}

		proc := group.NewProcessor(
			group.NewEngine(p, sanitize.New()),
			browser,
			func() bool { return s.Enabled },
			a.log,
		)

		if flagGroupTab != 0 {
			tab, ok := browser.find(flagGroupTab)
			if !ok {
				return fmt.Errorf("tab %d not found in %s", flagGroupTab, flagGroupTabs)
			}
			if _, err := proc.ProcessTab(ctx, tab); err != nil {
				exitCode = ExitRuntimeError
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return nil
		}

		n, err := proc.ProcessAll(ctx)
		if err != nil {
			exitCode = ExitRuntimeError
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return nil
		}
		pterm.Success.Printfln("Grouped %d of %d tabs", n, len(browser.tabs))
		return nil
	},
}

func init() {
	groupCmd.Flags().StringVar(&flagGroupTabs, "tabs", "", "Path to a JSON tab snapshot (required)")
	groupCmd.Flags().IntVar(&flagGroupTab, "tab", 0, "Process only the tab with this id")
	_ = groupCmd.MarkFlagRequired("tabs")
}

// tabsFile is the on-disk snapshot format: the open tabs plus the groups
// already present per window, keyed by window id.
type tabsFile struct {
	Tabs   []group.Tab                      `json:"tabs"`
	Groups map[string][]group.ExistingGroup `json:"groups"`
}

// jsonBrowser implements group.Browser over a snapshot file. Applied
// decisions are printed and fed back into the window's group list so a
// batch run reuses the names it creates.
type jsonBrowser struct {
	mu     sync.Mutex
	tabs   []group.Tab
	groups map[int][]group.ExistingGroup
	out    io.Writer
}

func loadJSONBrowser(path string, out io.Writer) (*jsonBrowser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tab snapshot: %w", err)
	}
	var f tabsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing tab snapshot: %w", err)
	}

	groups := make(map[int][]group.ExistingGroup, len(f.Groups))
	for k, v := range f.Groups {
		id, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("parsing tab snapshot: bad window id %q", k)
		}
		groups[id] = v
	}
	return &jsonBrowser{tabs: f.Tabs, groups: groups, out: out}, nil
}

func (b *jsonBrowser) find(tabID int) (group.Tab, bool) {
	return lo.Find(b.tabs, func(t group.Tab) bool { return t.ID == tabID })
}

func (b *jsonBrowser) Tabs(context.Context) ([]group.Tab, error) {
	return b.tabs, nil
}

func (b *jsonBrowser) Groups(_ context.Context, windowID int) ([]group.ExistingGroup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.groups[windowID], nil
}

func (b *jsonBrowser) ApplyGroup(_ context.Context, tab group.Tab, d group.Decision) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	exists := lo.ContainsBy(b.groups[tab.WindowID], func(g group.ExistingGroup) bool {
		return strings.EqualFold(g.Name, d.Name)
	})
	if !exists {
		b.groups[tab.WindowID] = append(b.groups[tab.WindowID], group.ExistingGroup{Name: d.Name, Color: d.Color})
	}

	fmt.Fprintf(b.out, "tab %d (%s) -> %s (%s)\n", tab.ID, tab.Title, d.Name, d.Color)
	return nil
}
