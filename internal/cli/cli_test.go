package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/tabgroup/internal/group"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tabs.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}
	return path
}

func TestLoadJSONBrowser(t *testing.T) {
	path := writeSnapshot(t, `{
		"tabs": [
			{"id": 1, "windowId": 10, "title": "Go blog", "url": "https://go.dev/blog"},
			{"id": 2, "windowId": 10, "title": "HN", "url": "https://news.ycombinator.com"}
		],
		"groups": {"10": [{"name": "Dev", "color": "blue"}]}
	}`)

	b, err := loadJSONBrowser(path, os.Stdout)
	if err != nil {
		t.Fatalf("loadJSONBrowser error: %v", err)
	}

	tabs, err := b.Tabs(context.Background())
	if err != nil {
		t.Fatalf("Tabs error: %v", err)
	}
	if len(tabs) != 2 || tabs[0].Title != "Go blog" {
		t.Errorf("tabs = %+v", tabs)
	}

	groups, err := b.Groups(context.Background(), 10)
	if err != nil {
		t.Fatalf("Groups error: %v", err)
	}
	if len(groups) != 1 || groups[0].Name != "Dev" {
		t.Errorf("groups = %+v", groups)
	}

	if _, ok := b.find(2); !ok {
		t.Error("find(2) should locate the second tab")
	}
	if _, ok := b.find(99); ok {
		t.Error("find(99) should report absence")
	}
}

func TestLoadJSONBrowser_BadInput(t *testing.T) {
	if _, err := loadJSONBrowser(filepath.Join(t.TempDir(), "missing.json"), os.Stdout); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeSnapshot(t, `{"tabs": [], "groups": {"notanumber": []}}`)
	if _, err := loadJSONBrowser(path, os.Stdout); err == nil {
		t.Error("expected error for non-numeric window id")
	}
}

func TestJSONBrowser_ApplyGroupFeedsBackGroups(t *testing.T) {
	path := writeSnapshot(t, `{"tabs": [{"id": 1, "windowId": 5}], "groups": {}}`)

	var out strings.Builder
	b, err := loadJSONBrowser(path, &out)
	if err != nil {
		t.Fatalf("loadJSONBrowser error: %v", err)
	}

	ctx := context.Background()
	d := group.Decision{Name: "News", Color: "red"}
	if err := b.ApplyGroup(ctx, group.Tab{ID: 1, WindowID: 5, Title: "HN"}, d); err != nil {
		t.Fatalf("ApplyGroup error: %v", err)
	}

	groups, _ := b.Groups(ctx, 5)
	if len(groups) != 1 || groups[0].Name != "News" {
		t.Errorf("groups after apply = %+v", groups)
	}

	// Applying a case-variant of an existing name must not duplicate it.
	if err := b.ApplyGroup(ctx, group.Tab{ID: 1, WindowID: 5}, group.Decision{Name: "news", Color: "red"}); err != nil {
		t.Fatalf("ApplyGroup error: %v", err)
	}
	groups, _ = b.Groups(ctx, 5)
	if len(groups) != 1 {
		t.Errorf("expected no duplicate group, got %+v", groups)
	}

	if !strings.Contains(out.String(), "News (red)") {
		t.Errorf("output = %q", out.String())
	}
}
