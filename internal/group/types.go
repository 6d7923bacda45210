package group

import (
	"context"
	"strings"

	"github.com/samber/lo"
)

// Tab is one open browser tab as reported by the Browser collaborator.
type Tab struct {
	ID       int    `json:"id"`
	WindowID int    `json:"windowId"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

// ExistingGroup is a group already present in a window.
type ExistingGroup struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Decision is the classification result for one tab. Ephemeral, never
// persisted.
type Decision struct {
	Name  string `json:"groupName"`
	Color string `json:"color"`
}

// Palette is the fixed set of valid group colors.
var Palette = []string{"grey", "blue", "red", "yellow", "green", "pink", "purple", "cyan", "orange"}

// Defaults used when the model response cannot be parsed or validated.
const (
	DefaultGroupName = "Misc"
	DefaultColor     = "grey"
)

// DefaultDecision is the fallback for unusable model output.
func DefaultDecision() Decision {
	return Decision{Name: DefaultGroupName, Color: DefaultColor}
}

// NormalizeColor maps a model-supplied color onto the palette,
// case-insensitively. Anything off-palette becomes the default color — a
// decision never leaves this package with an invalid color.
func NormalizeColor(color string) string {
	c := strings.ToLower(strings.TrimSpace(color))
	if lo.Contains(Palette, c) {
		return c
	}
	return DefaultColor
}

// Browser is the boundary to the tab/window side effects, which live
// outside this package. Implementations enumerate tabs and apply visual
// group assignments.
type Browser interface {
	Tabs(ctx context.Context) ([]Tab, error)
	Groups(ctx context.Context, windowID int) ([]ExistingGroup, error)
	ApplyGroup(ctx context.Context, tab Tab, d Decision) error
}
