package group

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dshills/tabgroup/internal/providers"
	"github.com/dshills/tabgroup/internal/sanitize"
)

// Engine asks a provider for a grouping decision.
type Engine struct {
	provider  providers.Provider
	sanitizer *sanitize.Sanitizer
}

// NewEngine creates an Engine. The sanitizer may be nil, in which case tab
// data is sent as-is.
func NewEngine(p providers.Provider, s *sanitize.Sanitizer) *Engine {
	return &Engine{provider: p, sanitizer: s}
}

// Classify decides which group a tab belongs to. The tab's title and URL
// are sanitized before leaving the process. A provider failure is returned
// as an error; a malformed provider response is not — it degrades to the
// default decision.
func (e *Engine) Classify(ctx context.Context, tab Tab, existing []ExistingGroup) (Decision, error) {
	title, url := tab.Title, tab.URL
	if e.sanitizer != nil {
		title, url = e.sanitizer.TabData(title, url)
	}

	raw, err := e.provider.Complete(ctx, BuildPrompt(title, url, existing))
	if err != nil {
		return Decision{}, fmt.Errorf("provider complete: %w", err)
	}

	return ParseDecision(raw), nil
}

// ParseDecision extracts a Decision from a raw model response. Models wrap
// JSON in prose or code fences often enough that we scan for the first
// brace-delimited object rather than unmarshaling the whole response. Any
// failure yields the default decision; the color is always normalized onto
// the palette.
func ParseDecision(raw string) Decision {
	start := strings.Index(raw, "{")
	if start < 0 {
		return DefaultDecision()
	}
	end := strings.Index(raw[start:], "}")
	if end < 0 {
		return DefaultDecision()
	}

	var d Decision
	if err := json.Unmarshal([]byte(raw[start:start+end+1]), &d); err != nil {
		return DefaultDecision()
	}

	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		d.Name = DefaultGroupName
	}
	d.Color = NormalizeColor(d.Color)
	return d
}
