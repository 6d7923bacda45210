package group

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

// Defaults for the processor's pacing knobs.
const (
	DefaultDelay   = 500 * time.Millisecond
	DefaultTimeout = 30 * time.Second
)

// EnabledFunc reports whether grouping is currently switched on. A nil
// function means always enabled.
type EnabledFunc func() bool

// Processor drives the Engine against a Browser, one tab at a time.
type Processor struct {
	engine  *Engine
	browser Browser
	enabled EnabledFunc
	log     *slog.Logger

	// Delay between items in a batch run; Timeout bounds each provider
	// call.
	Delay   time.Duration
	Timeout time.Duration

	mu       sync.Mutex
	inFlight map[int]bool
}

// NewProcessor creates a Processor with default pacing. The logger may be
// nil.
func NewProcessor(engine *Engine, browser Browser, enabled EnabledFunc, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Processor{
		engine:   engine,
		browser:  browser,
		enabled:  enabled,
		log:      log,
		Delay:    DefaultDelay,
		Timeout:  DefaultTimeout,
		inFlight: make(map[int]bool),
	}
}

// begin marks a tab as being processed. Returns false if it already is.
func (p *Processor) begin(tabID int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inFlight[tabID] {
		return false
	}
	p.inFlight[tabID] = true
	return true
}

func (p *Processor) end(tabID int) {
	p.mu.Lock()
	delete(p.inFlight, tabID)
	p.mu.Unlock()
}

// ProcessTab classifies one tab and applies the decision. If the tab
// matches an existing group case-insensitively, that group's name and
// color are reused rather than creating a near-duplicate. Returns the
// applied decision.
func (p *Processor) ProcessTab(ctx context.Context, tab Tab) (Decision, error) {
	if p.enabled != nil && !p.enabled() {
		return Decision{}, fmt.Errorf("grouping is disabled")
	}
	if !p.begin(tab.ID) {
		return Decision{}, fmt.Errorf("tab %d is already being processed", tab.ID)
	}
	defer p.end(tab.ID)

	existing, err := p.browser.Groups(ctx, tab.WindowID)
	if err != nil {
		return Decision{}, fmt.Errorf("listing groups: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	decision, err := p.engine.Classify(cctx, tab, existing)
	if err != nil {
		return Decision{}, err
	}

	// Join an existing group on a case-insensitive name match so "dev"
	// and "Dev" don't end up side by side.
	if match, ok := lo.Find(existing, func(g ExistingGroup) bool {
		return strings.EqualFold(g.Name, decision.Name)
	}); ok {
		decision.Name = match.Name
		decision.Color = NormalizeColor(match.Color)
	}

	if err := p.browser.ApplyGroup(ctx, tab, decision); err != nil {
		return Decision{}, fmt.Errorf("applying group: %w", err)
	}

	p.log.Debug("tab grouped", "tab", tab.ID, "group", decision.Name, "color", decision.Color)
	return decision, nil
}

// ProcessAll groups every tab reported by the browser, strictly
// sequentially with Delay between items. A failing tab is logged and
// skipped, not fatal. Returns the number of tabs grouped.
func (p *Processor) ProcessAll(ctx context.Context) (int, error) {
	if p.enabled != nil && !p.enabled() {
		return 0, fmt.Errorf("grouping is disabled")
	}

	tabs, err := p.browser.Tabs(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing tabs: %w", err)
	}

	grouped := 0
	for i, tab := range tabs {
		if i > 0 && p.Delay > 0 {
			select {
			case <-time.After(p.Delay):
			case <-ctx.Done():
				return grouped, ctx.Err()
			}
		}

		if _, err := p.ProcessTab(ctx, tab); err != nil {
			p.log.Warn("skipping tab", "tab", tab.ID, "error", err)
			continue
		}
		grouped++
	}
	return grouped, nil
}
