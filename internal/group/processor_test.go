package group

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeBrowser struct {
	mu      sync.Mutex
	tabs    []Tab
	groups  []ExistingGroup
	applied map[int]Decision

	tabsErr  error
	applyErr error
}

func newFakeBrowser(tabs []Tab, groups []ExistingGroup) *fakeBrowser {
	return &fakeBrowser{tabs: tabs, groups: groups, applied: make(map[int]Decision)}
}

func (b *fakeBrowser) Tabs(context.Context) ([]Tab, error) {
	if b.tabsErr != nil {
		return nil, b.tabsErr
	}
	return b.tabs, nil
}

func (b *fakeBrowser) Groups(context.Context, int) ([]ExistingGroup, error) {
	return b.groups, nil
}

func (b *fakeBrowser) ApplyGroup(_ context.Context, tab Tab, d Decision) error {
	if b.applyErr != nil {
		return b.applyErr
	}
	b.mu.Lock()
	b.applied[tab.ID] = d
	b.mu.Unlock()
	return nil
}

func TestProcessor_ProcessTab(t *testing.T) {
	browser := newFakeBrowser(nil, nil)
	engine := NewEngine(&fakeProvider{response: `{"groupName": "Dev", "color": "blue"}`}, nil)
	p := NewProcessor(engine, browser, nil, nil)

	d, err := p.ProcessTab(context.Background(), Tab{ID: 7, WindowID: 1, Title: "docs"})
	if err != nil {
		t.Fatalf("ProcessTab error: %v", err)
	}
	if d.Name != "Dev" || d.Color != "blue" {
		t.Errorf("decision = %+v", d)
	}
	if got := browser.applied[7]; got != d {
		t.Errorf("applied = %+v, want %+v", got, d)
	}
}

func TestProcessor_JoinsExistingGroupCaseInsensitive(t *testing.T) {
	browser := newFakeBrowser(nil, []ExistingGroup{{Name: "dev", Color: "purple"}})
	engine := NewEngine(&fakeProvider{response: `{"groupName": "Dev", "color": "blue"}`}, nil)
	p := NewProcessor(engine, browser, nil, nil)

	d, err := p.ProcessTab(context.Background(), Tab{ID: 1, WindowID: 1})
	if err != nil {
		t.Fatalf("ProcessTab error: %v", err)
	}
	if d.Name != "dev" || d.Color != "purple" {
		t.Errorf("decision = %+v, want existing group reused verbatim", d)
	}
}

func TestProcessor_InFlightGuard(t *testing.T) {
	browser := newFakeBrowser(nil, nil)

	release := make(chan struct{})
	blocking := &blockingProvider{started: make(chan struct{}, 1), release: release}
	p := NewProcessor(NewEngine(blocking, nil), browser, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.ProcessTab(context.Background(), Tab{ID: 42})
	}()

	<-blocking.started

	if _, err := p.ProcessTab(context.Background(), Tab{ID: 42}); err == nil {
		t.Error("expected second concurrent call for same tab to be rejected")
	}
	close(release)
	wg.Wait()

	// Once the first call finishes, the tab can be processed again.
	if _, err := p.ProcessTab(context.Background(), Tab{ID: 42}); err != nil {
		t.Errorf("reprocessing after completion should succeed: %v", err)
	}
}

type blockingProvider struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingProvider) Complete(context.Context, string) (string, error) {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-b.release
	return `{"groupName": "X", "color": "grey"}`, nil
}

func (b *blockingProvider) Name() string { return "blocking" }

func TestProcessor_Disabled(t *testing.T) {
	p := NewProcessor(
		NewEngine(&fakeProvider{response: "{}"}, nil),
		newFakeBrowser([]Tab{{ID: 1}}, nil),
		func() bool { return false },
		nil,
	)

	if _, err := p.ProcessTab(context.Background(), Tab{ID: 1}); err == nil {
		t.Error("expected error when disabled")
	}
	if _, err := p.ProcessAll(context.Background()); err == nil {
		t.Error("expected error when disabled")
	}
}

func TestProcessor_ProcessAll(t *testing.T) {
	tabs := []Tab{{ID: 1, WindowID: 1}, {ID: 2, WindowID: 1}, {ID: 3, WindowID: 1}}
	browser := newFakeBrowser(tabs, nil)
	fp := &fakeProvider{response: `{"groupName": "Batch", "color": "orange"}`}

	p := NewProcessor(NewEngine(fp, nil), browser, nil, nil)
	p.Delay = 0

	n, err := p.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("ProcessAll error: %v", err)
	}
	if n != 3 {
		t.Errorf("grouped = %d, want 3", n)
	}
	if len(browser.applied) != 3 {
		t.Errorf("applied %d tabs, want 3", len(browser.applied))
	}
	if len(fp.prompts) != 3 {
		t.Errorf("provider called %d times, want 3", len(fp.prompts))
	}
}

func TestProcessor_ProcessAllSkipsFailingTab(t *testing.T) {
	tabs := []Tab{{ID: 1}, {ID: 2}}
	browser := newFakeBrowser(tabs, nil)

	fp := &flakyProvider{failOn: 1, response: `{"groupName": "OK", "color": "green"}`}
	p := NewProcessor(NewEngine(fp, nil), browser, nil, nil)
	p.Delay = 0

	n, err := p.ProcessAll(context.Background())
	if err != nil {
		t.Fatalf("ProcessAll error: %v", err)
	}
	if n != 1 {
		t.Errorf("grouped = %d, want 1 (first tab fails, second succeeds)", n)
	}
	if _, ok := browser.applied[1]; ok {
		t.Error("failed tab should not have been grouped")
	}
	if _, ok := browser.applied[2]; !ok {
		t.Error("second tab should have been grouped despite first failing")
	}
}

type flakyProvider struct {
	calls    int
	failOn   int
	response string
}

func (f *flakyProvider) Complete(context.Context, string) (string, error) {
	f.calls++
	if f.calls == f.failOn {
		return "", errors.New("transient provider failure")
	}
	return f.response, nil
}

func (f *flakyProvider) Name() string { return "flaky" }

func TestProcessor_ProcessAllCancellation(t *testing.T) {
	tabs := []Tab{{ID: 1}, {ID: 2}}
	browser := newFakeBrowser(tabs, nil)
	p := NewProcessor(NewEngine(&fakeProvider{response: `{"groupName": "X", "color": "grey"}`}, nil), browser, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Delay select observes the cancelled context before the second tab.
	n, err := p.ProcessAll(ctx)
	if err == nil {
		t.Error("expected context error")
	}
	if n > 1 {
		t.Errorf("grouped = %d after cancellation, want at most 1", n)
	}
}
