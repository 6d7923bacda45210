package sanitize

import (
	"fmt"
	"regexp"
	"sync"
)

// Built-in category names, usable with Enable and Disable.
const (
	CategoryEmail      = "email"
	CategoryCreditCard = "creditcard"
	CategorySSN        = "ssn"
	CategoryPhone      = "phone"
	CategoryIP         = "ip"
	CategoryAccount    = "account"
)

// rule pairs a compiled regex with the placeholder it replaces matches with.
type rule struct {
	name        string
	pattern     *regexp.Regexp
	placeholder string
	enabled     bool
}

// builtinRules is ordered: specific digit shapes (credit card, SSN) run
// before the generic account-number catch-all would otherwise consume the
// same digits.
func builtinRules() []*rule {
	return []*rule{
		{
			name:        CategoryEmail,
			pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
			placeholder: "[EMAIL]",
			enabled:     true,
		},
		{
			name:        CategoryCreditCard,
			pattern:     regexp.MustCompile(`\b(?:\d{4}[ \-]?){3}\d{4}\b`),
			placeholder: "[CREDIT_CARD]",
			enabled:     true,
		},
		{
			name:        CategorySSN,
			pattern:     regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
			placeholder: "[SSN]",
			enabled:     true,
		},
		{
			name:        CategoryPhone,
			pattern:     regexp.MustCompile(`(?:\+?1[-. ])?(?:\(\d{3}\)|\d{3})[-. ]\d{3}[-. ]\d{4}\b`),
			placeholder: "[PHONE]",
			enabled:     true,
		},
		{
			name:        CategoryIP,
			pattern:     regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
			placeholder: "[IP]",
			enabled:     true,
		},
		{
			name:        CategoryAccount,
			pattern:     regexp.MustCompile(`\b\d{8,}\b`),
			placeholder: "[ACCOUNT]",
			enabled:     true,
		},
	}
}

// Sanitizer applies the active rule set to free text and URLs. Safe for
// concurrent use; rule toggling and registration take the write lock.
type Sanitizer struct {
	mu      sync.RWMutex
	builtin []*rule
	custom  []*rule
}

// New returns a Sanitizer with all built-in categories enabled and no custom
// rules.
func New() *Sanitizer {
	return &Sanitizer{builtin: builtinRules()}
}

// Text replaces all non-overlapping matches of every active rule with that
// rule's placeholder.
func (s *Sanitizer) Text(text string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.builtin {
		if r.enabled {
			text = r.pattern.ReplaceAllString(text, r.placeholder)
		}
	}
	for _, r := range s.custom {
		text = r.pattern.ReplaceAllString(text, r.placeholder)
	}
	return text
}

// TabData sanitizes one tab's title and URL together.
func (s *Sanitizer) TabData(title, url string) (string, string) {
	return s.Text(title), s.URL(url)
}

// Enable turns a built-in category on. Returns false for unknown names.
func (s *Sanitizer) Enable(category string) bool {
	return s.setEnabled(category, true)
}

// Disable turns a built-in category off. Returns false for unknown names.
func (s *Sanitizer) Disable(category string) bool {
	return s.setEnabled(category, false)
}

func (s *Sanitizer) setEnabled(category string, enabled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.builtin {
		if r.name == category {
			r.enabled = enabled
			return true
		}
	}
	return false
}

// AddRule registers a custom redaction rule. Custom rules run after the
// built-ins, in registration order, and cannot be disabled.
func (s *Sanitizer) AddRule(name, pattern, placeholder string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("compiling rule %q: %w", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.custom = append(s.custom, &rule{name: name, pattern: re, placeholder: placeholder, enabled: true})
	return nil
}
