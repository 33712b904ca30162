// Package profanity rejects text containing blocked words or phrases.
//
// Matching is substring containment on normalized text, not token equality,
// so "prdel" also blocks "prdelka" and any innocent word that embeds it.
package profanity

import (
	"strings"

	"github.com/robalobadob/chainbot/assets"
	"github.com/robalobadob/chainbot/internal/textnorm"
)

// Filter holds a normalized block-list.
type Filter struct {
	entries []string
}

// New builds a filter; entries are lower-cased and stripped of diacritics.
// Empty entries are ignored since they would match everything.
func New(entries ...string) *Filter {
	f := &Filter{entries: make([]string, 0, len(entries))}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		n := textnorm.Normalize(strings.ToLower(strings.TrimSpace(e)))
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		f.entries = append(f.entries, n)
	}
	return f
}

// Default returns a filter over the embedded block-list.
func Default() (*Filter, error) {
	list, err := assets.BlockList()
	if err != nil {
		return nil, err
	}
	return New(list...), nil
}

// IsBlocked reports whether any entry occurs inside normalized.
func (f *Filter) IsBlocked(normalized string) bool {
	_, ok := f.Match(normalized)
	return ok
}

// Match returns the first entry found inside normalized.
func (f *Filter) Match(normalized string) (string, bool) {
	if f == nil {
		return "", false
	}
	for _, e := range f.entries {
		if strings.Contains(normalized, e) {
			return e, true
		}
	}
	return "", false
}

// Len returns the number of distinct entries.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.entries)
}
