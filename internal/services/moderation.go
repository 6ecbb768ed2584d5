package services

import "strings"

// Moderator decides whether submitted text must be rejected before it is
// stored. Callers depend only on the boolean contract, so the denylist
// below can be swapped for a real moderation backend later.
type Moderator interface {
	// Reject reports whether text contains disallowed content.
	Reject(text string) bool
}

// DenylistModerator rejects text containing any denylisted word as a
// case-sensitive substring. An empty denylist never rejects.
type DenylistModerator struct {
	words []string
}

func NewDenylistModerator(words []string) *DenylistModerator {
	return &DenylistModerator{words: words}
}

func (m *DenylistModerator) Reject(text string) bool {
	for _, word := range m.words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
