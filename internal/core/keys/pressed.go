package keys

import (
	"sort"
	"strings"
	"sync"

	"github.com/yejue/key-overlay/internal/core/model"
)

// PressedSet tracks the canonical tokens currently held down. It is written
// by the hook callback and read by the overlay, so every operation takes the
// lock. Removing an absent token is a no-op, which covers missed or
// out-of-order hook events.
type PressedSet struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

// NewPressedSet returns an empty pressed-key set.
func NewPressedSet() *PressedSet {
	return &PressedSet{tokens: make(map[string]struct{})}
}

// Apply records a transition for the token and returns the resulting
// display string.
func (set *PressedSet) Apply(token string, transition model.Transition) string {
	set.mu.Lock()
	defer set.mu.Unlock()

	switch transition {
	case model.TransitionDown:
		set.tokens[token] = struct{}{}
	case model.TransitionUp:
		delete(set.tokens, token)
	}
	return set.displayLocked()
}

// Display returns the held tokens joined by "+" in ascending order, so the
// overlay text is stable regardless of press order.
func (set *PressedSet) Display() string {
	set.mu.Lock()
	defer set.mu.Unlock()
	return set.displayLocked()
}

// Clear empties the set. Called when monitoring is turned off.
func (set *PressedSet) Clear() {
	set.mu.Lock()
	defer set.mu.Unlock()
	set.tokens = make(map[string]struct{})
}

// Len returns the number of held tokens.
func (set *PressedSet) Len() int {
	set.mu.Lock()
	defer set.mu.Unlock()
	return len(set.tokens)
}

func (set *PressedSet) displayLocked() string {
	if len(set.tokens) == 0 {
		return ""
	}
	sorted := make([]string, 0, len(set.tokens))
	for token := range set.tokens {
		sorted = append(sorted, token)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, "+")
}
