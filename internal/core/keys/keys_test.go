package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yejue/key-overlay/internal/core/model"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"a", "A"},
		{"z", "Z"},
		{"1", "1"},
		{"A", "A"},
		{"space", "SPACE"},
		{"left shift", "LEFT_SHIFT"},
		{"right ctrl", "RIGHT_CTRL"},
		{"caps lock", "CAPS_LOCK"},
		{"enter", "ENTER"},
		{"key space", "KEYSPACE"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.raw), "Normalize(%q)", tt.raw)
	}
}

func TestPressedSetDisplaySorted(t *testing.T) {
	set := NewPressedSet()

	set.Apply("B", model.TransitionDown)
	display := set.Apply("A", model.TransitionDown)
	assert.Equal(t, "A+B", display)

	display = set.Apply("CTRL", model.TransitionDown)
	assert.Equal(t, "A+B+CTRL", display)
}

func TestPressedSetDuplicateDown(t *testing.T) {
	set := NewPressedSet()

	set.Apply("A", model.TransitionDown)
	display := set.Apply("A", model.TransitionDown)

	assert.Equal(t, "A", display)
	assert.Equal(t, 1, set.Len())
}

func TestPressedSetReleaseUnknownKey(t *testing.T) {
	set := NewPressedSet()

	set.Apply("A", model.TransitionDown)
	display := set.Apply("B", model.TransitionUp)

	assert.Equal(t, "A", display)
}

func TestPressedSetReleaseRemoves(t *testing.T) {
	set := NewPressedSet()

	set.Apply("A", model.TransitionDown)
	set.Apply("B", model.TransitionDown)
	display := set.Apply("A", model.TransitionUp)

	assert.Equal(t, "B", display)

	display = set.Apply("B", model.TransitionUp)
	assert.Equal(t, "", display)
}

func TestPressedSetClear(t *testing.T) {
	set := NewPressedSet()

	set.Apply("A", model.TransitionDown)
	set.Apply("B", model.TransitionDown)
	set.Clear()

	assert.Equal(t, "", set.Display())
	assert.Equal(t, 0, set.Len())
}
