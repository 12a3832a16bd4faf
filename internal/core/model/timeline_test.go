package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionValid(t *testing.T) {
	assert.True(t, TransitionDown.Valid())
	assert.True(t, TransitionUp.Valid())
	assert.False(t, Transition("sideways").Valid())
	assert.False(t, Transition("").Valid())
}

func TestUniqueKeyNamesKeepsFirstAppearanceOrder(t *testing.T) {
	timeline := Timeline{Events: []KeyEvent{
		{Elapsed: 0, Transition: TransitionDown, Name: "b"},
		{Elapsed: 0.1, Transition: TransitionDown, Name: "a"},
		{Elapsed: 0.2, Transition: TransitionUp, Name: "b"},
		{Elapsed: 0.3, Transition: TransitionUp, Name: "a"},
	}}

	assert.Equal(t, []string{"b", "a"}, timeline.UniqueKeyNames())
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 0.0, Timeline{}.Duration())

	timeline := Timeline{Events: []KeyEvent{
		{Elapsed: 0, Transition: TransitionDown, Name: "a"},
		{Elapsed: 1.25, Transition: TransitionUp, Name: "a"},
	}}
	assert.Equal(t, 1.25, timeline.Duration())
}
