package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.False(t, cfg.DebugMode)
	assert.Equal(t, "", cfg.RecordPath)
	assert.Equal(t, 10, cfg.SliceIntervalMs)
	assert.Equal(t, 3, cfg.CountdownSeconds)
}

func TestSliceInterval(t *testing.T) {
	cfg := &Config{SliceIntervalMs: 25}
	assert.Equal(t, 25*time.Millisecond, cfg.SliceInterval())
}
