// Package hook abstracts the OS-level keyboard capability: observing global
// key transitions and synthesizing virtual ones.
package hook

import (
	"errors"

	"github.com/yejue/key-overlay/internal/core/model"
)

// ErrHookActive indicates an interception hook is already installed.
// Only one hook may observe the keyboard at a time.
var ErrHookActive = errors.New("keyboard hook already active")

// Handle identifies an installed hook.
type Handle struct {
	stop chan struct{}
}

// Keyboard is the capability the engine depends on. Press and Release are
// best-effort: unsupported key names fail per call, never panic.
type Keyboard interface {
	Hook(callback func(model.RawKeyEvent)) (*Handle, error)
	Unhook(handle *Handle)
	Press(name string) error
	Release(name string) error
}
