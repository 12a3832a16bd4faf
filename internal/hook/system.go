package hook

import (
	"fmt"
	"sync"

	"github.com/go-vgo/robotgo"
	gohook "github.com/robotn/gohook"

	"github.com/yejue/key-overlay/internal/core/model"
)

// SystemKeyboard implements Keyboard on top of the gohook global event tap
// and robotgo key synthesis.
type SystemKeyboard struct {
	mu     sync.Mutex
	active bool
}

// NewSystemKeyboard returns the real keyboard capability.
func NewSystemKeyboard() *SystemKeyboard {
	return &SystemKeyboard{}
}

// Hook installs the global event tap and routes every key transition into
// callback. The callback runs on the pump goroutine and must not block.
func (keyboard *SystemKeyboard) Hook(callback func(model.RawKeyEvent)) (*Handle, error) {
	keyboard.mu.Lock()
	defer keyboard.mu.Unlock()

	if keyboard.active {
		return nil, ErrHookActive
	}
	keyboard.active = true

	events := gohook.Start()
	handle := &Handle{stop: make(chan struct{})}

	go func() {
		for {
			select {
			case <-handle.stop:
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				raw, valid := translate(event)
				if valid {
					callback(raw)
				}
			}
		}
	}()

	return handle, nil
}

// Unhook removes the event tap. Safe to call with a nil handle.
func (keyboard *SystemKeyboard) Unhook(handle *Handle) {
	keyboard.mu.Lock()
	defer keyboard.mu.Unlock()

	if !keyboard.active {
		return
	}
	keyboard.active = false
	if handle != nil {
		close(handle.stop)
	}
	gohook.End()
}

// Press synthesizes a key-down for the named key.
func (keyboard *SystemKeyboard) Press(name string) error {
	if err := robotgo.KeyDown(name); err != nil {
		return fmt.Errorf("press %q: %w", name, err)
	}
	return nil
}

// Release synthesizes a key-up for the named key.
func (keyboard *SystemKeyboard) Release(name string) error {
	if err := robotgo.KeyUp(name); err != nil {
		return fmt.Errorf("release %q: %w", name, err)
	}
	return nil
}

// translate converts a gohook event into the engine's raw form. OS key
// auto-repeat (KeyHold) counts as a down, matching hardware behavior.
func translate(event gohook.Event) (model.RawKeyEvent, bool) {
	var transition model.Transition
	switch event.Kind {
	case gohook.KeyDown, gohook.KeyHold:
		transition = model.TransitionDown
	case gohook.KeyUp:
		transition = model.TransitionUp
	default:
		return model.RawKeyEvent{}, false
	}

	name := gohook.RawcodetoKeychar(event.Rawcode)
	if name == "" && event.Keychar != 0 && event.Keychar != 65535 {
		name = string(event.Keychar)
	}
	if name == "" {
		return model.RawKeyEvent{}, false
	}

	return model.RawKeyEvent{
		Name:       name,
		ScanCode:   int(event.Rawcode),
		Transition: transition,
	}, true
}
