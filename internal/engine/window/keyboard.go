package window

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/marine-scene/internal/engine/input"
)

// Keyboard is an input.Source reading the SDL keyboard state once per Update.
type Keyboard struct {
	scancodes [input.TriggerCount]sdl.Scancode
	snapshot  input.Snapshot

	// OnResize is called when the window is resized.
	OnResize func(width, height int)
}

var _ input.Source = (*Keyboard)(nil)

// NewKeyboard resolves every binding to a scancode. SDL must be initialized.
func NewKeyboard(b input.Bindings) (*Keyboard, error) {
	k := &Keyboard{}
	for t := input.Trigger(0); t < input.TriggerCount; t++ {
		name, ok := b[t]
		if !ok {
			continue
		}
		sc := sdl.GetScancodeFromName(name)
		if sc == sdl.SCANCODE_UNKNOWN {
			return nil, fmt.Errorf("trigger %s: unknown key %q", t, name)
		}
		k.scancodes[t] = sc
	}
	return k, nil
}

// Update drains pending window events and captures the held keys.
// Returns true if the window was closed.
func (k *Keyboard) Update() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED && k.OnResize != nil {
				k.OnResize(int(e.Data1), int(e.Data2))
			}
		}
	}

	state := sdl.GetKeyboardState()
	for t, sc := range k.scancodes {
		k.snapshot[t] = sc != sdl.SCANCODE_UNKNOWN && int(sc) < len(state) && state[sc] != 0
	}
	return false
}

// Snapshot returns the state captured by the last Update.
func (k *Keyboard) Snapshot() input.Snapshot {
	return k.snapshot
}
