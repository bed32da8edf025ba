package input

import (
	"fmt"
	"sort"
)

// Trigger is a logical input, independent of the physical key bound to it.
type Trigger int

const (
	CameraFreeMove Trigger = iota
	CameraFirstPerson
	CameraBirdsEye
	CameraThirdPerson
	CameraStaticPerspective
	BoatTurnRight
	BoatTurnLeft
	BoatForward
	BoatBoost
	BoatBackward
	Wireframe
	FreeForward
	FreeLeft
	FreeRight
	FreeBackward
	Screenshot
	Quit

	TriggerCount // sentinel for array sizing
)

var triggerNames = [TriggerCount]string{
	CameraFreeMove:          "camera_free_move",
	CameraFirstPerson:       "camera_first_person",
	CameraBirdsEye:          "camera_birds_eye",
	CameraThirdPerson:       "camera_third_person",
	CameraStaticPerspective: "camera_static_perspective",
	BoatTurnRight:           "boat_turn_right",
	BoatTurnLeft:            "boat_turn_left",
	BoatForward:             "boat_forward",
	BoatBoost:               "boat_boost",
	BoatBackward:            "boat_backward",
	Wireframe:               "wireframe",
	FreeForward:             "free_forward",
	FreeLeft:                "free_left",
	FreeRight:               "free_right",
	FreeBackward:            "free_backward",
	Screenshot:              "screenshot",
	Quit:                    "quit",
}

// String returns the trigger's config name.
func (t Trigger) String() string {
	if t < 0 || t >= TriggerCount {
		return fmt.Sprintf("Trigger(%d)", int(t))
	}
	return triggerNames[t]
}

// ParseTrigger resolves a config name to a trigger.
func ParseTrigger(name string) (Trigger, error) {
	for i, n := range triggerNames {
		if n == name {
			return Trigger(i), nil
		}
	}
	return 0, fmt.Errorf("unknown trigger %q", name)
}

// Snapshot is the held state of every trigger, captured once per tick.
type Snapshot [TriggerCount]bool

// Held reports whether t was held when the snapshot was taken.
func (s Snapshot) Held(t Trigger) bool {
	return s[t]
}

// SnapshotOf builds a snapshot with the given triggers held.
func SnapshotOf(held ...Trigger) Snapshot {
	var s Snapshot
	for _, t := range held {
		s[t] = true
	}
	return s
}

// Bindings maps each trigger to a key name.
type Bindings map[Trigger]string

// DefaultBindings returns the numpad camera keys, arrow boat keys and WASD free-move keys.
func DefaultBindings() Bindings {
	return Bindings{
		CameraFreeMove:          "Keypad 1",
		CameraFirstPerson:       "Keypad 2",
		CameraBirdsEye:          "Keypad 3",
		CameraThirdPerson:       "Keypad 4",
		CameraStaticPerspective: "Keypad 5",
		BoatTurnRight:           "Right",
		BoatTurnLeft:            "Left",
		BoatForward:             "Up",
		BoatBoost:               "T",
		BoatBackward:            "Down",
		Wireframe:               "Keypad 9",
		FreeForward:             "W",
		FreeLeft:                "A",
		FreeRight:               "D",
		FreeBackward:            "S",
		Screenshot:              "F12",
		Quit:                    "Escape",
	}
}

// ParseBindings overlays name -> key overrides on the defaults.
func ParseBindings(overrides map[string]string) (Bindings, error) {
	b := DefaultBindings()
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t, err := ParseTrigger(name)
		if err != nil {
			return nil, err
		}
		if overrides[name] == "" {
			return nil, fmt.Errorf("empty key for trigger %s", name)
		}
		b[t] = overrides[name]
	}
	return b, nil
}
