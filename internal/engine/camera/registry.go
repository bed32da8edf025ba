package camera

import (
	"fmt"

	"github.com/Faultbox/marine-scene/pkg/math"
)

// Mode identifies one of the five scene cameras.
type Mode int

const (
	FreeMove Mode = iota
	FirstPerson
	BirdsEye
	ThirdPerson
	StaticPerspective

	modeCount
)

// Modes lists every mode in selection priority order.
var Modes = [...]Mode{FreeMove, FirstPerson, BirdsEye, ThirdPerson, StaticPerspective}

var modeNames = [...]string{
	FreeMove:          "free-move",
	FirstPerson:       "first-person",
	BirdsEye:          "birds-eye",
	ThirdPerson:       "third-person",
	StaticPerspective: "static-perspective",
}

// String returns the mode name.
func (m Mode) String() string {
	if m < 0 || m >= modeCount {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Static reports whether the mode's camera never moves after construction.
func (m Mode) Static() bool {
	return m == BirdsEye || m == StaticPerspective
}

// Preset describes how a registry camera is constructed.
type Preset struct {
	Eye, At, Up math.Vec3
	Near, Far   float32
	Convention  Convention
}

// DefaultPresets returns the construction parameters for each mode.
func DefaultPresets() map[Mode]Preset {
	yUp := math.Vec3{Y: 1}
	return map[Mode]Preset{
		FreeMove: {
			Eye: math.Vec3{Y: 5, Z: 25}, At: math.Vec3{Z: -1}, Up: yUp,
			Near: 0.01, Far: 150, Convention: LookTo,
		},
		FirstPerson: {
			At: math.Vec3{Z: -1}, Up: yUp,
			Near: 0.01, Far: 150, Convention: LookTo,
		},
		// Looks straight down, so up cannot be +Y.
		BirdsEye: {
			Eye: math.Vec3{Y: 65}, Up: math.Vec3{X: 1},
			Near: 0.01, Far: 250, Convention: LookAt,
		},
		ThirdPerson: {
			Eye: math.Vec3{Y: 20, Z: -15}, Up: yUp,
			Near: 0.01, Far: 150, Convention: LookAt,
		},
		StaticPerspective: {
			Eye: math.Vec3{X: 10, Y: 50, Z: 15}, Up: yUp,
			Near: 0.01, Far: 250, Convention: LookAt,
		},
	}
}

// Registry holds one camera per mode and the active selection.
type Registry struct {
	cameras [modeCount]*Camera
	active  Mode
}

// NewRegistry builds all five cameras for the given viewport. FreeMove starts active.
func NewRegistry(width, height float32, presets map[Mode]Preset) (*Registry, error) {
	r := &Registry{active: FreeMove}
	for _, mode := range Modes {
		p, ok := presets[mode]
		if !ok {
			return nil, fmt.Errorf("no camera preset for %s", mode)
		}
		r.cameras[mode] = New(p.Eye, p.At, p.Up, width, height, p.Near, p.Far, p.Convention)
	}
	return r, nil
}

// Camera returns the camera for mode.
func (r *Registry) Camera(mode Mode) *Camera {
	return r.cameras[mode]
}

// Active returns the active mode.
func (r *Registry) Active() Mode {
	return r.active
}

// ActiveCamera returns the camera of the active mode.
func (r *Registry) ActiveCamera() *Camera {
	return r.cameras[r.active]
}

// Select makes mode active and reports whether it changed.
func (r *Registry) Select(mode Mode) bool {
	if mode == r.active {
		return false
	}
	r.active = mode
	return true
}
