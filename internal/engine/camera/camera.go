// Package camera provides the scene cameras and the registry that selects the active one.
package camera

import (
	gomath "math"

	"github.com/Faultbox/marine-scene/pkg/math"
)

// FieldOfView is the vertical field of view shared by every camera (90 degrees).
const FieldOfView = float32(gomath.Pi / 2)

// Convention selects how a camera's At vector is interpreted.
type Convention int

const (
	// LookAt aims the camera at the point At.
	LookAt Convention = iota
	// LookTo aims the camera along the direction At.
	LookTo
)

// String returns the convention name.
func (c Convention) String() string {
	if c == LookTo {
		return "look-to"
	}
	return "look-at"
}

// Camera owns one view/projection configuration.
// Eye, At and Up may be mutated between updates; the convention is fixed.
type Camera struct {
	Eye math.Vec3
	At  math.Vec3 // target point (LookAt) or facing direction (LookTo)
	Up  math.Vec3

	width, height float32
	near, far     float32
	convention    Convention

	view       math.Mat4
	projection math.Mat4
}

// New creates a camera and computes its initial view and projection.
func New(eye, at, up math.Vec3, width, height, near, far float32, convention Convention) *Camera {
	c := &Camera{
		Eye:        eye,
		At:         at,
		Up:         up,
		width:      width,
		height:     height,
		near:       near,
		far:        far,
		convention: convention,
	}
	c.Update(convention)
	c.projection = math.PerspectiveFovLH(FieldOfView, width/height, near, far)
	return c
}

// Update recomputes the view matrix from the current eye, at and up.
// The projection is left untouched.
func (c *Camera) Update(convention Convention) {
	if convention == LookTo {
		c.view = math.LookToLH(c.Eye, c.At, c.Up)
	} else {
		c.view = math.LookAtLH(c.Eye, c.At, c.Up)
	}
}

// MoveFirstPerson places the eye at position and rebuilds the view.
// The facing direction is set separately through At.
func (c *Camera) MoveFirstPerson(position math.Vec3, convention Convention) {
	c.Eye = position
	c.Update(convention)
}

// MoveThirdPerson places the eye at position, aims it at at and rebuilds the view.
func (c *Camera) MoveThirdPerson(position, at math.Vec3, convention Convention) {
	c.Eye = position
	c.At = at
	c.Update(convention)
}

// Convention returns the convention chosen at construction.
func (c *Camera) Convention() Convention {
	return c.convention
}

// View returns the current view matrix.
func (c *Camera) View() math.Mat4 {
	return c.view
}

// Projection returns the projection matrix.
func (c *Camera) Projection() math.Mat4 {
	return c.projection
}

// Viewport returns the viewport size the projection was built for.
func (c *Camera) Viewport() (width, height float32) {
	return c.width, c.height
}

// ClipRange returns the near and far clip distances.
func (c *Camera) ClipRange() (near, far float32) {
	return c.near, c.far
}
