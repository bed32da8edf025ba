// Package world owns every transform in the scene: the player boat, the
// water plane, the rock field and the skybox.
package world

import "github.com/Faultbox/marine-scene/pkg/math"

// Boat tuning constants, applied once per tick.
const (
	TurnStep        = float32(0.0003) // radians
	ForwardDivisor  = float32(75)
	BoostDivisor    = float32(25)
	BackwardDivisor = float32(200)
	InitialScale    = float32(0.25)
)

// Camera follow offsets in world space.
var (
	FirstPersonOffset = math.Vec3{Y: 2}
	ThirdPersonOffset = math.Vec3{Y: 20, Z: -15}
)

// Boat is the player boat pose.
// Facing is adjusted alongside the transform but never renormalized.
type Boat struct {
	Transform math.Mat4
	Facing    math.Vec3
	Up        math.Vec3
}

// NewBoat returns a boat at the origin facing +Z.
func NewBoat() *Boat {
	return &Boat{
		Transform: math.Scale(InitialScale, InitialScale, InitialScale),
		Facing:    math.Vec3{Z: 1},
		Up:        math.Vec3{Y: 1},
	}
}

// Right returns facing x up.
func (b *Boat) Right() math.Vec3 {
	return b.Facing.Cross(b.Up)
}

// TurnRight yaws the boat clockwise by one step.
func (b *Boat) TurnRight() {
	right := b.Right()
	b.Transform = b.Transform.Mul(math.RotateY(TurnStep))
	b.Facing = b.Facing.Sub(right.Scale(TurnStep))
}

// TurnLeft yaws the boat anticlockwise by one step.
func (b *Boat) TurnLeft() {
	right := b.Right()
	b.Transform = b.Transform.Mul(math.RotateY(-TurnStep))
	b.Facing = b.Facing.Add(right.Scale(TurnStep))
}

// Forward moves the boat along its facing at normal speed.
func (b *Boat) Forward() {
	b.translate(b.Facing.Div(ForwardDivisor))
}

// Boost moves the boat along its facing at three times normal speed.
func (b *Boat) Boost() {
	b.translate(b.Facing.Div(BoostDivisor))
}

// Backward moves the boat against its facing.
func (b *Boat) Backward() {
	b.translate(b.Facing.Negate().Div(BackwardDivisor))
}

// translate applies a world-space offset after the current transform.
func (b *Boat) translate(delta math.Vec3) {
	b.Transform = math.TranslateVec(delta).Mul(b.Transform)
}

// Position returns the boat's world position.
func (b *Boat) Position() math.Vec3 {
	return b.Transform.Translation()
}

// FirstPersonEye is where the first-person camera sits.
func (b *Boat) FirstPersonEye() math.Vec3 {
	return b.Position().Add(FirstPersonOffset)
}

// ThirdPersonEye is where the chase camera sits. The offset does not
// rotate with the boat.
func (b *Boat) ThirdPersonEye() math.Vec3 {
	return b.Position().Add(ThirdPersonOffset)
}
