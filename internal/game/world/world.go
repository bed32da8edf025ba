package world

import "github.com/Faultbox/marine-scene/pkg/math"

// RockCount is the number of rocks in the field.
const RockCount = 28

// SkyScale is the uniform skybox scale.
const SkyScale = float32(120)

// WaterLevel is the water plane's vertical offset.
const WaterLevel = float32(-1.5)

// RockPositions is the fixed rock layout: a row of five at z=+67, a row of
// five at z=-67, then a column of nine at x=-70 and one at x=+70.
var RockPositions = [RockCount]math.Vec3{
	{X: -50, Y: -6, Z: 67},
	{X: -25, Y: -6, Z: 67},
	{X: 0, Y: -6, Z: 67},
	{X: 25, Y: -6, Z: 67},
	{X: 50, Y: -6, Z: 67},

	{X: -50, Y: -7, Z: -67},
	{X: -25, Y: -7, Z: -67},
	{X: 0, Y: -7, Z: -67},
	{X: 25, Y: -7, Z: -67},
	{X: 50, Y: -7, Z: -67},

	{X: -70, Y: -7, Z: 55},
	{X: -70, Y: -7, Z: 40},
	{X: -70, Y: -7, Z: 25},
	{X: -70, Y: -7, Z: 10},
	{X: -70, Y: -7, Z: -5},
	{X: -70, Y: -7, Z: -20},
	{X: -70, Y: -7, Z: -35},
	{X: -70, Y: -7, Z: -50},
	{X: -70, Y: -7, Z: -65},

	{X: 70, Y: -7, Z: 55},
	{X: 70, Y: -7, Z: 40},
	{X: 70, Y: -7, Z: 25},
	{X: 70, Y: -7, Z: 10},
	{X: 70, Y: -7, Z: -5},
	{X: 70, Y: -7, Z: -20},
	{X: 70, Y: -7, Z: -35},
	{X: 70, Y: -7, Z: -50},
	{X: 70, Y: -7, Z: -65},
}

// World holds the transform of every drawable.
type World struct {
	Boat  *Boat
	Water math.Mat4
	Rocks [RockCount]math.Mat4
	Sky   math.Mat4
}

// New returns a world with the boat at its start pose.
func New() *World {
	w := &World{Boat: NewBoat()}
	w.Update(0)
	return w
}

// Update recomputes the static transforms. elapsed is in seconds.
func (w *World) Update(elapsed float32) {
	w.Water = math.Translate(0, WaterLevel, 0)
	for i, p := range RockPositions {
		w.Rocks[i] = math.TranslateVec(p)
	}
	w.Sky = SkyTransform(elapsed)
}

// SkyAngle is the skybox yaw after elapsed seconds.
func SkyAngle(elapsed float32) float32 {
	return -elapsed / 10
}

// SkyTransform scales the sky sphere and spins it slowly about +Y.
func SkyTransform(elapsed float32) math.Mat4 {
	return math.RotateY(SkyAngle(elapsed)).Mul(math.Scale(SkyScale, SkyScale, SkyScale))
}
