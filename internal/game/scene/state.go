// Package scene holds the per-run scene state shared by input handling,
// kinematics and rendering.
package scene

import (
	"github.com/Faultbox/marine-scene/internal/engine/camera"
	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/engine/lighting"
	"github.com/Faultbox/marine-scene/internal/engine/renderer"
	"github.com/Faultbox/marine-scene/internal/game/world"
)

// State is everything that changes from tick to tick.
type State struct {
	Cameras     *camera.Registry
	World       *world.World
	Light       lighting.Block
	RenderState gpu.RenderState
	Elapsed     float32 // seconds
}

// New builds the cameras for a width x height viewport and places the boat
// at its start pose. FreeMove is active and rendering is solid.
func New(width, height float32, presets map[camera.Mode]camera.Preset) (*State, error) {
	cams, err := camera.NewRegistry(width, height, presets)
	if err != nil {
		return nil, err
	}
	return &State{
		Cameras:     cams,
		World:       world.New(),
		Light:       lighting.Default(),
		RenderState: gpu.Solid,
	}, nil
}

// Advance sets the elapsed time and recomputes the time-driven transforms.
func (s *State) Advance(elapsed float32) {
	s.Elapsed = elapsed
	s.World.Update(elapsed)
}

// Frame fills f from the active camera and the current transforms.
// Instance slices in f are reused between calls.
func (s *State) Frame(f *renderer.Frame) {
	cam := s.Cameras.ActiveCamera()

	f.Time = s.Elapsed
	f.View = cam.View()
	f.Projection = cam.Projection()
	f.Light = s.Light
	f.State = s.RenderState

	w := s.World
	f.Instances[renderer.GroupBoat] = append(f.Instances[renderer.GroupBoat][:0], w.Boat.Transform)
	f.Instances[renderer.GroupWater] = append(f.Instances[renderer.GroupWater][:0], w.Water)
	f.Instances[renderer.GroupRock] = append(f.Instances[renderer.GroupRock][:0], w.Rocks[:]...)
	f.Instances[renderer.GroupSky] = append(f.Instances[renderer.GroupSky][:0], w.Sky)
}
