// Package control turns one tick of held triggers into camera selection,
// boat motion and render-state changes on the scene state.
package control

import (
	"go.uber.org/zap"

	"github.com/Faultbox/marine-scene/internal/engine/camera"
	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/engine/input"
	"github.com/Faultbox/marine-scene/internal/game/scene"
	"github.com/Faultbox/marine-scene/internal/logger"
	"github.com/Faultbox/marine-scene/pkg/math"
)

// FreeMoveStep is how far the free camera moves per tick.
const FreeMoveStep = float32(0.01)

// Turn is the resolved yaw input.
type Turn int

const (
	TurnNone Turn = iota
	TurnRight
	TurnLeft
)

// Move is the resolved boat translation input.
type Move int

const (
	MoveNone Move = iota
	MoveBoost
	MoveForward
	MoveBackward
)

// FreeMove is the resolved free camera input.
type FreeMove int

const (
	FreeNone FreeMove = iota
	FreeForward
	FreeLeft
	FreeRight
	FreeBackward
)

// modeTriggers pairs each mode with its selector, in priority order.
var modeTriggers = [...]struct {
	mode    camera.Mode
	trigger input.Trigger
}{
	{camera.FreeMove, input.CameraFreeMove},
	{camera.FirstPerson, input.CameraFirstPerson},
	{camera.BirdsEye, input.CameraBirdsEye},
	{camera.ThirdPerson, input.CameraThirdPerson},
	{camera.StaticPerspective, input.CameraStaticPerspective},
}

// Command is the outcome of one tick of input. At most one option of each
// kind applies per tick.
type Command struct {
	// Mode is valid only when SelectMode is set.
	Mode       camera.Mode
	SelectMode bool

	Turn  Turn
	Move  Move
	Free  FreeMove
	State gpu.RenderState

	Screenshot bool
	Quit       bool
}

// Resolve applies the fixed priority rules to a snapshot.
func Resolve(snap input.Snapshot) Command {
	var cmd Command

	for _, mt := range modeTriggers {
		if snap.Held(mt.trigger) {
			cmd.Mode = mt.mode
			cmd.SelectMode = true
			break
		}
	}

	switch {
	case snap.Held(input.BoatTurnRight):
		cmd.Turn = TurnRight
	case snap.Held(input.BoatTurnLeft):
		cmd.Turn = TurnLeft
	}

	switch {
	case snap.Held(input.BoatBoost):
		cmd.Move = MoveBoost
	case snap.Held(input.BoatForward):
		cmd.Move = MoveForward
	case snap.Held(input.BoatBackward):
		cmd.Move = MoveBackward
	}

	switch {
	case snap.Held(input.FreeForward):
		cmd.Free = FreeForward
	case snap.Held(input.FreeLeft):
		cmd.Free = FreeLeft
	case snap.Held(input.FreeRight):
		cmd.Free = FreeRight
	case snap.Held(input.FreeBackward):
		cmd.Free = FreeBackward
	}

	if snap.Held(input.Wireframe) {
		cmd.State = gpu.WireFrame
	}
	cmd.Screenshot = snap.Held(input.Screenshot)
	cmd.Quit = snap.Held(input.Quit)
	return cmd
}

// Step resolves snap and applies it to st.
func Step(st *scene.State, snap input.Snapshot) Command {
	cmd := Resolve(snap)
	Apply(st, cmd)
	return cmd
}

// Apply runs one tick of cmd against st: mode selection, free camera,
// boat motion, then the follow cameras.
func Apply(st *scene.State, cmd Command) {
	cams := st.Cameras

	if cmd.SelectMode && cams.Select(cmd.Mode) {
		logger.Debug("camera mode changed", zap.Stringer("mode", cmd.Mode))
	}

	if cams.Active() == camera.FreeMove {
		moveFree(cams.Camera(camera.FreeMove), cmd.Free)
	}

	boat := st.World.Boat
	switch cmd.Turn {
	case TurnRight:
		boat.TurnRight()
	case TurnLeft:
		boat.TurnLeft()
	}
	switch cmd.Move {
	case MoveBoost:
		boat.Boost()
	case MoveForward:
		boat.Forward()
	case MoveBackward:
		boat.Backward()
	}

	switch cams.Active() {
	case camera.FirstPerson:
		cam := cams.Camera(camera.FirstPerson)
		cam.At = boat.Facing
		cam.MoveFirstPerson(boat.FirstPersonEye(), cam.Convention())
	case camera.ThirdPerson:
		cam := cams.Camera(camera.ThirdPerson)
		cam.MoveThirdPerson(boat.ThirdPersonEye(), boat.Position(), cam.Convention())
	}

	st.RenderState = cmd.State
}

func moveFree(cam *camera.Camera, step FreeMove) {
	var delta math.Vec3
	right := cam.At.Cross(cam.Up)
	switch step {
	case FreeForward:
		delta = cam.At.Scale(FreeMoveStep)
	case FreeLeft:
		delta = right.Scale(FreeMoveStep)
	case FreeRight:
		delta = right.Scale(-FreeMoveStep)
	case FreeBackward:
		delta = cam.At.Scale(-FreeMoveStep)
	default:
		return
	}
	cam.Eye = cam.Eye.Add(delta)
	cam.Update(cam.Convention())
}
