package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/marine-scene/internal/assets"
	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/engine/opengl/shaders"
	"github.com/Faultbox/marine-scene/internal/engine/renderer"
	"github.com/Faultbox/marine-scene/internal/logger"
)

// ShaderKind selects one of the scene's shader pairs.
type ShaderKind int

const (
	ShaderStandard ShaderKind = iota
	ShaderWater
)

// GroupAsset names the files a drawable group is built from.
type GroupAsset struct {
	Mesh    string
	Texture string // extension optional
	Shader  ShaderKind
}

// Manifest lists the assets of every drawable group.
type Manifest [renderer.GroupCount]GroupAsset

// DefaultManifest returns the scene's asset names.
func DefaultManifest() Manifest {
	return Manifest{
		renderer.GroupBoat:  {Mesh: "mainPlayerBoat.obj", Texture: "mainPlayerBoatTex", Shader: ShaderStandard},
		renderer.GroupWater: {Mesh: "water.obj", Texture: "oceanTex", Shader: ShaderWater},
		renderer.GroupRock:  {Mesh: "rockBorder.obj", Texture: "rock", Shader: ShaderStandard},
		renderer.GroupSky:   {Mesh: "skyboxSphere.obj", Texture: "sky", Shader: ShaderStandard},
	}
}

// LoadGroups compiles the shader pairs and loads every group's mesh and
// texture into scope. On error the caller closes scope.
func LoadGroups(scope *gpu.Scope, mgr *assets.Manager, manifest Manifest) ([renderer.GroupCount]renderer.Group, error) {
	var groups [renderer.GroupCount]renderer.Group

	pairs := map[ShaderKind]shaders.Pair{
		ShaderStandard: shaders.Standard(),
		ShaderWater:    shaders.Water(),
	}
	programs := make(map[ShaderKind]gpu.Shader, len(pairs))
	for _, kind := range []ShaderKind{ShaderStandard, ShaderWater} {
		p := pairs[kind]
		sh, err := scope.Shader(p.Vertex, p.Pixel)
		if err != nil {
			return groups, fmt.Errorf("compiling shader pair %d: %w", kind, err)
		}
		programs[kind] = sh
	}

	for id, a := range manifest {
		gid := renderer.GroupID(id)
		sh, ok := programs[a.Shader]
		if !ok {
			return groups, fmt.Errorf("%s: unknown shader kind %d", gid, a.Shader)
		}

		mesh, err := mgr.LoadMesh(scope, a.Mesh)
		if err != nil {
			return groups, fmt.Errorf("%s mesh: %w", gid, err)
		}
		tex, err := mgr.LoadTexture(scope, a.Texture)
		if err != nil {
			return groups, fmt.Errorf("%s texture: %w", gid, err)
		}

		groups[id] = renderer.Group{Mesh: mesh, Shader: sh, Texture: tex}
		logger.Info("drawable group loaded",
			zap.Stringer("group", gid),
			zap.String("mesh", a.Mesh),
			zap.Uint32("indices", mesh.IndexCount),
		)
	}
	return groups, nil
}
