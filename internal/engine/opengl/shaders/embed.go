// Package shaders provides the embedded GLSL sources for the scene.
package shaders

import _ "embed"

const version = "#version 410 core\n"

//go:embed scene_block.glsl
var sceneBlock string

//go:embed standard.vert
var standardVert string

//go:embed standard.frag
var standardFrag string

//go:embed water.vert
var waterVert string

//go:embed water.frag
var waterFrag string

// Pair is a vertex and pixel shader source pair.
type Pair struct {
	Vertex string
	Pixel  string
}

// Standard lights and textures the boat, rocks and sky.
func Standard() Pair {
	return Pair{
		Vertex: version + sceneBlock + standardVert,
		Pixel:  version + sceneBlock + standardFrag,
	}
}

// Water animates the water plane with elapsed time.
func Water() Pair {
	return Pair{
		Vertex: version + sceneBlock + waterVert,
		Pixel:  version + sceneBlock + waterFrag,
	}
}
