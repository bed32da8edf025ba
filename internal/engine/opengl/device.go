// Package opengl implements gpu.Device on an OpenGL 4.1 core context.
package opengl

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/engine/screenshot"
	"github.com/Faultbox/marine-scene/pkg/math"
)

// UniformBinding is the binding point of the scene uniform block.
const UniformBinding = 0

const (
	sceneBlockName = "Scene"
	samplerName    = "uTexture"
)

// Vertex attribute layout shared by every mesh: position, normal, texcoord.
const (
	attrPosition = 0
	attrNormal   = 1
	attrTexCoord = 2
)

// Device issues gpu.Device calls on the current GL context.
// It must be created and used on the thread that owns the context.
type Device struct {
	vao     uint32
	present func()

	width, height int
}

// Info describes the context a device runs on.
type Info struct {
	Vendor   string
	Renderer string
	Version  string
	GLSL     string
}

// New loads the GL entry points for the current context and sets the fixed
// pipeline state. present is called to show a finished frame.
func New(present func()) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	d := &Device{present: present}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	return d, nil
}

// Info queries the context strings.
func (d *Device) Info() Info {
	return Info{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
}

// Viewport sets the drawable area.
func (d *Device) Viewport(width, height int) {
	d.width, d.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Capture reads the back buffer over the current viewport.
func (d *Device) Capture() (*image.RGBA, error) {
	if d.width <= 0 || d.height <= 0 {
		return nil, fmt.Errorf("no viewport set")
	}
	pixels := make([]byte, d.width*d.height*4)
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(d.width), int32(d.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return screenshot.FromBottomUp(pixels, d.width, d.height)
}

// Close releases the vertex array.
func (d *Device) Close() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

func bufferTarget(kind gpu.BufferKind) (target, usage uint32) {
	switch kind {
	case gpu.IndexBuffer:
		return gl.ELEMENT_ARRAY_BUFFER, gl.STATIC_DRAW
	case gpu.UniformBuffer:
		return gl.UNIFORM_BUFFER, gl.DYNAMIC_DRAW
	default:
		return gl.ARRAY_BUFFER, gl.STATIC_DRAW
	}
}

func (d *Device) CreateBuffer(kind gpu.BufferKind, data []byte) (gpu.Buffer, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty %d buffer", kind)
	}
	target, usage := bufferTarget(kind)

	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("glGenBuffers returned no name")
	}
	gl.BindBuffer(target, id)
	gl.BufferData(target, len(data), gl.Ptr(data), usage)

	if kind == gpu.UniformBuffer {
		gl.BindBufferBase(gl.UNIFORM_BUFFER, UniformBinding, id)
	}
	return gpu.Buffer(id), nil
}

func (d *Device) CreateShader(vertexSrc, pixelSrc string) (gpu.Shader, error) {
	program, err := compileProgram(vertexSrc, pixelSrc)
	if err != nil {
		return 0, err
	}

	block := gl.GetUniformBlockIndex(program, gl.Str(sceneBlockName+"\x00"))
	if block == gl.INVALID_INDEX {
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("program has no %s uniform block", sceneBlockName)
	}
	gl.UniformBlockBinding(program, block, UniformBinding)

	gl.UseProgram(program)
	if loc := gl.GetUniformLocation(program, gl.Str(samplerName+"\x00")); loc >= 0 {
		gl.Uniform1i(loc, 0)
	}
	return gpu.Shader(program), nil
}

func (d *Device) CreateTexture(img image.Image) (gpu.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return 0, fmt.Errorf("empty image")
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return gpu.Texture(id), nil
}

func (d *Device) DeleteBuffer(b gpu.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (d *Device) DeleteShader(s gpu.Shader) {
	gl.DeleteProgram(uint32(s))
}

func (d *Device) DeleteTexture(t gpu.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (d *Device) Clear(color math.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.ClearDepth(1)
	gl.ClearStencil(0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

func (d *Device) SetRenderState(state gpu.RenderState) {
	if state == gpu.WireFrame {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (d *Device) BindVertexBuffer(b gpu.Buffer, stride, offset uint32) {
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))

	s := int32(stride)
	gl.VertexAttribPointerWithOffset(attrPosition, 3, gl.FLOAT, false, s, uintptr(offset))
	gl.EnableVertexAttribArray(attrPosition)
	gl.VertexAttribPointerWithOffset(attrNormal, 3, gl.FLOAT, false, s, uintptr(offset+3*4))
	gl.EnableVertexAttribArray(attrNormal)
	gl.VertexAttribPointerWithOffset(attrTexCoord, 2, gl.FLOAT, false, s, uintptr(offset+6*4))
	gl.EnableVertexAttribArray(attrTexCoord)
}

func (d *Device) BindIndexBuffer(b gpu.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
}

func (d *Device) BindShader(s gpu.Shader) {
	gl.UseProgram(uint32(s))
}

func (d *Device) BindTexture(t gpu.Texture) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (d *Device) UpdateUniformBuffer(b gpu.Buffer, data []byte) {
	gl.BindBuffer(gl.UNIFORM_BUFFER, uint32(b))
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
}

func (d *Device) DrawIndexed(count uint32) {
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, nil)
}

func (d *Device) Present() {
	if d.present != nil {
		d.present()
	}
}
