// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"errors"
	"fmt"
	"image"

	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/pkg/math"
)

// Call is one recorded device operation.
type Call struct {
	Op     string
	Handle uint32
	Count  uint32
	State  gpu.RenderState
	Data   []byte
}

// Recorder implements gpu.Device by logging every call.
type Recorder struct {
	Calls []Call

	// FailShader makes CreateShader fail when set.
	FailShader bool
	// FailTexture makes CreateTexture fail when set.
	FailTexture bool
	// CaptureSize is the size of images returned by Capture.
	CaptureSize image.Point

	next    uint32
	live    map[string]map[uint32]bool
	buffers map[gpu.Buffer][]byte
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		live: map[string]map[uint32]bool{
			"buffer":  {},
			"shader":  {},
			"texture": {},
		},
		buffers: map[gpu.Buffer][]byte{},
	}
}

func (r *Recorder) alloc(kind string) uint32 {
	r.next++
	r.live[kind][r.next] = true
	return r.next
}

func (r *Recorder) free(kind, op string, h uint32) {
	if !r.live[kind][h] {
		panic(fmt.Sprintf("gputest: %s %d released twice or never created", kind, h))
	}
	delete(r.live[kind], h)
	r.record(Call{Op: op, Handle: h})
}

func (r *Recorder) record(c Call) {
	r.Calls = append(r.Calls, c)
}

// Live returns the number of resources not yet released.
func (r *Recorder) Live() int {
	n := 0
	for _, m := range r.live {
		n += len(m)
	}
	return n
}

// Ops returns the recorded operation names.
func (r *Recorder) Ops() []string {
	ops := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many times op was recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps live resources.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// BufferData returns the bytes a buffer was created with.
func (r *Recorder) BufferData(b gpu.Buffer) []byte {
	return r.buffers[b]
}

func (r *Recorder) CreateBuffer(kind gpu.BufferKind, data []byte) (gpu.Buffer, error) {
	b := gpu.Buffer(r.alloc("buffer"))
	r.buffers[b] = append([]byte(nil), data...)
	r.record(Call{Op: "CreateBuffer", Handle: uint32(b)})
	return b, nil
}

func (r *Recorder) CreateShader(vertexSrc, pixelSrc string) (gpu.Shader, error) {
	if r.FailShader {
		return 0, errors.New("gputest: shader compile failed")
	}
	s := gpu.Shader(r.alloc("shader"))
	r.record(Call{Op: "CreateShader", Handle: uint32(s)})
	return s, nil
}

func (r *Recorder) CreateTexture(img image.Image) (gpu.Texture, error) {
	if r.FailTexture {
		return 0, errors.New("gputest: texture upload failed")
	}
	t := gpu.Texture(r.alloc("texture"))
	r.record(Call{Op: "CreateTexture", Handle: uint32(t)})
	return t, nil
}

func (r *Recorder) DeleteBuffer(b gpu.Buffer)   { r.free("buffer", "DeleteBuffer", uint32(b)) }
func (r *Recorder) DeleteShader(s gpu.Shader)   { r.free("shader", "DeleteShader", uint32(s)) }
func (r *Recorder) DeleteTexture(t gpu.Texture) { r.free("texture", "DeleteTexture", uint32(t)) }

func (r *Recorder) Clear(color math.Vec4) { r.record(Call{Op: "Clear"}) }

func (r *Recorder) SetRenderState(state gpu.RenderState) {
	r.record(Call{Op: "SetRenderState", State: state})
}

func (r *Recorder) BindVertexBuffer(b gpu.Buffer, stride, offset uint32) {
	r.record(Call{Op: "BindVertexBuffer", Handle: uint32(b)})
}

func (r *Recorder) BindIndexBuffer(b gpu.Buffer) {
	r.record(Call{Op: "BindIndexBuffer", Handle: uint32(b)})
}

func (r *Recorder) BindShader(s gpu.Shader) {
	r.record(Call{Op: "BindShader", Handle: uint32(s)})
}

func (r *Recorder) BindTexture(t gpu.Texture) {
	r.record(Call{Op: "BindTexture", Handle: uint32(t)})
}

func (r *Recorder) UpdateUniformBuffer(b gpu.Buffer, data []byte) {
	r.record(Call{Op: "UpdateUniformBuffer", Handle: uint32(b), Data: append([]byte(nil), data...)})
}

func (r *Recorder) DrawIndexed(count uint32) {
	r.record(Call{Op: "DrawIndexed", Count: count})
}

func (r *Recorder) Present() { r.record(Call{Op: "Present"}) }

// Capture returns a blank image of CaptureSize, or 1x1 when unset.
func (r *Recorder) Capture() (*image.RGBA, error) {
	r.record(Call{Op: "Capture"})
	size := r.CaptureSize
	if size == (image.Point{}) {
		size = image.Pt(1, 1)
	}
	return image.NewRGBA(image.Rectangle{Max: size}), nil
}
