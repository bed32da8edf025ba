package gpu

import "image"

// Scope creates device resources and remembers them so Close can release
// every one of them, newest first. It is used for both normal shutdown and
// aborted initialization.
type Scope struct {
	dev      Device
	releases []func()
}

// NewScope returns an empty scope over dev.
func NewScope(dev Device) *Scope {
	return &Scope{dev: dev}
}

// Device returns the underlying device.
func (s *Scope) Device() Device {
	return s.dev
}

// Buffer creates a buffer owned by the scope.
func (s *Scope) Buffer(kind BufferKind, data []byte) (Buffer, error) {
	b, err := s.dev.CreateBuffer(kind, data)
	if err != nil {
		return 0, err
	}
	s.Defer(func() { s.dev.DeleteBuffer(b) })
	return b, nil
}

// Shader creates a shader program owned by the scope.
func (s *Scope) Shader(vertexSrc, pixelSrc string) (Shader, error) {
	sh, err := s.dev.CreateShader(vertexSrc, pixelSrc)
	if err != nil {
		return 0, err
	}
	s.Defer(func() { s.dev.DeleteShader(sh) })
	return sh, nil
}

// Texture creates a texture owned by the scope.
func (s *Scope) Texture(img image.Image) (Texture, error) {
	t, err := s.dev.CreateTexture(img)
	if err != nil {
		return 0, err
	}
	s.Defer(func() { s.dev.DeleteTexture(t) })
	return t, nil
}

// Defer registers an extra release function.
func (s *Scope) Defer(fn func()) {
	s.releases = append(s.releases, fn)
}

// Len returns the number of live resources.
func (s *Scope) Len() int {
	return len(s.releases)
}

// Close releases everything in reverse creation order. It is safe to call twice.
func (s *Scope) Close() {
	for i := len(s.releases) - 1; i >= 0; i-- {
		s.releases[i]()
	}
	s.releases = nil
}
