package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"path"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"

	"github.com/Faultbox/marine-scene/internal/engine/gpu"
	"github.com/Faultbox/marine-scene/internal/logger"
)

// TextureExtensions are tried in order when a texture is named without one.
var TextureExtensions = []string{".png", ".tga", ".bmp"}

// DecodeTexture decodes PNG, BMP or TGA data. TGA is chosen by extension
// since it has no magic number.
func DecodeTexture(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		img, err := DecodeTGA(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTexture, name, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTexture, name, err)
	}
	return img, nil
}

// ResolveTexture returns the first existing file for name. A name that
// already has an extension is returned unchanged.
func (m *Manager) ResolveTexture(name string) (string, error) {
	if path.Ext(name) != "" {
		return name, nil
	}
	for _, ext := range TextureExtensions {
		if m.Exists(name + ext) {
			return name + ext, nil
		}
	}
	return "", fmt.Errorf("%w: no %s file with extension %v", ErrInvalidTexture, name, TextureExtensions)
}

// LoadTexture resolves, decodes and uploads a texture.
func (m *Manager) LoadTexture(scope *gpu.Scope, name string) (gpu.Texture, error) {
	file, err := m.ResolveTexture(name)
	if err != nil {
		return 0, err
	}
	data, err := m.Load(file)
	if err != nil {
		return 0, err
	}

	img, err := DecodeTexture(file, data)
	if err != nil {
		return 0, err
	}
	if img.Bounds().Empty() {
		return 0, fmt.Errorf("%w: %s is empty", ErrInvalidTexture, file)
	}

	tex, err := scope.Texture(img)
	if err != nil {
		return 0, fmt.Errorf("%w: uploading %s: %v", ErrInvalidTexture, file, err)
	}
	if tex == 0 {
		return 0, fmt.Errorf("%w: device returned a null texture for %s", ErrInvalidTexture, file)
	}

	logger.Debug("texture loaded",
		zap.String("path", file),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return tex, nil
}
