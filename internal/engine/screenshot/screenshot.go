// Package screenshot writes captured frames to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

const timeLayout = "2006-01-02_15-04-05"

// Writer saves images under a directory with timestamped names.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time

	// last and seq keep names unique within one second.
	last string
	seq  int
}

// NewWriter creates a writer for dir. An empty dir writes to the working directory.
func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next Save would use.
func (w *Writer) Filename() string {
	stamp := w.now().Format(timeLayout)
	name := fmt.Sprintf("%s_%s.png", w.prefix, stamp)
	if stamp == w.last {
		name = fmt.Sprintf("%s_%s_%d.png", w.prefix, stamp, w.seq+1)
	}
	return filepath.Join(w.dir, name)
}

// Save encodes img as PNG and returns the file path.
func (w *Writer) Save(img image.Image) (string, error) {
	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := w.Filename()
	stamp := w.now().Format(timeLayout)
	if stamp == w.last {
		w.seq++
	} else {
		w.last, w.seq = stamp, 0
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing file: %w", err)
	}
	return path, nil
}

// FromBottomUp builds an image from RGBA rows stored bottom row first,
// as glReadPixels returns them.
func FromBottomUp(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}
