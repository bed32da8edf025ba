package assets

import (
	"image"
	"image/color"
	"testing"
)

func tgaHeader(imageType byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12] = byte(w)
	hdr[13] = byte(w >> 8)
	hdr[14] = byte(h)
	hdr[15] = byte(h >> 8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 1x2, 24-bit, stored bottom row first: blue then red.
	data := tgaHeader(tgaUncompressed, 1, 2, 24, 0)
	data = append(data, 255, 0, 0) // BGR blue
	data = append(data, 0, 0, 255) // BGR red

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	rgba := img.(*image.RGBA)

	if got := rgba.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected red on top, got %v", got)
	}
	if got := rgba.RGBAAt(0, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("expected blue at bottom, got %v", got)
	}
}

func TestDecodeTGARLE(t *testing.T) {
	// 3x1, 32-bit, top-to-bottom. One run of 2 green, one raw white.
	data := tgaHeader(tgaRLE, 3, 1, 32, 0x20)
	data = append(data, 0x81, 0, 255, 0, 128)
	data = append(data, 0x00, 255, 255, 255, 255)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA: %v", err)
	}
	rgba := img.(*image.RGBA)

	green := color.RGBA{G: 255, A: 128}
	for x := 0; x < 2; x++ {
		if got := rgba.RGBAAt(x, 0); got != green {
			t.Errorf("pixel %d: expected %v, got %v", x, green, got)
		}
	}
	if got := rgba.RGBAAt(2, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("expected white, got %v", got)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { h := tgaHeader(tgaUncompressed, 1, 1, 24, 0); h[1] = 1; return h }()},
		{"grayscale", tgaHeader(3, 1, 1, 24, 0)},
		{"16 bit", tgaHeader(tgaUncompressed, 1, 1, 16, 0)},
		{"zero size", tgaHeader(tgaUncompressed, 0, 1, 24, 0)},
		{"truncated pixels", append(tgaHeader(tgaUncompressed, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(tgaRLE, 2, 1, 24, 0), 0x81)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
