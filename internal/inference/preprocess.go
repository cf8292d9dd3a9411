package inference

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxPixels bounds the decoded size of an upload.
const DefaultMaxPixels = 50_000_000

// Preprocess decodes data, converts it to RGB, resizes it to InputSize
// and scales every channel to [0, 1]. Images with more than maxPixels
// pixels are rejected before decoding; maxPixels <= 0 means DefaultMaxPixels.
func Preprocess(data []byte, maxPixels int) (Tensor, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Tensor{}, fmt.Errorf("%w: decode config: %w", ErrInvalidImage, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Tensor{}, fmt.Errorf("%w: empty %s image", ErrInvalidImage, format)
	}

	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return Tensor{}, fmt.Errorf("%w: %s image is %dx%d, limit is %d pixels",
			ErrInvalidImage, format, cfg.Width, cfg.Height, maxPixels)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Tensor{}, fmt.Errorf("%w: decode: %w", ErrInvalidImage, err)
	}

	if src.Bounds().Empty() {
		return Tensor{}, fmt.Errorf("%w: empty %s image", ErrInvalidImage, format)
	}

	dst := image.NewRGBA(image.Rect(0, 0, InputSize, InputSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	t := Tensor{
		Shape: [4]int{1, InputSize, InputSize, Channels},
		Data:  make([]float32, InputSize*InputSize*Channels),
	}

	// RGBA pixels are 4 bytes apart; alpha is dropped.
	for px, i := 0, 0; px < len(dst.Pix); px += 4 {
		t.Data[i] = float32(dst.Pix[px]) / 255
		t.Data[i+1] = float32(dst.Pix[px+1]) / 255
		t.Data[i+2] = float32(dst.Pix[px+2]) / 255
		i += Channels
	}

	return t, nil
}
