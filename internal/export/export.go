// Package export writes the pipeline's outputs: the chromadepth image, the
// raw grayscale depth map, and the shaded preview.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"chromadepth-renderer/internal/capture"
)

// Default output filenames.
const (
	ChromadepthFilename = "chromadepth-visualization.png"
	DepthMapFilename    = "depth-map.png"
	PreviewFilename     = "preview.png"
)

// WritePNG encodes img to path, creating parent directories as needed.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("export: PNG encode %s: %w", path, err)
	}
	return nil
}

// WriteWebP encodes img to path as lossless WebP.
func WriteWebP(path string, img *image.NRGBA) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("export: WebP encode %s: %w", path, err)
	}
	return nil
}

// DepthImage converts a depth buffer's red channel into a grayscale image,
// exportable directly as the raw (non-remapped) depth render.
func DepthImage(buf *capture.DepthBuffer) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		src := y * buf.Width * 4
		dst := y * img.Stride
		for x := 0; x < buf.Width; x++ {
			img.Pix[dst+x] = buf.Pix[src]
			src += 4
		}
	}
	return img
}
