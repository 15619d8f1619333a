package export

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromadepth-renderer/internal/capture"
)

func TestDepthImage(t *testing.T) {
	buf := &capture.DepthBuffer{Width: 2, Height: 2, Pix: make([]byte, 16)}
	// depth in red, junk in the discarded channels
	for i, d := range []byte{10, 20, 30, 40} {
		buf.Pix[i*4] = d
		buf.Pix[i*4+1] = 0xAA
		buf.Pix[i*4+2] = 0xBB
	}

	img := DepthImage(buf)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.EqualValues(t, 10, img.GrayAt(0, 0).Y)
	assert.EqualValues(t, 20, img.GrayAt(1, 0).Y)
	assert.EqualValues(t, 30, img.GrayAt(0, 1).Y)
	assert.EqualValues(t, 40, img.GrayAt(1, 1).Y)
}

func TestWritePNGRoundtrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Pix[0] = 123

	path := filepath.Join(t.TempDir(), "out", ChromadepthFilename)
	require.NoError(t, WritePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 3, decoded.Bounds().Dx())
	assert.Equal(t, 2, decoded.Bounds().Dy())
}

func TestWriteWebP(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	path := filepath.Join(t.TempDir(), "out.webp")
	require.NoError(t, WriteWebP(path, img))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
