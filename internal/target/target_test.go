package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromadepth-renderer/internal/camera"
	"chromadepth-renderer/internal/scene"
)

func TestNewSoftwareInvalidSize(t *testing.T) {
	_, err := NewSoftware(0, 10, nil)
	assert.Error(t, err)
	_, err = NewSoftware(10, -1, nil)
	assert.Error(t, err)
}

func TestSoftwareReadBeforeRender(t *testing.T) {
	tgt, err := NewSoftware(4, 4, nil)
	require.NoError(t, err)
	_, err = tgt.ReadPixels()
	assert.Error(t, err)
}

func TestSoftwareRenderReadback(t *testing.T) {
	tgt, err := NewSoftware(5, 3, nil)
	require.NoError(t, err)

	require.NoError(t, tgt.Render(scene.New(), camera.Default()))
	pix, err := tgt.ReadPixels()
	require.NoError(t, err)
	assert.Len(t, pix, 5*3*4)

	// ReadPixels returns a copy, not the live framebuffer.
	pix[0] = 0xFF
	again, err := tgt.ReadPixels()
	require.NoError(t, err)
	assert.EqualValues(t, 0, again[0])
}

func TestSoftwareRelease(t *testing.T) {
	tgt, err := NewSoftware(4, 4, nil)
	require.NoError(t, err)
	require.NoError(t, tgt.Render(scene.New(), camera.Default()))

	tgt.Release()
	assert.Error(t, tgt.Render(scene.New(), camera.Default()))
	_, err = tgt.ReadPixels()
	assert.Error(t, err)
}
