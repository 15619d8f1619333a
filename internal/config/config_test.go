package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{ModelPath: filepath.Join("models", "teapot.obj")})

	assert.Equal(t, 1024, cfg.RenderSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, "near-warm", cfg.Polarity)
	assert.Equal(t, "png", cfg.Format)
	assert.Greater(t, cfg.Workers, 0)
	assert.Equal(t, filepath.Join("models", "renders"), cfg.OutputDir)
}

func TestResolveFlagOverrides(t *testing.T) {
	cfg := Config{
		RenderSize: 256,
		Polarity:   "near-warm",
		OutputDir:  "from-config",
	}
	cfg.Resolve(Flags{
		Size:     512,
		Polarity: "far-warm",
		Format:   "webp",
		Workers:  3,
		DepthMap: true,
	})

	assert.Equal(t, 512, cfg.RenderSize)
	assert.Equal(t, "far-warm", cfg.Polarity)
	assert.Equal(t, "webp", cfg.Format)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.DepthMap)
	assert.Equal(t, "from-config", cfg.OutputDir, "flags left empty do not clobber config")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"model_dir": "assets",
		"render_size": 2048,
		"polarity": "far-warm",
		"preview": true
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "assets", cfg.ModelDir)
	assert.Equal(t, 2048, cfg.RenderSize)
	assert.Equal(t, "far-warm", cfg.Polarity)
	assert.True(t, cfg.Preview)

	cfg.Resolve(Flags{})
	assert.Equal(t, filepath.Join("assets", "renders"), cfg.OutputDir)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
