package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	ModelPath string `json:"model_path"` // single-model mode
	ModelDir  string `json:"model_dir"`  // batch mode
	OutputDir string `json:"output_dir"`
	ViewsJSON string `json:"views_json"` // per-model camera overrides

	// Render settings
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"` // preview pass only
	Polarity    string `json:"polarity"`    // "near-warm" or "far-warm"
	Format      string `json:"format"`      // "png" or "webp"
	Workers     int    `json:"workers"`
	DepthMap    bool   `json:"depth_map"` // also export the raw grayscale depth render
	Preview     bool   `json:"preview"`   // also export the shaded preview
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ModelPath string
	ModelDir  string
	OutputDir string
	ViewsJSON string
	Size      int
	Polarity  string
	Format    string
	Workers   int
	DepthMap  bool
	Preview   bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.ModelPath != "" {
		c.ModelPath = flags.ModelPath
	}
	if flags.ModelDir != "" {
		c.ModelDir = flags.ModelDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.ViewsJSON != "" {
		c.ViewsJSON = flags.ViewsJSON
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Polarity != "" {
		c.Polarity = flags.Polarity
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.DepthMap {
		c.DepthMap = true
	}
	if flags.Preview {
		c.Preview = true
	}

	// Default output dir sits next to the input
	if c.OutputDir == "" {
		switch {
		case c.ModelDir != "":
			c.OutputDir = filepath.Join(c.ModelDir, "renders")
		case c.ModelPath != "":
			c.OutputDir = filepath.Join(filepath.Dir(c.ModelPath), "renders")
		default:
			c.OutputDir = "renders"
		}
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 1024
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Polarity == "" {
		c.Polarity = "near-warm"
	}
	if c.Format == "" {
		c.Format = "png"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
