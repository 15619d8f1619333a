package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"chromadepth-renderer/internal/batch"
	"chromadepth-renderer/internal/camera"
	"chromadepth-renderer/internal/chroma"
	"chromadepth-renderer/internal/config"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	model := flag.String("model", "", "Render a single model file (.obj or .stl)")
	dir := flag.String("dir", "", "Render every model file in this directory")
	output := flag.String("output", "", "Output directory (default: <input>/renders)")
	size := flag.Int("size", 0, "Render size in pixels (default: 1024)")
	polarity := flag.String("polarity", "", "Depth polarity: near-warm or far-warm")
	format := flag.String("format", "", "Output format: png or webp (default: png)")
	views := flag.String("views", "", "Path to per-model camera overrides JSON")
	depthMap := flag.Bool("depth-map", false, "Also export the raw grayscale depth render")
	preview := flag.Bool("preview", false, "Also export the shaded preview render")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Render only first N models for testing")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		ModelPath: *model,
		ModelDir:  *dir,
		OutputDir: *output,
		ViewsJSON: *views,
		Size:      *size,
		Polarity:  *polarity,
		Format:    *format,
		Workers:   *workers,
		DepthMap:  *depthMap,
		Preview:   *preview,
	})

	if cfg.ModelPath == "" && cfg.ModelDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no model loaded. Use -model or -dir.")
		os.Exit(1)
	}

	pol, err := chroma.ParsePolarity(cfg.Polarity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	overrides, err := camera.LoadOverrides(cfg.ViewsJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading views: %v\n", err)
		os.Exit(1)
	}

	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		Overrides:   overrides,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Polarity:    pol,
		Format:      cfg.Format,
		Workers:     cfg.Workers,
		DepthMap:    cfg.DepthMap,
		Preview:     cfg.Preview,
	}

	// Single-model mode
	if cfg.ModelPath != "" {
		r := batch.Process(batchCfg, cfg.ModelPath)
		if !r.Success {
			fmt.Fprintf(os.Stderr, "%s: %s\n", r.Model, r.Error)
			os.Exit(1)
		}
		fmt.Printf("%s: %d triangles → %s\n", r.Model, r.Triangles, filepath.Join(cfg.OutputDir, r.Image))
		return
	}

	// Batch mode
	models, err := findModels(cfg.ModelDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", cfg.ModelDir, err)
		os.Exit(1)
	}
	if *testN > 0 && *testN < len(models) {
		models = models[:*testN]
	}
	if len(models) == 0 {
		fmt.Println("No models to render.")
		return
	}

	fmt.Printf("Chromadepth renderer (%s, %dpx)\n", cfg.Polarity, cfg.RenderSize)
	fmt.Printf("Models: %d, Workers: %d\n", len(models), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batchCfg, models)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(models))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Model, e.Error)
		}
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// findModels lists the .obj and .stl files directly under dir, sorted.
func findModels(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var models []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".obj", ".stl":
			models = append(models, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(models)
	return models, nil
}
