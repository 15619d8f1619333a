package batch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"chromadepth-renderer/internal/camera"
	"chromadepth-renderer/internal/capture"
	"chromadepth-renderer/internal/chroma"
	"chromadepth-renderer/internal/export"
	"chromadepth-renderer/internal/mesh"
	"chromadepth-renderer/internal/postprocess"
	"chromadepth-renderer/internal/raster"
	"chromadepth-renderer/internal/scene"
	"chromadepth-renderer/internal/target"
	"chromadepth-renderer/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Overrides   camera.Overrides
	RenderSize  int
	Supersample int // preview pass only
	Polarity    chroma.Polarity
	Format      string // "png" or "webp"
	Workers     int
	DepthMap    bool
	Preview     bool
}

// Result holds the outcome of processing one model.
type Result struct {
	Model     string // base filename
	Image     string // output path relative to OutputDir
	Triangles int
	Success   bool
	Error     string
}

// Run processes all model files using a worker pool.
func Run(cfg Config, models []string) []Result {
	total := len(models)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	modelChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range modelChan {
				results[idx] = Process(cfg, models[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range models {
		modelChan <- i
	}
	close(modelChan)

	wg.Wait()
	close(done)

	return results
}

// Process runs the full pipeline for one model file: load, depth capture,
// chromadepth composite, export (plus optional raw depth map and shaded
// preview).
func Process(cfg Config, modelPath string) Result {
	name := filepath.Base(modelPath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	meshes, err := mesh.Load(modelPath)
	if err != nil {
		return Result{Model: name, Error: err.Error()}
	}
	if len(meshes) == 0 {
		return Result{Model: name, Error: "no renderable meshes"}
	}

	tris := 0
	for i := range meshes {
		tris += meshes[i].TriangleCount()
	}

	scn := scene.FromMeshes(meshes)
	cam := cfg.Overrides.Camera(modelPath)

	// Depth-only capture. The depth pass renders no textures, so the
	// target needs no resolver.
	tgt, err := target.NewSoftware(cfg.RenderSize, cfg.RenderSize, nil)
	if err != nil {
		return Result{Model: name, Error: err.Error()}
	}
	defer tgt.Release()

	buf, err := capture.New().Capture(tgt, scn, cam)
	if err != nil {
		return Result{Model: name, Error: err.Error()}
	}

	comp := chroma.Compositor{Ramp: chroma.NewRamp(cfg.Polarity)}
	img := comp.Composite(buf)

	outDir := filepath.Join(cfg.OutputDir, stem)
	imgPath := filepath.Join(outDir, outputName(export.ChromadepthFilename, cfg.Format))

	if cfg.Format == "webp" {
		err = export.WriteWebP(imgPath, img)
	} else {
		err = export.WritePNG(imgPath, img)
	}
	if err != nil {
		return Result{Model: name, Error: err.Error()}
	}

	if cfg.DepthMap {
		if err := export.WritePNG(filepath.Join(outDir, export.DepthMapFilename), export.DepthImage(buf)); err != nil {
			return Result{Model: name, Error: err.Error()}
		}
	}

	if cfg.Preview {
		if err := writePreview(cfg, scn, cam, modelPath, outDir); err != nil {
			return Result{Model: name, Error: err.Error()}
		}
	}

	rel, _ := filepath.Rel(cfg.OutputDir, imgPath)
	return Result{Model: name, Image: rel, Triangles: tris, Success: true}
}

// writePreview renders the shaded (interactive-view) image, supersampled
// then downsampled.
func writePreview(cfg Config, scn *scene.Scene, cam *camera.Camera, modelPath, outDir string) error {
	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	resolver := texture.NewCache(filepath.Dir(modelPath))
	fb := raster.Render(scn, cam, cfg.RenderSize*ss, cfg.RenderSize*ss, resolver)
	img := fb.ToImage()
	if ss > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize, cfg.RenderSize)
	}
	return export.WritePNG(filepath.Join(outDir, export.PreviewFilename), img)
}

func outputName(pngName, format string) string {
	if format == "webp" {
		return strings.TrimSuffix(pngName, ".png") + ".webp"
	}
	return pngName
}
