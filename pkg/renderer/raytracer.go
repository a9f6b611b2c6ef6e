package renderer

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
	"github.com/df07/go-montecarlo-raytracer/pkg/log"
)

var logger = log.New("renderer")

// SamplingConfig contains image and sampling settings
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// MergeSamplingConfig returns base with every non-zero field of override applied
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	if override.Width > 0 {
		base.Width = override.Width
	}
	if override.Height > 0 {
		base.Height = override.Height
	}
	if override.SamplesPerPixel > 0 {
		base.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth > 0 {
		base.MaxDepth = override.MaxDepth
	}
	return base
}

// Validate reports whether the configuration can be rendered
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d samples per pixel", ErrInvalidConfig, c.SamplesPerPixel)
	}
	return nil
}

// RenderConfig controls how work is split across goroutines
type RenderConfig struct {
	TileSize   int   // Tile edge in pixels
	NumWorkers int   // Number of worker goroutines, 0 means one per CPU
	Seed       int64 // Base seed; tile i uses Seed+i
}

// DefaultRenderConfig returns the default parallel render settings
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: runtime.NumCPU(),
		Seed:       42,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Hittable
	GetBackground() integrator.Background
	GetCamera() *Camera
	GetSamplingConfig() SamplingConfig
}

// Raytracer renders a scene by distributing tiles across a worker pool
type Raytracer struct {
	scene      Scene
	sampling   SamplingConfig
	config     RenderConfig
	integrator integrator.Integrator
}

// NewRaytracer creates a raytracer for scene using the scene's sampling settings
func NewRaytracer(scene Scene, config RenderConfig) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}

	sampling := scene.GetSamplingConfig()
	return &Raytracer{
		scene:      scene,
		sampling:   sampling,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(sampling.MaxDepth),
	}
}

// MergeSamplingConfig applies the non-zero fields of override to the current sampling settings
func (rt *Raytracer) MergeSamplingConfig(override SamplingConfig) {
	rt.sampling = MergeSamplingConfig(rt.sampling, override)
	rt.integrator = integrator.NewPathTracingIntegrator(rt.sampling.MaxDepth)
}

// SamplingConfig returns the active sampling settings
func (rt *Raytracer) SamplingConfig() SamplingConfig {
	return rt.sampling
}

// Render renders the full image. Cancelling ctx stops dispatching tiles and
// returns ErrInterrupted together with the statistics gathered so far.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := rt.sampling.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	width, height := rt.sampling.Width, rt.sampling.Height

	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tiles := NewTileGrid(width, height, rt.config.TileSize)
	tileRenderer := NewTileRenderer(rt.scene.GetWorld(), rt.scene.GetBackground(), rt.scene.GetCamera(), rt.integrator, rt.sampling)

	pool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))
	logger.Infof("rendering %dx%d at %d spp, depth %d: %d tiles on %d workers",
		width, height, rt.sampling.SamplesPerPixel, rt.sampling.MaxDepth, len(tiles), pool.NumWorkers())
	pool.Start(ctx)

	stats := RenderStats{Workers: pool.NumWorkers(), TotalTiles: len(tiles)}
	submitted := 0
	for _, tile := range tiles {
		if ctx.Err() != nil {
			break
		}
		pool.SubmitTask(TileTask{
			Tile:       tile,
			TaskID:     tile.ID,
			Seed:       rt.config.Seed + int64(tile.ID),
			PixelStats: pixelStats,
		})
		submitted++
	}
	pool.Stop()

	var renderErr error
	for i := 0; i < submitted; i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, stats, ErrWorkerPoolDone
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Merge(result.Stats)
		stats.CompletedTiles++
	}

	stats.Duration = time.Since(start)
	stats.finalize()

	if renderErr != nil || stats.CompletedTiles < len(tiles) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warningf("render interrupted after %d of %d tiles", stats.CompletedTiles, len(tiles))
			return nil, stats, fmt.Errorf("%w: %w", ErrInterrupted, ctxErr)
		}
		return nil, stats, renderErr
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, Vec3ToColor(pixelStats[y][x].GetColor()))
		}
	}

	logger.Infof("render finished in %s", stats.Duration)
	return img, stats, nil
}

// sampleCoordinates maps pixel (x, y), y growing downwards, plus jitter to camera (s, t)
func sampleCoordinates(x, y, width, height int, sampler core.Sampler) (float64, float64) {
	s := (float64(x) + sampler.Get1D()) / float64(width)
	t := (float64(height-1-y) + sampler.Get1D()) / float64(height)
	return s, t
}
