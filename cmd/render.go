package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
	"github.com/df07/go-montecarlo-raytracer/pkg/scene"
)

// RenderOptions collects the render command flags
type RenderOptions struct {
	Scene        string
	Width        int // 0 keeps the scene's resolution
	Height       int // 0 derives the height from the width and the camera aspect ratio
	Samples      int
	Depth        int
	Workers      int
	TileSize     int
	Seed         int64
	EarthTexture string
	Out          string
	Format       string // Empty picks the format from the output extension
}

// RenderFlags are the flags accepted by the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "random-spheres",
		Usage: "scene to render; see list-scenes",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "frame width; 0 uses the scene default",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "frame height; 0 derives it from the width and the camera aspect ratio",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel; 0 uses the scene default",
	},
	cli.IntFlag{
		Name:  "depth",
		Usage: "maximum number of bounces; 0 uses the scene default",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "number of render goroutines; 0 uses one per CPU",
	},
	cli.IntFlag{
		Name:  "tile",
		Value: renderer.DefaultRenderConfig().TileSize,
		Usage: "tile edge in pixels",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "random seed for scene construction and sampling",
	},
	cli.StringFlag{
		Name:  "texture",
		Value: scene.DefaultOptions().EarthTexture,
		Usage: "image used by the earth texture",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "render.png",
		Usage: "image file to write",
	},
	cli.StringFlag{
		Name:  "format",
		Usage: "output format (png or ppm); defaults to the output file extension",
	},
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := RenderOptions{
		Scene:        ctx.String("scene"),
		Width:        ctx.Int("width"),
		Height:       ctx.Int("height"),
		Samples:      ctx.Int("spp"),
		Depth:        ctx.Int("depth"),
		Workers:      ctx.Int("workers"),
		TileSize:     ctx.Int("tile"),
		Seed:         ctx.Int64("seed"),
		EarthTexture: ctx.String("texture"),
		Out:          ctx.String("out"),
		Format:       ctx.String("format"),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err := Render(runCtx, opts)
	return err
}

// Render builds the requested scene, renders it and writes the image
func Render(ctx context.Context, opts RenderOptions) (renderer.RenderStats, error) {
	var format renderer.Format
	if opts.Format != "" {
		var err error
		if format, err = renderer.ParseFormat(opts.Format); err != nil {
			return renderer.RenderStats{}, err
		}
	} else if _, err := renderer.ParseFormat(opts.Out); err != nil {
		return renderer.RenderStats{}, err
	}

	sc, err := scene.Build(opts.Scene, scene.Options{Seed: opts.Seed, EarthTexture: opts.EarthTexture})
	if err != nil {
		return renderer.RenderStats{}, err
	}
	sc.SetImageSize(opts.Width, opts.Height)
	logger.Infof("scene BVH\n%s", renderer.BVHStatsTable(sc.BVHStats))

	rt := renderer.NewRaytracer(sc, renderer.RenderConfig{
		TileSize:   opts.TileSize,
		NumWorkers: opts.Workers,
		Seed:       opts.Seed,
	})
	rt.MergeSamplingConfig(renderer.SamplingConfig{
		SamplesPerPixel: opts.Samples,
		MaxDepth:        opts.Depth,
	})

	sampling := rt.SamplingConfig()
	logger.Noticef("rendering %s at %dx%d, %d spp", opts.Scene, sampling.Width, sampling.Height, sampling.SamplesPerPixel)

	img, stats, err := rt.Render(ctx)
	logger.Noticef("render statistics\n%s", stats.Table())
	if err != nil {
		return stats, err
	}

	if dir := filepath.Dir(opts.Out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stats, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := renderer.SaveImage(opts.Out, img, format); err != nil {
		return stats, err
	}

	logger.Noticef("wrote %s", opts.Out)
	return stats, nil
}
