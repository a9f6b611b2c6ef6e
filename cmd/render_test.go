package cmd

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
	"github.com/df07/go-montecarlo-raytracer/pkg/scene"
)

func smallRenderOptions(t *testing.T, sceneID, file string) RenderOptions {
	return RenderOptions{
		Scene:    sceneID,
		Width:    10,
		Samples:  1,
		Depth:    3,
		Workers:  2,
		TileSize: 4,
		Seed:     3,
		Out:      filepath.Join(t.TempDir(), file),
	}
}

func TestRenderWritesImage(t *testing.T) {
	opts := smallRenderOptions(t, "cornell-smoke", "smoke.png")

	stats, err := Render(context.Background(), opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Square scene: the height follows the width
	if stats.TotalPixels != 100 || stats.TotalSamples != 100 {
		t.Errorf("Expected 100 pixels with 1 sample each, got %d pixels and %d samples", stats.TotalPixels, stats.TotalSamples)
	}

	file, err := os.Open(opts.Out)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("Expected 10x10 image, got %v", img.Bounds())
	}
}

func TestRenderExplicitFormat(t *testing.T) {
	opts := smallRenderOptions(t, "two-perlin-spheres", "spheres.out")
	opts.Format = "ppm"

	if _, err := Render(context.Background(), opts); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	data, err := os.ReadFile(opts.Out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	// 16:9 scene at width 10 is 10x5
	if !strings.HasPrefix(string(data), "P3\n10 5\n255\n") {
		t.Errorf("Expected PPM header for 10x5 image, got %q", string(data[:min(len(data), 16)]))
	}
}

func TestRenderErrors(t *testing.T) {
	opts := smallRenderOptions(t, "missing", "x.png")
	if _, err := Render(context.Background(), opts); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}

	opts = smallRenderOptions(t, "earth", "x.bmp")
	if _, err := Render(context.Background(), opts); !errors.Is(err, renderer.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}

	opts = smallRenderOptions(t, "earth", "x.png")
	opts.Format = "jpeg"
	if _, err := Render(context.Background(), opts); !errors.Is(err, renderer.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts = smallRenderOptions(t, "earth", "x.png")
	if _, err := Render(ctx, opts); !errors.Is(err, renderer.ErrInterrupted) {
		t.Errorf("Expected ErrInterrupted, got %v", err)
	}
	if _, err := os.Stat(opts.Out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected no image for an interrupted render, got %v", err)
	}
}

func TestSceneTable(t *testing.T) {
	table := sceneTable()
	for _, info := range scene.ListScenes() {
		if !strings.Contains(table, info.ID) {
			t.Errorf("Expected scene table to list %s:\n%s", info.ID, table)
		}
	}
}
