package renderer

import (
	"image"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
)

// Tile is a rectangular region of the image rendered as one unit of work
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid splits a width x height image into tiles of at most tileSize pixels per edge,
// in row-major order
func NewTileGrid(width, height, tileSize int) []*Tile {
	if tileSize <= 0 {
		tileSize = max(width, height)
	}
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]*Tile, 0, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileSize, ty*tileSize
			tiles = append(tiles, &Tile{
				ID:     len(tiles),
				Bounds: image.Rect(x0, y0, min(x0+tileSize, width), min(y0+tileSize, height)),
			})
		}
	}
	return tiles
}

// TileRenderer renders pixels of a tile using an integrator
type TileRenderer struct {
	world      geometry.Hittable
	background integrator.Background
	camera     *Camera
	integrator integrator.Integrator
	sampling   SamplingConfig
}

// NewTileRenderer creates a tile renderer; it is read-only and shared by all workers
func NewTileRenderer(world geometry.Hittable, background integrator.Background, camera *Camera, integratorInst integrator.Integrator, sampling SamplingConfig) *TileRenderer {
	return &TileRenderer{
		world:      world,
		background: background,
		camera:     camera,
		integrator: integratorInst,
		sampling:   sampling,
	}
}

// RenderTileBounds takes SamplesPerPixel samples for every pixel inside bounds.
// Tiles never overlap, so concurrent calls write disjoint parts of pixelStats.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler) RenderStats {
	stats := RenderStats{}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ps := &pixelStats[y][x]
			for sample := 0; sample < tr.sampling.SamplesPerPixel; sample++ {
				s, t := sampleCoordinates(x, y, tr.sampling.Width, tr.sampling.Height, sampler)
				ray := tr.camera.GetRay(s, t, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, tr.world, tr.background, sampler))
			}
			stats.addPixel(ps)
		}
	}

	return stats
}
