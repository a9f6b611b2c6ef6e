package scene

import (
	"fmt"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
	"github.com/df07/go-montecarlo-raytracer/pkg/log"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	World      geometry.Hittable     // Root of the object hierarchy, usually a BVH
	Background integrator.Background // Radiance of rays leaving the scene
	Camera     renderer.CameraConfig
	Sampling   renderer.SamplingConfig
	BVHStats   geometry.BVHStats // Shape of the top-level BVH
}

// Options are the inputs a scene builder may use
type Options struct {
	Seed         int64  // Seed for randomly placed objects and noise textures
	EarthTexture string // Image used by the earth textures
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		Seed:         1,
		EarthTexture: "earthmap.jpg",
	}
}

// GetWorld returns the object hierarchy
func (s *Scene) GetWorld() geometry.Hittable {
	return s.World
}

// GetBackground returns the background model
func (s *Scene) GetBackground() integrator.Background {
	return s.Background
}

// GetCamera builds the camera for the current configuration
func (s *Scene) GetCamera() *renderer.Camera {
	return renderer.NewCamera(s.Camera)
}

// GetSamplingConfig returns the recommended sampling settings
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.Sampling
}

// SetImageSize changes the output resolution. A non-positive height is derived
// from the width and the camera aspect ratio; otherwise the aspect ratio follows the size.
func (s *Scene) SetImageSize(width, height int) {
	if width <= 0 {
		return
	}
	if height <= 0 {
		height = max(1, int(float64(width)/s.Camera.AspectRatio))
	}
	s.Sampling.Width = width
	s.Sampling.Height = height
	s.Camera.AspectRatio = float64(width) / float64(height)
}

// buildWorld wraps the objects in a BVH over the camera shutter interval
func (s *Scene) buildWorld(objects *geometry.HittableList, sampler core.Sampler) error {
	bvh, err := geometry.NewBVH(objects.Objects, s.Camera.Time0, s.Camera.Time1, sampler)
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.Name, err)
	}

	s.World = bvh
	s.BVHStats = bvh.Stats()
	logger.Debugf("scene %s: %d objects, BVH depth %d", s.Name, objects.Len(), s.BVHStats.MaxDepth)
	return nil
}
