package scene

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
	"github.com/df07/go-montecarlo-raytracer/pkg/loaders"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
)

// daylight is the flat sky color of the outdoor scenes
var daylight = core.NewVec3(0.70, 0.80, 1.00)

// outdoorCamera frames the origin from (13,2,3), shared by the outdoor scenes
func outdoorCamera(aperture float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      aperture,
		FocusDistance: 10,
	}
}

func outdoorSampling() renderer.SamplingConfig {
	return renderer.SamplingConfig{Width: 400, Height: 225, SamplesPerPixel: 100, MaxDepth: 50}
}

// NewRandomSpheresScene creates a field of small spheres around three large ones.
// Diffuse spheres bounce upward during the shutter interval.
func NewRandomSpheresScene(opts Options) (*Scene, error) {
	sampler := newSceneSampler(opts)

	camera := outdoorCamera(0.1)
	camera.Time1 = 1.0
	s := &Scene{
		Name:       "random-spheres",
		Background: integrator.NewSkyBackground(),
		Camera:     camera,
		Sampling:   outdoorSampling(),
	}

	world := geometry.NewHittableList()

	checker := material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomVec3(sampler, 0, 1).MultiplyVec(core.RandomVec3(sampler, 0, 1))
				center1 := center.Add(core.NewVec3(0, sampler.Range(0, 0.5), 0))
				world.Add(geometry.NewMovingSphere(center, center1, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(sampler, 0.5, 1)
				fuzz := sampler.Range(0, 0.5)
				world.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				world.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	if err := s.buildWorld(world, sampler); err != nil {
		return nil, err
	}
	return s, nil
}

// NewTwoSpheresScene creates two large spheres sharing one checker texture
func NewTwoSpheresScene(opts Options) (*Scene, error) {
	s := &Scene{
		Name:       "two-spheres",
		Background: integrator.NewSolidBackground(daylight),
		Camera:     outdoorCamera(0),
		Sampling:   outdoorSampling(),
	}

	checker := material.NewTexturedLambertian(material.NewCheckerTexture(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)

	if err := s.buildWorld(world, newSceneSampler(opts)); err != nil {
		return nil, err
	}
	return s, nil
}

// NewTwoPerlinSpheresScene creates a marble ground and sphere
func NewTwoPerlinSpheresScene(opts Options) (*Scene, error) {
	sampler := newSceneSampler(opts)
	s := &Scene{
		Name:       "two-perlin-spheres",
		Background: integrator.NewSolidBackground(daylight),
		Camera:     outdoorCamera(0),
		Sampling:   outdoorSampling(),
	}

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, sampler))
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)

	if err := s.buildWorld(world, sampler); err != nil {
		return nil, err
	}
	return s, nil
}

// NewEarthScene creates a single image-textured globe
func NewEarthScene(opts Options) (*Scene, error) {
	s := &Scene{
		Name:       "earth",
		Background: integrator.NewSolidBackground(daylight),
		Camera:     outdoorCamera(0),
		Sampling:   outdoorSampling(),
	}

	globe := geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(loadEarthTexture(opts)))
	if err := s.buildWorld(geometry.NewHittableList(globe), newSceneSampler(opts)); err != nil {
		return nil, err
	}
	return s, nil
}

// loadEarthTexture loads the earth image; a missing file renders cyan instead of failing the scene
func loadEarthTexture(opts Options) material.Texture {
	texture, err := loaders.LoadImageTexture(opts.EarthTexture)
	if err != nil {
		logger.Warningf("could not load earth texture: %v", err)
		return material.NewImageTexture(0, 0, nil)
	}
	return texture
}
