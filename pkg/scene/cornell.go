package scene

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
)

// cornellSize is the edge of the Cornell box in world units
const cornellSize = 555.0

func cornellCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(278, 278, -800),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   1.0,
		FocusDistance: 10,
	}
}

// cornellWalls returns the five walls of the box: red left, green right, white floor, ceiling and back
func cornellWalls() *geometry.HittableList {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return geometry.NewHittableList(
		geometry.NewYZRect(0, cornellSize, 0, cornellSize, cornellSize, green),
		geometry.NewYZRect(0, cornellSize, 0, cornellSize, 0, red),
		geometry.NewXZRect(0, cornellSize, 0, cornellSize, 0, white),
		geometry.NewXZRect(0, cornellSize, 0, cornellSize, cornellSize, white),
		geometry.NewXYRect(0, cornellSize, 0, cornellSize, cornellSize, white),
	)
}

// cornellBlocks returns the tall and short blocks, rotated and moved into place
func cornellBlocks() (tall, short geometry.Hittable) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tall = geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewRotateY(tall, 15)
	tall = geometry.NewTranslate(tall, core.NewVec3(265, 0, 295))

	short = geometry.NewBlock(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewRotateY(short, -18)
	short = geometry.NewTranslate(short, core.NewVec3(130, 0, 65))

	return tall, short
}

// NewCornellBoxScene creates the classic Cornell box with a ceiling light and two blocks
func NewCornellBoxScene(opts Options) (*Scene, error) {
	s := &Scene{
		Name:       "cornell-box",
		Background: integrator.NewSolidBackground(core.Vec3{}),
		Camera:     cornellCamera(),
		Sampling:   renderer.SamplingConfig{Width: 600, Height: 600, SamplesPerPixel: 200, MaxDepth: 50},
	}

	world := cornellWalls()
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	world.Add(geometry.NewXZRect(213, 343, 227, 332, 554, light))

	tall, short := cornellBlocks()
	world.Add(tall)
	world.Add(short)

	if err := s.buildWorld(world, newSceneSampler(opts)); err != nil {
		return nil, err
	}
	return s, nil
}

// NewCornellSmokeScene replaces the Cornell blocks with dark smoke and white fog under a larger, dimmer light
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	s := &Scene{
		Name:       "cornell-smoke",
		Background: integrator.NewSolidBackground(core.Vec3{}),
		Camera:     cornellCamera(),
		Sampling:   renderer.SamplingConfig{Width: 600, Height: 600, SamplesPerPixel: 200, MaxDepth: 50},
	}

	world := cornellWalls()
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	world.Add(geometry.NewXZRect(113, 443, 127, 432, 554, light))

	tall, short := cornellBlocks()
	world.Add(geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0)))
	world.Add(geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1)))

	if err := s.buildWorld(world, newSceneSampler(opts)); err != nil {
		return nil, err
	}
	return s, nil
}

// NewSimpleLightScene lights two marble spheres with a rectangular emitter and no sky
func NewSimpleLightScene(opts Options) (*Scene, error) {
	sampler := newSceneSampler(opts)
	s := &Scene{
		Name:       "simple-light",
		Background: integrator.NewSolidBackground(core.Vec3{}),
		Camera: renderer.CameraConfig{
			LookFrom:      core.NewVec3(26, 3, 6),
			LookAt:        core.NewVec3(0, 2, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20,
			AspectRatio:   16.0 / 9.0,
			FocusDistance: 10,
		},
		Sampling: renderer.SamplingConfig{Width: 400, Height: 225, SamplesPerPixel: 400, MaxDepth: 50},
	}

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, sampler))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewXYRect(3, 5, 1, 3, -2, light),
	)

	if err := s.buildWorld(world, sampler); err != nil {
		return nil, err
	}
	return s, nil
}
