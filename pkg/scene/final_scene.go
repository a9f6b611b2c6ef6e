package scene

import (
	"fmt"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
)

const (
	groundBoxesPerSide = 20
	clusterSpheres     = 1000
)

// NewFinalScene combines every primitive, material and texture in one scene
func NewFinalScene(opts Options) (*Scene, error) {
	sampler := newSceneSampler(opts)
	s := &Scene{
		Name:       "final",
		Background: integrator.NewSolidBackground(core.Vec3{}),
		Camera: renderer.CameraConfig{
			LookFrom:      core.NewVec3(478, 278, -600),
			LookAt:        core.NewVec3(278, 278, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          40,
			AspectRatio:   1.0,
			FocusDistance: 10,
			Time0:         0,
			Time1:         1,
		},
		Sampling: renderer.SamplingConfig{Width: 800, Height: 800, SamplesPerPixel: 1000, MaxDepth: 50},
	}

	world := geometry.NewHittableList()

	// Ground of boxes with random heights
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	boxes := make([]geometry.Hittable, 0, groundBoxesPerSide*groundBoxesPerSide)
	for i := 0; i < groundBoxesPerSide; i++ {
		for j := 0; j < groundBoxesPerSide; j++ {
			const w = 100.0
			x0 := -1000.0 + float64(i)*w
			z0 := -1000.0 + float64(j)*w
			y1 := sampler.Range(1, 101)
			boxes = append(boxes, geometry.NewBlock(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground))
		}
	}
	groundBVH, err := geometry.NewBVH(boxes, 0, 1, sampler)
	if err != nil {
		return nil, fmt.Errorf("scene %s ground: %w", s.Name, err)
	}
	world.Add(groundBVH)

	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))
	world.Add(geometry.NewXZRect(123, 423, 147, 412, 554, light))

	// Motion-blurred sphere
	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	world.Add(geometry.NewMovingSphere(center0, center1, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	world.Add(geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)))

	// Glass ball filled with blue subsurface fog
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	world.Add(boundary)
	world.Add(geometry.NewConstantMedium(boundary, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	// Thin mist over everything
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	world.Add(geometry.NewConstantMedium(mist, 0.0001, core.NewVec3(1, 1, 1)))

	world.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(loadEarthTexture(opts))))
	world.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(material.NewNoiseTexture(0.1, sampler))))

	// Cluster of small white spheres, instanced through a rotation and translation
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := make([]geometry.Hittable, clusterSpheres)
	for i := range cluster {
		cluster[i] = geometry.NewSphere(core.RandomVec3(sampler, 0, 165), 10, white)
	}
	clusterBVH, err := geometry.NewBVH(cluster, 0, 1, sampler)
	if err != nil {
		return nil, fmt.Errorf("scene %s sphere cluster: %w", s.Name, err)
	}
	world.Add(geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	if err := s.buildWorld(world, sampler); err != nil {
		return nil, err
	}
	return s, nil
}
