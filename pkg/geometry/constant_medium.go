package geometry

import (
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// mediumExitEpsilon separates the entry and exit searches along the ray
const mediumExitEpsilon = 0.0001

// ConstantMedium is a homogeneous participating medium (fog, smoke) filling
// a closed boundary. Rays scatter at an exponentially distributed distance.
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium fills boundary with a medium of the given density and color
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium fills boundary with a medium whose color comes from a texture
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1 / density,
	}
}

// Density returns the medium density
func (m *ConstantMedium) Density() float64 {
	return -1 / m.negInvDensity
}

// Hit samples a scattering event inside the boundary
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool) {
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+mediumExitEpsilon, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t0 := math.Max(entry.T, tMin)
	t1 := math.Min(exit.T, tMax)
	if t0 >= t1 {
		return nil, false
	}
	// Ray origin inside the medium
	if t0 < 0 {
		t0 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInside := (t1 - t0) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())
	if hitDistance > distanceInside {
		return nil, false
	}

	t := t0 + hitDistance/rayLength
	return &material.SurfaceInteraction{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,                  // arbitrary
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
