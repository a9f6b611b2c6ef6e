package integrator

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, world geometry.Hittable, background Background, sampler core.Sampler) core.Vec3
}

// Background supplies the radiance of rays that escape the scene
type Background interface {
	Radiance(ray core.Ray) core.Vec3
}

// SolidBackground returns the same radiance in every direction
type SolidBackground struct {
	Color core.Vec3
}

// NewSolidBackground creates a constant background; black for scenes lit only by emitters
func NewSolidBackground(color core.Vec3) *SolidBackground {
	return &SolidBackground{Color: color}
}

// Radiance returns the constant color
func (b *SolidBackground) Radiance(ray core.Ray) core.Vec3 {
	return b.Color
}

// GradientBackground blends from Bottom to Top with the vertical component of the ray direction
type GradientBackground struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(top, bottom core.Vec3) *GradientBackground {
	return &GradientBackground{Top: top, Bottom: bottom}
}

// NewSkyBackground creates the default blue-to-white sky
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0))
}

// Radiance interpolates linearly by t = 0.5*(dir.y + 1)
func (b *GradientBackground) Radiance(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return b.Bottom.Multiply(1.0 - t).Add(b.Top.Multiply(t))
}
