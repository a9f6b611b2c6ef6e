package integrator

import (
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the smallest ray parameter accepted as a hit, so a
// scattered ray does not re-intersect the surface it starts on
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with material sampling only
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a path tracer that follows at most maxDepth bounces
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: maxDepth}
}

// RayColor computes the color for a single camera ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, background Background, sampler core.Sampler) core.Vec3 {
	return pt.rayColor(ray, world, background, pt.maxDepth, sampler)
}

// rayColor is the recursive estimator: emitted + attenuation * incoming
func (pt *PathTracingIntegrator) rayColor(ray core.Ray, world geometry.Hittable, background Background, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1), sampler)
	if !isHit {
		return background.Radiance(ray)
	}

	emitted := hit.Material.Emitted(hit.U, hit.V, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return emitted
	}

	incoming := pt.rayColor(scatter.Scattered, world, background, depth-1, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}
