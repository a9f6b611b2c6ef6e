package geometry

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// Hittable is anything a ray can intersect
type Hittable interface {
	// Hit returns the nearest interaction with t in the open interval (tMin, tMax).
	// The sampler is only consumed by stochastic geometry such as participating media.
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool)

	// BoundingBox returns a box enclosing the object over [time0, time1].
	// The bool is false for unbounded objects.
	BoundingBox(time0, time1 float64) (core.AABB, bool)
}
