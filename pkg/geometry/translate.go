package geometry

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// Translate places an object at an offset without copying it
type Translate struct {
	Object Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears moved by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, intersects, and moves the hit point back.
// The face orientation is decided against the moved ray, which has the same
// direction as the caller's ray.
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool) {
	moved := core.NewRayAt(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, isHit := t.Object.Hit(moved, tMin, tMax, sampler)
	if !isHit {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox shifts the object's box by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return core.NewAABB(box.Min.Add(t.Offset), box.Max.Add(t.Offset)), true
}
