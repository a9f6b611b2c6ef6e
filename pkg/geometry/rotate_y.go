package geometry

import (
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// RotateY rotates an object about the Y axis
type RotateY struct {
	Object   Hittable
	sinTheta float64
	cosTheta float64
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps object rotated by angle degrees about the Y axis.
// The world box is the extent of all eight rotated corners of the object box
// over the interval [0, 1].
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	objectBox, ok := object.BoundingBox(0, 1)
	if !ok {
		return r
	}

	corners := make([]core.Vec3, 8)
	for i := range corners {
		corners[i] = r.toWorld(objectBox.Corner(i))
	}
	r.box = core.NewAABBFromPoints(corners...)
	r.hasBox = true
	return r
}

// toLocal rotates a world-space vector into object space (by -angle)
func (r *RotateY) toLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object-space vector into world space (by +angle)
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, intersects, and rotates the result back
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool) {
	rotated := core.NewRayAt(r.toLocal(ray.Origin), r.toLocal(ray.Direction), ray.Time)

	hit, isHit := r.Object.Hit(rotated, tMin, tMax, sampler)
	if !isHit {
		return nil, false
	}

	// Rotation preserves the angle between ray and normal, so FrontFace stays valid
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the precomputed rotated box
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}
