package geometry

import (
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal.
// It has no bounding box, so it belongs in a HittableList next to a BVH, not inside one.
type Plane struct {
	Point    core.Vec3         // A point on the plane
	Normal   core.Vec3         // Normal vector (should be normalized)
	Material material.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Material: material,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= tMin || t >= tMax {
		return nil, false
	}

	hit := &material.SurfaceInteraction{
		T:        t,
		Point:    ray.At(t),
		Material: p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)

	// Planar UV: fractional position along two axes spanning the plane
	tangent := p.Normal.Cross(core.NewVec3(0, 1, 0))
	if tangent.NearZero() {
		tangent = p.Normal.Cross(core.NewVec3(1, 0, 0))
	}
	tangent = tangent.Normalize()
	bitangent := p.Normal.Cross(tangent)
	local := hit.Point.Subtract(p.Point)
	u := local.Dot(tangent)
	v := local.Dot(bitangent)
	hit.U = u - math.Floor(u)
	hit.V = v - math.Floor(v)

	return hit, true
}

// BoundingBox reports that a plane is unbounded
func (p *Plane) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}
