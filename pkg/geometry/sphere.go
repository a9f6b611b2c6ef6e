package geometry

import (
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool) {
	return hitSphere(s.Center, s.Radius, s.Material, ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return sphereBox(s.Center, s.Radius), true
}

// hitSphere is shared by static and moving spheres once the center is known
func hitSphere(center core.Vec3, radius float64, mat material.Material, ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2(halfB)t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	hit := &material.SurfaceInteraction{
		T:        root,
		Point:    ray.At(root),
		Material: mat,
	}

	// Outward normal from center to hit point
	outwardNormal := hit.Point.Subtract(center).Divide(radius)
	hit.SetFaceNormal(ray, outwardNormal)
	hit.U, hit.V = sphereUV(outwardNormal)

	return hit, true
}

// sphereUV maps a point on the unit sphere to texture coordinates.
// u runs around the Y axis starting at -X, v runs from -Y (0) to +Y (1).
func sphereUV(p core.Vec3) (u, v float64) {
	theta := math.Acos(core.Clamp(-p.Y, -1.0, 1.0))
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return phi / (2 * math.Pi), theta / math.Pi
}

func sphereBox(center core.Vec3, radius float64) core.AABB {
	r := math.Abs(radius)
	extent := core.NewVec3(r, r, r)
	return core.NewAABB(center.Subtract(extent), center.Add(extent))
}
