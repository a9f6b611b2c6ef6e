package geometry

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// rectThickness pads the bounding box along the fixed axis so it is never flat
const rectThickness = 0.0001

// AARect is an axis-aligned rectangle lying in the plane Axis = K.
// A and B are the two in-plane axes in increasing order (XY, XZ or YZ).
type AARect struct {
	Axis     int     // fixed axis: 0=X, 1=Y, 2=Z
	A0, A1   float64 // extent along the first in-plane axis
	B0, B1   float64 // extent along the second in-plane axis
	K        float64 // plane coordinate along Axis
	Material material.Material

	flipped bool // outward normal points toward -Axis
}

// NewXYRect creates a rectangle in the plane z = k
func NewXYRect(x0, x1, y0, y1, k float64, material material.Material) *AARect {
	return &AARect{Axis: 2, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: material}
}

// NewXZRect creates a rectangle in the plane y = k
func NewXZRect(x0, x1, z0, z1, k float64, material material.Material) *AARect {
	return &AARect{Axis: 1, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: material}
}

// NewYZRect creates a rectangle in the plane x = k
func NewYZRect(y0, y1, z0, z1, k float64, material material.Material) *AARect {
	return &AARect{Axis: 0, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: material}
}

// planeAxes returns the two in-plane axes for the fixed axis
func (r *AARect) planeAxes() (int, int) {
	switch r.Axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// OutwardNormal returns the unit normal along the fixed axis
func (r *AARect) OutwardNormal() core.Vec3 {
	sign := 1.0
	if r.flipped {
		sign = -1.0
	}
	switch r.Axis {
	case 0:
		return core.NewVec3(sign, 0, 0)
	case 1:
		return core.NewVec3(0, sign, 0)
	default:
		return core.NewVec3(0, 0, sign)
	}
}

// Hit tests if a ray crosses the rectangle
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool) {
	t := (r.K - ray.Origin.Axis(r.Axis)) / ray.Direction.Axis(r.Axis)
	// Written so that NaN (ray parallel to and inside the plane) is rejected
	if !(t > tMin && t < tMax) {
		return nil, false
	}

	axisA, axisB := r.planeAxes()
	point := ray.At(t)
	a := point.Axis(axisA)
	b := point.Axis(axisB)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hit := &material.SurfaceInteraction{
		T:        t,
		Point:    point,
		U:        (a - r.A0) / (r.A1 - r.A0),
		V:        (b - r.B0) / (r.B1 - r.B0),
		Material: r.Material,
	}
	hit.SetFaceNormal(ray, r.OutwardNormal())

	return hit, true
}

// BoundingBox returns the rectangle padded along its fixed axis
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	axisA, axisB := r.planeAxes()
	var min, max [3]float64
	min[axisA], max[axisA] = r.A0, r.A1
	min[axisB], max[axisB] = r.B0, r.B1
	min[r.Axis], max[r.Axis] = r.K-rectThickness, r.K+rectThickness
	return core.NewAABB(
		core.NewVec3(min[0], min[1], min[2]),
		core.NewVec3(max[0], max[1], max[2]),
	), true
}
