package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]
	for _, point := range points[1:] {
		min = min.Min(point)
		max = max.Max(point)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects with this AABB using the slab method.
//
// Axis-parallel rays rely on IEEE-754 infinities: 1/0 gives ±Inf so the slab
// either imposes no constraint (origin inside) or an empty one (origin outside).
// When the origin lies exactly on a slab plane the product 0*Inf is NaN; that
// bound is ignored so the closed slab still counts as containing the origin.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / ray.Direction.Axis(axis)
		origin := ray.Origin.Axis(axis)

		t0 := (aabb.Min.Axis(axis) - origin) * invD
		t1 := (aabb.Max.Axis(axis) - origin) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		if tMax <= tMin {
			return false
		}
	}

	return true
}

// SurroundingBox returns the smallest box containing both boxes
func SurroundingBox(a, b AABB) AABB {
	return a.Union(b)
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Corner returns one of the 8 corners; bit i of index selects Max over Min on axis i
func (aabb AABB) Corner(index int) Vec3 {
	pick := func(bit int, lo, hi float64) float64 {
		if index&(1<<bit) != 0 {
			return hi
		}
		return lo
	}
	return Vec3{
		X: pick(0, aabb.Min.X, aabb.Max.X),
		Y: pick(1, aabb.Min.Y, aabb.Max.Y),
		Z: pick(2, aabb.Min.Z, aabb.Max.Z),
	}
}

// infiniteAABB is used as the starting value when folding boxes
var infiniteAABB = AABB{
	Min: Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
	Max: Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
}

// EmptyAABB returns an inverted box that any Union replaces
func EmptyAABB() AABB {
	return infiniteAABB
}
