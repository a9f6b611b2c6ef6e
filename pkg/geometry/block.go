package geometry

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// Block is a closed axis-aligned box made of six rectangles
type Block struct {
	Min, Max core.Vec3
	Material material.Material
	sides    *HittableList
}

// NewBlock creates a box spanning the corners p0 and p1
func NewBlock(p0, p1 core.Vec3, material material.Material) *Block {
	min, max := p0.Min(p1), p0.Max(p1)

	// Faces on the min side of each axis have their outward normal flipped
	back := NewXYRect(min.X, max.X, min.Y, max.Y, min.Z, material)
	back.flipped = true
	bottom := NewXZRect(min.X, max.X, min.Z, max.Z, min.Y, material)
	bottom.flipped = true
	left := NewYZRect(min.Y, max.Y, min.Z, max.Z, min.X, material)
	left.flipped = true

	sides := NewHittableList(
		NewXYRect(min.X, max.X, min.Y, max.Y, max.Z, material), back,
		NewXZRect(min.X, max.X, min.Z, max.Z, max.Y, material), bottom,
		NewYZRect(min.Y, max.Y, min.Z, max.Z, max.X, material), left,
	)

	return &Block{Min: min, Max: max, Material: material, sides: sides}
}

// Hit tests the ray against all six faces
func (b *Block) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the exact corner box
func (b *Block) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
