package geometry

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// HittableList is a flat aggregate searched linearly
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool) {
	var closestHit *material.SurfaceInteraction
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar, sampler); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// BoundingBox returns the union of all member boxes. An empty list, or any
// unbounded member, makes the list unbounded.
func (l *HittableList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	box := core.EmptyAABB()
	for _, object := range l.Objects {
		objectBox, ok := object.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		box = core.SurroundingBox(box, objectBox)
	}
	return box, true
}
