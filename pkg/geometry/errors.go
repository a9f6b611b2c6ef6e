package geometry

import "errors"

var (
	// ErrNoBoundingBox is returned when an object without a bounding box is placed in a BVH.
	ErrNoBoundingBox = errors.New("geometry: object has no bounding box")

	// ErrEmptyBVH is returned when a BVH is built from an empty object list.
	ErrEmptyBVH = errors.New("geometry: cannot build a BVH from an empty object list")
)
