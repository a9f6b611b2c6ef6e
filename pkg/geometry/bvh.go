package geometry

import (
	"fmt"
	"sort"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// BVHNode is an internal node of a Bounding Volume Hierarchy.
// Children are either further nodes or the original objects; a node built
// over a single object has both children pointing at it.
type BVHNode struct {
	Left  Hittable
	Right Hittable
	Box   core.AABB

	single bool // Left and Right alias the same object
}

// bvhEntry pairs an object with its box so construction queries it once
type bvhEntry struct {
	object Hittable
	box    core.AABB
}

// NewBVH builds a hierarchy over objects for the time interval [time0, time1].
// The input slice is copied, not reordered.
func NewBVH(objects []Hittable, time0, time1 float64, sampler core.Sampler) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	entries := make([]bvhEntry, len(objects))
	for i, object := range objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("%w: %T at index %d", ErrNoBoundingBox, object, i)
		}
		entries[i] = bvhEntry{object: object, box: box}
	}

	return buildBVH(entries, sampler), nil
}

// NewBVHFromList builds a hierarchy over the list for the interval [0, 1]
func NewBVHFromList(list *HittableList, sampler core.Sampler) (*BVHNode, error) {
	return NewBVH(list.Objects, 0, 1, sampler)
}

// buildBVH recursively partitions entries along a randomly chosen axis
func buildBVH(entries []bvhEntry, sampler core.Sampler) *BVHNode {
	axis := core.RandomInt(sampler, 0, 2)
	less := func(a, b bvhEntry) bool {
		return a.box.Min.Axis(axis) < b.box.Min.Axis(axis)
	}

	node := &BVHNode{}
	var leftBox, rightBox core.AABB

	switch span := len(entries); span {
	case 1:
		node.Left, node.Right = entries[0].object, entries[0].object
		leftBox, rightBox = entries[0].box, entries[0].box
		node.single = true
	case 2:
		first, second := entries[0], entries[1]
		if less(second, first) {
			first, second = second, first
		}
		node.Left, node.Right = first.object, second.object
		leftBox, rightBox = first.box, second.box
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return less(entries[i], entries[j])
		})
		mid := span / 2
		left := buildBVH(entries[:mid], sampler)
		right := buildBVH(entries[mid:], sampler)
		node.Left, node.Right = left, right
		leftBox, rightBox = left.Box, right.Box
	}

	node.Box = core.SurroundingBox(leftBox, rightBox)
	return node
}

// Hit tests the ray against the node box, then both children, keeping the nearer hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.SurfaceInteraction, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if hitLeft {
		tMax = leftHit.T
	}
	if n.single {
		return leftHit, hitLeft
	}

	// The right child can only replace the left hit with a strictly closer one
	if rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the node box computed at construction
func (n *BVHNode) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return n.Box, true
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes      int // all nodes
	Leaves     int // nodes whose children are objects
	MaxDepth   int // deepest node, root = 1
	Primitives int // object references, each object counted once
}

// Stats walks the hierarchy and collects its statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(1, &stats)
	return stats
}

func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.Nodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []Hittable{n.Left, n.Right}
	if n.single {
		children = children[:1]
	}
	leaf := true
	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
			leaf = false
			continue
		}
		stats.Primitives++
	}
	if leaf {
		stats.Leaves++
	}
}
