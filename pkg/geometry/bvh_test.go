package geometry

import (
	"errors"
	"math"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// randomSpheres builds a reproducible field of small spheres inside [-10,10]³
func randomSpheres(seed int64, count int) []Hittable {
	sampler := core.NewSeededSampler(seed)
	objects := make([]Hittable, count)
	for i := range objects {
		center := core.RandomVec3(sampler, -10, 10)
		radius := sampler.Range(0.1, 0.8)
		objects[i] = NewSphere(center, radius, material.NewLambertian(core.RandomVec3(sampler, 0, 1)))
	}
	return objects
}

// linearHit is the reference nearest-hit search used to validate the BVH
func linearHit(objects []Hittable, ray core.Ray, tMin, tMax float64) (*material.SurfaceInteraction, bool) {
	return NewHittableList(objects...).Hit(ray, tMin, tMax, nil)
}

func TestNewBVH(t *testing.T) {
	t.Run("empty list returns error", func(t *testing.T) {
		bvh, err := NewBVH(nil, 0, 1, core.NewSeededSampler(1))
		test.That(t, bvh, test.ShouldBeNil)
		test.That(t, errors.Is(err, ErrEmptyBVH), test.ShouldBeTrue)
	})

	t.Run("unbounded object returns error naming it", func(t *testing.T) {
		objects := []Hittable{
			NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial),
			NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), testMaterial),
		}
		bvh, err := NewBVH(objects, 0, 1, core.NewSeededSampler(1))
		test.That(t, bvh, test.ShouldBeNil)
		test.That(t, errors.Is(err, ErrNoBoundingBox), test.ShouldBeTrue)
		test.That(t, strings.Contains(err.Error(), "*geometry.Plane at index 1"), test.ShouldBeTrue)
	})

	t.Run("single object aliases both children", func(t *testing.T) {
		sphere := NewSphere(core.NewVec3(1, 2, 3), 1, testMaterial)
		bvh, err := NewBVH([]Hittable{sphere}, 0, 1, core.NewSeededSampler(1))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, bvh.Left, test.ShouldEqual, sphere)
		test.That(t, bvh.Right, test.ShouldEqual, sphere)

		box, _ := sphere.BoundingBox(0, 1)
		test.That(t, bvh.Box, test.ShouldResemble, box)

		stats := bvh.Stats()
		test.That(t, stats, test.ShouldResemble, BVHStats{Nodes: 1, Leaves: 1, MaxDepth: 1, Primitives: 1})
	})

	t.Run("two objects ordered by box minimum", func(t *testing.T) {
		low := NewSphere(core.NewVec3(0, 0, 0), 1, testMaterial)
		high := NewSphere(core.NewVec3(5, 5, 5), 1, testMaterial)

		// Whatever axis is drawn, low has the smaller minimum
		for seed := int64(0); seed < 10; seed++ {
			bvh, err := NewBVH([]Hittable{high, low}, 0, 1, core.NewSeededSampler(seed))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, bvh.Left, test.ShouldEqual, low)
			test.That(t, bvh.Right, test.ShouldEqual, high)
		}
	})

	t.Run("two objects with equal minimum keep input order", func(t *testing.T) {
		first := NewSphere(core.NewVec3(1, 1, 1), 1, testMaterial)
		second := NewSphere(core.NewVec3(1, 1, 1), 1, testMaterial)

		for seed := int64(0); seed < 10; seed++ {
			bvh, err := NewBVH([]Hittable{first, second}, 0, 1, core.NewSeededSampler(seed))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, bvh.Left == Hittable(first), test.ShouldBeTrue)
			test.That(t, bvh.Right == Hittable(second), test.ShouldBeTrue)
		}
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		objects := randomSpheres(3, 50)
		original := make([]Hittable, len(objects))
		copy(original, objects)

		_, err := NewBVH(objects, 0, 1, core.NewSeededSampler(4))
		test.That(t, err, test.ShouldBeNil)
		for i := range objects {
			test.That(t, objects[i], test.ShouldEqual, original[i])
		}
	})

	t.Run("many objects", func(t *testing.T) {
		objects := randomSpheres(5, 300)
		bvh, err := NewBVH(objects, 0, 1, core.NewSeededSampler(6))
		test.That(t, err, test.ShouldBeNil)

		stats := bvh.Stats()
		test.That(t, stats.Primitives, test.ShouldEqual, len(objects))
		test.That(t, stats.MaxDepth, test.ShouldBeGreaterThanOrEqualTo, 9)
		test.That(t, stats.Leaves, test.ShouldBeGreaterThan, 0)

		for _, object := range objects {
			box, _ := object.BoundingBox(0, 1)
			test.That(t, bvh.Box.Contains(box), test.ShouldBeTrue)
		}
	})
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	objects := randomSpheres(42, 400)
	bvh, err := NewBVH(objects, 0, 1, core.NewSeededSampler(7))
	test.That(t, err, test.ShouldBeNil)

	rays := []core.Ray{
		// Axis-aligned
		core.NewRay(core.NewVec3(-20, 0, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, -20, 0), core.NewVec3(0, 1, 0)),
		core.NewRay(core.NewVec3(0, 0, -20), core.NewVec3(0, 0, 1)),
		core.NewRay(core.NewVec3(3, 3, 20), core.NewVec3(0, 0, -1)),
		// Diagonal
		core.NewRay(core.NewVec3(-20, -20, -20), core.NewVec3(1, 1, 1)),
		core.NewRay(core.NewVec3(20, -20, 5), core.NewVec3(-1, 1, -0.2)),
		// Starting inside the cloud
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.3, -0.7, 0.2)),
		// Misses
		core.NewRay(core.NewVec3(-20, 30, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(0, 0, -20), core.NewVec3(0, 0, -1)),
	}

	sampler := core.NewSeededSampler(8)
	for i := 0; i < 500; i++ {
		origin := core.RandomVec3(sampler, -25, 25)
		target := core.RandomVec3(sampler, -10, 10)
		rays = append(rays, core.NewRay(origin, target.Subtract(origin)))
	}

	hits := 0
	for _, ray := range rays {
		bvhRecord, bvhHit := bvh.Hit(ray, 0.001, math.Inf(1), nil)
		linearRecord, linearFound := linearHit(objects, ray, 0.001, math.Inf(1))

		test.That(t, bvhHit, test.ShouldEqual, linearFound)
		if !bvhHit {
			continue
		}
		hits++
		test.That(t, bvhRecord.T, test.ShouldAlmostEqual, linearRecord.T, 1e-12)
		test.That(t, bvhRecord.Point, test.ShouldResemble, linearRecord.Point)
		test.That(t, bvhRecord.Material, test.ShouldEqual, linearRecord.Material)
	}

	// The battery must exercise both outcomes
	test.That(t, hits, test.ShouldBeGreaterThan, 0)
	test.That(t, hits, test.ShouldBeLessThan, len(rays))
}

func TestBVH_RespectsInterval(t *testing.T) {
	objects := []Hittable{
		NewSphere(core.NewVec3(0, 0, -2), 0.5, testMaterial),
		NewSphere(core.NewVec3(0, 0, -6), 0.5, testMaterial),
		NewSphere(core.NewVec3(0, 0, -10), 0.5, testMaterial),
	}
	bvh, err := NewBVH(objects, 0, 1, core.NewSeededSampler(9))
	test.That(t, err, test.ShouldBeNil)

	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	hit, ok := bvh.Hit(ray, 3, math.Inf(1), nil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, hit.T, test.ShouldAlmostEqual, 5.5, 1e-9)

	_, ok = bvh.Hit(ray, 0.001, 1.0, nil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestNewBVHFromList(t *testing.T) {
	list := NewHittableList(randomSpheres(11, 20)...)
	bvh, err := NewBVHFromList(list, core.NewSeededSampler(12))
	test.That(t, err, test.ShouldBeNil)

	listBox, ok := list.BoundingBox(0, 1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, bvh.Box, test.ShouldResemble, listBox)
}
