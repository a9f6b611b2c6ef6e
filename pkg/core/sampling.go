package core

import (
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Sampler provides random sampling for rendering algorithms.
// Every consumer receives its sampler explicitly so a fixed seed reproduces a render.
type Sampler interface {
	// Get1D returns a uniform value in [0, 1)
	Get1D() float64
	// Range returns a uniform value in [min, max)
	Range(min, max float64) float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Range returns a random float64 in [min, max)
func (r *RandomSampler) Range(min, max float64) float64 {
	return min + (max-min)*r.random.Float64()
}

// RandomInt returns a uniform integer in [min, max]
func RandomInt(sampler Sampler, min, max int) int {
	n := min + int(sampler.Range(0, float64(max-min+1)))
	return Clamp(n, min, max)
}

// RandomVec3 returns a vector with each component uniform in [min, max)
func RandomVec3(sampler Sampler, min, max float64) Vec3 {
	return NewVec3(sampler.Range(min, max), sampler.Range(min, max), sampler.Range(min, max))
}

// RandomInUnitSphere generates a random point inside a unit sphere by rejection
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(sampler, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// RandomUnitVector generates a uniform random direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	a := sampler.Range(0, 2*math.Pi)
	z := sampler.Range(-1, 1)
	r := math.Sqrt(1 - z*z)
	return NewVec3(r*math.Cos(a), r*math.Sin(a), z)
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := NewVec3(sampler.Range(-1, 1), sampler.Range(-1, 1), 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// Clamp limits x to [min, max]
func Clamp[T constraints.Ordered](x, min, max T) T {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}

// DegreesToRadians converts an angle in degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
