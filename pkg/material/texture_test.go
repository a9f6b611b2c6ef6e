package material

import (
	"math"
	"testing"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

func TestSolidColor(t *testing.T) {
	color := core.NewVec3(0.2, 0.3, 0.1)
	solid := NewSolidColor(color)
	if got := solid.Value(0.9, 0.1, core.NewVec3(4, 5, 6)); got != color {
		t.Errorf("Expected %v, got %v", color, got)
	}
}

func TestCheckerTexture(t *testing.T) {
	odd := core.NewVec3(0.2, 0.3, 0.1)
	even := core.NewVec3(0.9, 0.9, 0.9)
	checker := NewCheckerTexture(odd, even)

	tests := []struct {
		name     string
		point    core.Vec3
		expected core.Vec3
	}{
		// sin(10*0.05)^3 > 0
		{"all positive", core.NewVec3(0.05, 0.05, 0.05), even},
		// one negative factor flips the sign
		{"one negative", core.NewVec3(-0.05, 0.05, 0.05), odd},
		{"two negative", core.NewVec3(-0.05, -0.05, 0.05), even},
		// crossing pi/10 along x flips the cell
		{"next cell along x", core.NewVec3(0.05+math.Pi/10, 0.05, 0.05), odd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.Value(0, 0, tt.point); got != tt.expected {
				t.Errorf("Expected %v at %v, got %v", tt.expected, tt.point, got)
			}
		})
	}
}

func TestNoiseTexture_Range(t *testing.T) {
	noise := NewNoiseTexture(4, core.NewSeededSampler(11))
	sampler := core.NewSeededSampler(12)

	for i := 0; i < 1000; i++ {
		p := core.RandomVec3(sampler, -10, 10)
		value := noise.Value(0, 0, p)
		if value.X != value.Y || value.Y != value.Z {
			t.Fatalf("Expected gray value, got %v", value)
		}
		if value.X < 0 || value.X > 1 {
			t.Fatalf("Expected value in [0,1], got %v at %v", value, p)
		}
	}
}

func TestNoiseTexture_Deterministic(t *testing.T) {
	a := NewNoiseTexture(4, core.NewSeededSampler(99))
	b := NewNoiseTexture(4, core.NewSeededSampler(99))
	p := core.NewVec3(1.3, -0.7, 2.2)
	if a.Value(0, 0, p) != b.Value(0, 0, p) {
		t.Error("Expected identical noise for identical seeds")
	}
}

func TestPerlin_LatticePointsAreZero(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(5))

	// Gradient noise vanishes at integer lattice points
	for _, p := range []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(3, -2, 7), core.NewVec3(-5, 1, 1)} {
		if n := perlin.Noise(p); math.Abs(n) > 1e-12 {
			t.Errorf("Expected zero noise at lattice point %v, got %f", p, n)
		}
	}
}

func TestPerlin_Turbulence(t *testing.T) {
	perlin := NewPerlin(core.NewSeededSampler(6))
	sampler := core.NewSeededSampler(7)
	for i := 0; i < 200; i++ {
		p := core.RandomVec3(sampler, -4, 4)
		if turb := perlin.Turbulence(p, 7); turb < 0 {
			t.Fatalf("Turbulence must be non-negative, got %f", turb)
		}
	}
}

func TestPerlinPermutation(t *testing.T) {
	perm := perlinPermutation(core.NewSeededSampler(8))
	seen := make(map[int]bool, perlinPointCount)
	for _, v := range perm {
		if v < 0 || v >= perlinPointCount || seen[v] {
			t.Fatalf("Permutation is not a bijection of 0..255: %v", perm)
		}
		seen[v] = true
	}
}
