package integrator

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/material"
)

// countingBackground records how often escaping rays reach it
type countingBackground struct {
	calls int
}

func (b *countingBackground) Radiance(ray core.Ray) core.Vec3 {
	b.calls++
	return core.NewVec3(1, 1, 1)
}

// createTestWorld creates a simple world with a gray diffuse sphere
func createTestWorld(albedo float64) geometry.Hittable {
	gray := material.NewLambertian(core.NewVec3(albedo, albedo, albedo))
	return geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray))
}

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	light := material.NewDiffuseLight(core.NewVec3(10, 10, 10))
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		geometry.NewSphere(core.NewVec3(0, 0, 3), 0.5, light),
	)
	sampler := core.NewSeededSampler(42)

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // diffuse sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),  // light
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // sky
	}

	integrator := NewPathTracingIntegrator(0)
	for _, ray := range rays {
		if c := integrator.RayColor(ray, world, NewSkyBackground(), sampler); c != (core.Vec3{}) {
			t.Errorf("Expected black color for depth 0, got %v for ray %v", c, ray.Direction)
		}
	}

	integrator = NewPathTracingIntegrator(3)
	if c := integrator.RayColor(rays[0], world, NewSkyBackground(), sampler); c == (core.Vec3{}) {
		t.Error("Expected non-black color for positive depth")
	}
}

func TestPathTracingMissReturnsBackground(t *testing.T) {
	integrator := NewPathTracingIntegrator(5)
	background := NewSolidBackground(core.NewVec3(0.1, 0.2, 0.3))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))

	got := integrator.RayColor(ray, geometry.NewHittableList(), background, core.NewSeededSampler(1))
	if got != background.Color {
		t.Errorf("Expected background %v, got %v", background.Color, got)
	}
}

func TestPathTracingEmitterOnly(t *testing.T) {
	emission := core.NewVec3(4, 3, 2)
	world := geometry.NewHittableList(
		geometry.NewXYRect(-1, 1, -1, 1, -2, material.NewDiffuseLight(emission)),
	)
	integrator := NewPathTracingIntegrator(10)

	// Lights do not scatter, so the background never contributes
	got := integrator.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), world, NewSkyBackground(), core.NewSeededSampler(1))
	if got != emission {
		t.Errorf("Expected emission %v, got %v", emission, got)
	}
}

func TestGradientBackground(t *testing.T) {
	sky := NewSkyBackground()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 5, 0), sky.Top},
		{"straight down", core.NewVec3(0, -2, 0), sky.Bottom},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sky.Radiance(core.NewRay(core.Vec3{}, tt.direction))
			if got.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestPathTracingGraySphereConvergence checks a value derived by hand: a ray hitting
// the front of a convex diffuse sphere bounces once and escapes. The bounce direction
// is symmetric about the normal (0,0,1), so E[dir.y] = 0 and the expected sky
// radiance is the horizon color (0.75, 0.85, 1.0). The pixel converges to albedo times that.
func TestPathTracingGraySphereConvergence(t *testing.T) {
	const albedo = 0.5
	world := createTestWorld(albedo)
	integrator := NewPathTracingIntegrator(50)
	sampler := core.NewSeededSampler(7)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	const samples = 20000
	channels := [3][]float64{}
	for i := 0; i < samples; i++ {
		c := integrator.RayColor(ray, world, NewSkyBackground(), sampler)
		channels[0] = append(channels[0], c.X)
		channels[1] = append(channels[1], c.Y)
		channels[2] = append(channels[2], c.Z)
	}

	expected := core.NewVec3(0.75, 0.85, 1.0).Multiply(albedo)
	for axis, values := range channels {
		mean, std := stat.MeanStdDev(values, nil)
		stdErr := std / math.Sqrt(samples)
		want := expected.Axis(axis)
		if math.Abs(mean-want) > 4*stdErr+1e-12 {
			t.Errorf("Channel %d: expected %f, got %f (standard error %f)", axis, want, mean, stdErr)
		}
	}
}

// TestPathTracingClosedBoxNeverEscapes builds a fully enclosed Cornell-style box;
// no path started inside it may reach the background.
func TestPathTracingClosedBoxNeverEscapes(t *testing.T) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	world := geometry.NewHittableList(
		geometry.NewYZRect(0, 555, 0, 555, 555, green),
		geometry.NewYZRect(0, 555, 0, 555, 0, red),
		geometry.NewXZRect(213, 343, 227, 332, 554, light),
		geometry.NewXZRect(0, 555, 0, 555, 0, white),
		geometry.NewXZRect(0, 555, 0, 555, 555, white),
		geometry.NewXYRect(0, 555, 0, 555, 555, white),
		geometry.NewXYRect(0, 555, 0, 555, 0, white),
	)

	background := &countingBackground{}
	integrator := NewPathTracingIntegrator(50)
	sampler := core.NewSeededSampler(99)

	for i := 0; i < 2000; i++ {
		origin := core.RandomVec3(sampler, 1, 554)
		direction := core.RandomUnitVector(sampler)
		color := integrator.RayColor(core.NewRay(origin, direction), world, background, sampler)
		if color.X < 0 || color.Y < 0 || color.Z < 0 {
			t.Fatalf("Negative radiance %v", color)
		}
	}

	if background.calls != 0 {
		t.Errorf("Expected no ray to escape the closed box, background reached %d times", background.calls)
	}
}
