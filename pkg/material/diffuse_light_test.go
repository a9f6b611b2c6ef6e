package material

import (
	"testing"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

func TestDiffuseLight_Scatter(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 4))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	hit := SurfaceInteraction{
		Point:  core.NewVec3(1, 0, 0),
		Normal: core.NewVec3(-1, 0, 0),
		T:      1.0,
	}

	if _, scattered := light.Scatter(ray, hit, core.NewSeededSampler(42)); scattered {
		t.Error("Diffuse light should not scatter rays")
	}
}

func TestDiffuseLight_Emitted(t *testing.T) {
	tests := []struct {
		name     string
		emission core.Vec3
	}{
		{"Red emission", core.NewVec3(1.0, 0.0, 0.0)},
		{"White emission", core.NewVec3(1.0, 1.0, 1.0)},
		{"Zero emission", core.NewVec3(0.0, 0.0, 0.0)},
		{"High intensity emission", core.NewVec3(15.0, 15.0, 15.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewDiffuseLight(tt.emission)

			// Emission does not depend on where the light is hit
			for _, p := range []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(5, -3, 2)} {
				if got := light.Emitted(0.3, 0.9, p); got != tt.emission {
					t.Errorf("Expected emission %v at %v, got %v", tt.emission, p, got)
				}
			}
		})
	}
}

func TestDiffuseLight_TexturedEmission(t *testing.T) {
	checker := NewCheckerTexture(core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	light := NewTexturedDiffuseLight(checker)

	p := core.NewVec3(-0.05, 0.05, 0.05)
	if got, want := light.Emitted(0, 0, p), checker.Value(0, 0, p); got != want {
		t.Errorf("Expected emission %v, got %v", want, got)
	}
}

func TestIsotropic_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.2, 0.4, 0.9)
	iso := NewIsotropic(albedo)

	ray := core.NewRayAt(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0.4)
	hit := SurfaceInteraction{Point: core.NewVec3(0, 0, -2), Normal: core.NewVec3(1, 0, 0), FrontFace: true}

	sampler := core.NewSeededSampler(9)
	var mean core.Vec3
	const n = 5000
	for i := 0; i < n; i++ {
		result, scattered := iso.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Isotropic phase function always scatters")
		}
		if result.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		if result.Scattered.Origin != hit.Point || result.Scattered.Time != 0.4 {
			t.Fatalf("Unexpected scattered ray %+v", result.Scattered)
		}
		mean = mean.Add(result.Scattered.Direction)
	}

	// Directions are independent of the incoming ray, so they average out
	if mean.Divide(n).Length() > 0.05 {
		t.Errorf("Expected isotropic directions, mean was %v", mean.Divide(n))
	}
}
