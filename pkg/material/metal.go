package material

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	NoEmission
	Albedo   Texture // Metal color
	Fuzzness float64 // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	return NewTexturedMetal(NewSolidColor(albedo), fuzzness)
}

// NewTexturedMetal creates a metal whose tint comes from a texture
func NewTexturedMetal(albedo Texture, fuzzness float64) *Metal {
	return &Metal{Albedo: albedo, Fuzzness: core.Clamp(fuzzness, 0.0, 1.0)}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)

	// Add fuzziness by perturbing the reflection direction
	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Fuzzness))
	}

	result := ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, reflected, rayIn.Time),
		Attenuation: m.Albedo.Value(hit.U, hit.V, hit.Point),
	}

	// Fuzz may push the ray below the surface, in which case it is absorbed
	return result, reflected.Dot(hit.Normal) > 0
}
