package material

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// Material interface for surfaces and volumes that interact with rays
type Material interface {
	// Scatter generates a scattered ray and its attenuation, or reports absorption
	Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool)

	// Emitted returns the light emitted at the given surface coordinates
	Emitted(u, v float64, point core.Vec3) core.Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// NoEmission provides the default black Emitted for non-emissive materials
type NoEmission struct{}

// Emitted returns black
func (NoEmission) Emitted(u, v float64, point core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// SurfaceInteraction contains information about a ray-object intersection
type SurfaceInteraction struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal, always facing against the incoming ray
	T         float64   // Parameter t along the ray
	U, V      float64   // Texture coordinates in [0,1]
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *SurfaceInteraction) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
