package material

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emit Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a new emissive material with a constant color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates an emissive material driven by a texture
func NewTexturedDiffuseLight(emit Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter implements the Material interface for emissive materials.
// Lights absorb every incoming ray.
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emitted light, independent of the incoming direction
func (e *DiffuseLight) Emitted(u, v float64, point core.Vec3) core.Vec3 {
	return e.Emit.Value(u, v, point)
}
