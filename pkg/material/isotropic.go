package material

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly in every direction
type Isotropic struct {
	NoEmission
	Albedo Texture
}

// NewIsotropic creates an isotropic phase function with a solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// NewTexturedIsotropic creates an isotropic phase function from a texture
func NewTexturedIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter implements the Material interface
func (i *Isotropic) Scatter(rayIn core.Ray, hit SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Scattered:   core.NewRayAt(hit.Point, core.RandomUnitVector(sampler), rayIn.Time),
		Attenuation: i.Albedo.Value(hit.U, hit.V, hit.Point),
	}, true
}
