package material

import (
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// turbulenceDepth is the number of noise octaves summed for marbling
const turbulenceDepth = 7

// NoiseTexture produces a marble-like pattern from Perlin turbulence
type NoiseTexture struct {
	Noise *Perlin
	Scale float64
}

// NewNoiseTexture creates a marble texture; the sampler seeds the noise tables
func NewNoiseTexture(scale float64, sampler core.Sampler) *NoiseTexture {
	return &NoiseTexture{Noise: NewPerlin(sampler), Scale: scale}
}

// Value returns a gray level 0.5*(1 + sin(scale*z + 10*turbulence(p)))
func (n *NoiseTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	level := 0.5 * (1 + math.Sin(n.Scale*point.Z+10*n.Noise.Turbulence(point, turbulenceDepth)))
	return core.NewVec3(1, 1, 1).Multiply(level)
}
