package material

import (
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Value(u, v float64, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

// DefaultCheckerFrequency is the spatial frequency used by NewCheckerTexture
const DefaultCheckerFrequency = 10.0

// CheckerTexture alternates between two textures in a 3D checker pattern
type CheckerTexture struct {
	Odd       Texture
	Even      Texture
	Frequency float64
}

// NewCheckerTexture creates a solid-color checker pattern
func NewCheckerTexture(odd, even core.Vec3) *CheckerTexture {
	return NewCheckerTextureFrom(NewSolidColor(odd), NewSolidColor(even), DefaultCheckerFrequency)
}

// NewCheckerTextureFrom creates a checker pattern between two arbitrary textures
func NewCheckerTextureFrom(odd, even Texture, frequency float64) *CheckerTexture {
	return &CheckerTexture{Odd: odd, Even: even, Frequency: frequency}
}

// Value selects the odd texture where the product of sines is negative
func (c *CheckerTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	sines := math.Sin(c.Frequency*point.X) * math.Sin(c.Frequency*point.Y) * math.Sin(c.Frequency*point.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, point)
	}
	return c.Even.Value(u, v, point)
}
