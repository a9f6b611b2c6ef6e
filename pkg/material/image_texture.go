package material

import (
	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// missingImageColor is returned when a texture has no pixel data
var missingImageColor = core.NewVec3(0, 1, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Value samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return missingImageColor
	}

	u = core.Clamp(u, 0.0, 1.0)
	// V=0 is bottom, V=1 is top; image row 0 is the top
	v = 1.0 - core.Clamp(v, 0.0, 1.0)

	x := core.Clamp(int(u*float64(t.Width)), 0, t.Width-1)
	y := core.Clamp(int(v*float64(t.Height)), 0, t.Height-1)

	return t.Pixels[y*t.Width+x]
}
