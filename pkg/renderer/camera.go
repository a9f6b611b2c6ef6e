package renderer

import (
	"math"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
)

// CameraConfig describes a thin-lens camera with a shutter interval
type CameraConfig struct {
	LookFrom      core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera faces
	Up            core.Vec3 // World up vector used to orient the image plane
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter; 0 is a pinhole
	FocusDistance float64   // Distance to the plane in perfect focus
	Time0         float64   // Shutter open
	Time1         float64   // Shutter close
}

// Camera generates rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3
	lensRadius      float64
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	if config.FocusDistance <= 0 {
		config.FocusDistance = 1.0
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1.0
	}

	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal camera basis; w points backwards from the view direction
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(config.FocusDistance * viewportWidth)
	vertical := v.Multiply(config.FocusDistance * viewportHeight)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDistance))

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1,
// (0,0) being the lower left corner of the image
func (c *Camera) GetRay(s, t float64, sampler core.Sampler) core.Ray {
	rd := core.RandomInUnitDisk(sampler).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	origin := c.origin.Add(offset)
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRayAt(origin, direction, c.shutterTime(sampler))
}

// shutterTime draws a time uniformly from the shutter interval
func (c *Camera) shutterTime(sampler core.Sampler) float64 {
	if c.config.Time1 <= c.config.Time0 {
		return c.config.Time0
	}
	return sampler.Range(c.config.Time0, c.config.Time1)
}
