package scene

import (
	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/types"
)

// Skybox supplies the radiance for rays that escape the scene. With a
// backing texture the ray direction is mapped with an equirectangular
// projection; without one a vertical white-to-blue gradient is used.
type Skybox struct {
	tex *Texture
}

// Create a skybox backed by an equirectangular environment texture.
func NewSkybox(tex *Texture) *Skybox {
	return &Skybox{tex: tex}
}

// Create the default gradient skybox.
func NewGradientSkybox() *Skybox {
	return &Skybox{}
}

// Sample the radiance arriving from a ray direction. Total for every finite
// direction; the mapping wraps horizontally and clamps at the poles.
func (sb *Skybox) Sample(dir types.Vec3) types.Vec3 {
	unit := dir.Normalize()
	if sb == nil || sb.tex == nil {
		t := 0.5 * (unit[1] + 1.0)
		return types.Lerp(types.XYZ(1, 1, 1), types.XYZ(0.5, 0.7, 1.0), t)
	}

	theta := math32.Atan2(unit[0], unit[2])
	phi := math32.Asin(clampF(unit[1], -1, 1))

	u := theta/(2*math32.Pi) + 0.5
	v := phi/math32.Pi + 0.5

	// Wrap seams back into [0, 1).
	u = u - math32.Floor(u)
	return sb.tex.Sample(u, v, unit)
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
