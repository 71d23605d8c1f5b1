package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/asset/texture"
	"github.com/kylittle/Crucible/types"
)

// The closed set of texture kinds.
type TextureType uint8

const (
	TexSolid TextureType = iota
	TexChecker
	TexImage
	TexNoise
)

// Texture is a pure function from (u, v, point) to a color. The variant set
// is closed so sampling dispatches over an exhaustive switch. Textures are
// shared by reference between materials and are immutable once built.
type Texture struct {
	Type TextureType

	// Solid.
	Color types.Vec3

	// Checker: two sub-textures and the inverse of the check scale.
	Even     *Texture
	Odd      *Texture
	invScale float32

	// Image: exclusively owned decoded texels.
	image *texture.Texture

	// Noise: shared permutation tables and a spatial frequency.
	noise      *perlin
	noiseScale float32
}

// Create a solid color texture.
func NewSolidTexture(color types.Vec3) *Texture {
	return &Texture{Type: TexSolid, Color: color}
}

// Create a checker texture alternating between two sub-textures. The check
// size is expressed in world units and must be positive.
func NewCheckerTexture(scale float32, even, odd *Texture) (*Texture, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: checker scale %v must be > 0", ErrInvalidScene, scale)
	}
	return &Texture{Type: TexChecker, Even: even, Odd: odd, invScale: 1.0 / scale}, nil
}

// Create a checker texture alternating between two solid colors.
func NewCheckerColorTexture(scale float32, c1, c2 types.Vec3) (*Texture, error) {
	return NewCheckerTexture(scale, NewSolidTexture(c1), NewSolidTexture(c2))
}

// Create a texture backed by a decoded image. Textures with unusable backing
// data are rejected here, at scene construction, so a render can never start
// and then fail on a bad asset.
func NewImageTexture(img *texture.Texture) (*Texture, error) {
	if img == nil || len(img.Data) == 0 || img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("%w: empty or undecoded image data", ErrTextureLoad)
	}
	return &Texture{Type: TexImage, image: img}, nil
}

// Create a marble-like procedural noise texture.
func NewNoiseTexture(scale float32, seed uint64) *Texture {
	return &Texture{Type: TexNoise, noise: newPerlin(seed), noiseScale: scale}
}

// Sample the texture at surface coordinates (u, v) and world point p.
func (t *Texture) Sample(u, v float32, p types.Vec3) types.Vec3 {
	switch t.Type {
	case TexChecker:
		xInt := int32(math32.Floor(t.invScale * p[0]))
		yInt := int32(math32.Floor(t.invScale * p[1]))
		zInt := int32(math32.Floor(t.invScale * p[2]))
		if (xInt+yInt+zInt)%2 == 0 {
			return t.Even.Sample(u, v, p)
		}
		return t.Odd.Sample(u, v, p)
	case TexImage:
		u = clamp01(u)
		// Flip v to image row order.
		v = 1.0 - clamp01(v)
		x := int(u * float32(t.image.Width))
		y := int(v * float32(t.image.Height))
		return t.image.Texel(x, y)
	case TexNoise:
		// Marble: sine striped along z, perturbed by turbulence.
		turb := t.noise.turbulence(p, 7)
		return types.XYZ(0.5, 0.5, 0.5).Mul(1 + math32.Sin(t.noiseScale*p[2]+10*turb))
	default:
		return t.Color
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
