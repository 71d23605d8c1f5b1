package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/types"
)

// The closed set of material kinds.
type MaterialType uint8

const (
	MatLambertian MaterialType = iota
	MatMetal
	MatDielectric
	MatDiffuseLight
)

// Material describes how a surface scatters or emits light. The variant set
// is closed and dispatched with an exhaustive switch. Materials are shared by
// reference across primitives and never mutated during rendering.
type Material struct {
	Type MaterialType

	// Albedo for scattering materials, radiance for lights.
	Albedo *Texture

	// Lambertian: probability of scattering rather than absorbing a ray.
	// The albedo is divided by this so energy stays balanced.
	ScatterProb float32

	// Metal: radius of the random perturbation applied to reflections.
	Fuzz float32

	// Dielectric: refractive index relative to the enclosing medium.
	RefractionIndex float32
}

// Create a perfect matte material from a texture. prob is the chance the
// material scatters instead of absorbing; 1 gives classic Lambertian.
func NewLambertian(albedo *Texture, prob float32) *Material {
	return &Material{Type: MatLambertian, Albedo: albedo, ScatterProb: prob}
}

// Create a matte material with a solid color.
func NewLambertianColor(color types.Vec3, prob float32) *Material {
	return NewLambertian(NewSolidTexture(color), prob)
}

// Create a reflective material. Fuzz is clamped to [0, 1]; 0 yields a
// perfect mirror.
func NewMetal(albedo types.Vec3, fuzz float32) *Material {
	if fuzz < 0 {
		fuzz = 0
	} else if fuzz > 1 {
		fuzz = 1
	}
	return &Material{Type: MatMetal, Albedo: NewSolidTexture(albedo), Fuzz: fuzz}
}

// Create a refractive material such as glass or water.
func NewDielectric(refractionIndex float32) *Material {
	return &Material{Type: MatDielectric, RefractionIndex: refractionIndex}
}

// Create an emissive material radiating the texture color.
func NewDiffuseLight(emission *Texture) *Material {
	return &Material{Type: MatDiffuseLight, Albedo: emission}
}

// Create an emissive material with a constant radiance.
func NewDiffuseLightColor(radiance types.Vec3) *Material {
	return NewDiffuseLight(NewSolidTexture(radiance))
}

// Verify the material can be evaluated during a render. Called while the
// scene is validated, before any worker starts.
func (m *Material) Validate() error {
	switch m.Type {
	case MatDielectric:
		if m.RefractionIndex <= 0 {
			return fmt.Errorf("%w: dielectric refraction index %v", ErrInvalidScene, m.RefractionIndex)
		}
	case MatLambertian:
		if m.ScatterProb <= 0 || m.ScatterProb > 1 {
			return fmt.Errorf("%w: lambertian scatter probability %v outside (0, 1]", ErrInvalidScene, m.ScatterProb)
		}
		fallthrough
	default:
		if m.Albedo == nil {
			return fmt.Errorf("%w: material without a texture", ErrInvalidScene)
		}
	}
	return nil
}

// Scatter an incoming ray at a hit point. Returns the scattered ray, the
// color attenuation and whether the ray scattered at all; absorbed rays
// terminate the light path.
func (m *Material) Scatter(rayIn types.Ray, rec *HitRecord, smp *types.Sampler) (types.Ray, types.Vec3, bool) {
	switch m.Type {
	case MatLambertian:
		dir := smp.CosineHemisphere(rec.Normal)
		scattered := types.NewRayAtTime(rec.Point, dir, rayIn.Time)
		attenuation := m.Albedo.Sample(rec.U, rec.V, rec.Point).Mul(1.0 / m.ScatterProb)
		if smp.Float32() > m.ScatterProb {
			return types.Ray{}, types.Vec3{}, false
		}
		return scattered, attenuation, true

	case MatMetal:
		reflected := rayIn.Dir.Normalize().Reflect(rec.Normal)
		if m.Fuzz > 0 {
			reflected = reflected.Add(smp.UnitVector().Mul(m.Fuzz))
		}
		// A perturbed reflection pointing into the surface is absorbed;
		// this is modeled behavior, not an error.
		if reflected.Dot(rec.Normal) <= 0 {
			return types.Ray{}, types.Vec3{}, false
		}
		scattered := types.NewRayAtTime(rec.Point, reflected, rayIn.Time)
		return scattered, m.Albedo.Sample(rec.U, rec.V, rec.Point), true

	case MatDielectric:
		ri := m.RefractionIndex
		if rec.FrontFace {
			ri = 1.0 / ri
		}

		unitDir := rayIn.Dir.Normalize()
		cosTheta := math32.Min(-unitDir.Dot(rec.Normal), 1.0)
		sinTheta := math32.Sqrt(1.0 - cosTheta*cosTheta)

		var dir types.Vec3
		cannotRefract := ri*sinTheta > 1.0
		if cannotRefract || schlickReflectance(cosTheta, ri) > smp.Float32() {
			dir = unitDir.Reflect(rec.Normal)
		} else {
			dir = unitDir.Refract(rec.Normal, ri)
		}
		return types.NewRayAtTime(rec.Point, dir, rayIn.Time), types.XYZ(1, 1, 1), true

	default:
		// Lights never scatter.
		return types.Ray{}, types.Vec3{}, false
	}
}

// Emitted radiance at a surface point. Zero for non-emissive materials.
func (m *Material) Emitted(u, v float32, p types.Vec3) types.Vec3 {
	if m.Type != MatDiffuseLight {
		return types.Vec3{}
	}
	return m.Albedo.Sample(u, v, p)
}

// Schlick's approximation for the Fresnel reflectance factor.
func schlickReflectance(cosine, refractionIndex float32) float32 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
