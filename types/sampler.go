package types

import "math/rand"

// Sampler wraps a private random source used for Monte-Carlo sampling. Each
// render worker owns its own instance so that sampling never contends on a
// shared source and renders stay reproducible for a fixed seed.
type Sampler struct {
	rng *rand.Rand
}

// Create a deterministically seeded sampler.
func NewSampler(seed uint64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(int64(seed)))}
}

// Get a uniform random float in [0, 1).
func (s *Sampler) Float32() float32 {
	return s.rng.Float32()
}

// Get a uniform random float in [min, max).
func (s *Sampler) Range(min, max float32) float32 {
	return min + (max-min)*s.rng.Float32()
}

// Sample a point inside the unit sphere via rejection.
func (s *Sampler) InUnitSphere() Vec3 {
	for {
		p := Vec3{s.Range(-1, 1), s.Range(-1, 1), s.Range(-1, 1)}
		if p.LenSq() < 1.0 {
			return p
		}
	}
}

// Sample a uniformly distributed unit direction.
func (s *Sampler) UnitVector() Vec3 {
	return s.InUnitSphere().Normalize()
}

// Sample a direction from the cosine-weighted hemisphere around a unit
// normal. Adding a unit-sphere point to the normal yields the cosine
// distribution with the 1/pi normalization cancelling against the
// Lambertian BRDF.
func (s *Sampler) CosineHemisphere(normal Vec3) Vec3 {
	dir := normal.Add(s.UnitVector())
	if dir.NearZero() {
		return normal
	}
	return dir
}

// Sample a point on the unit disk (z = 0). Used for thin-lens apertures.
func (s *Sampler) InUnitDisk() Vec3 {
	for {
		p := Vec3{s.Range(-1, 1), s.Range(-1, 1), 0}
		if p.LenSq() < 1.0 {
			return p
		}
	}
}

// Sample a fully random color.
func (s *Sampler) Color() Vec3 {
	return Vec3{s.Float32(), s.Float32(), s.Float32()}
}

// Sample a random color with components in [min, max).
func (s *Sampler) ColorRange(min, max float32) Vec3 {
	return Vec3{s.Range(min, max), s.Range(min, max), s.Range(min, max)}
}
