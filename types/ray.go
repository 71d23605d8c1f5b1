package types

// A ray of light described by an origin, a direction and the shutter time at
// which it was emitted. Rays are immutable values once constructed.
type Ray struct {
	Origin Vec3
	Dir    Vec3
	Time   float32
}

// Create a new ray at shutter time 0.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// Create a new ray at a particular shutter time.
func NewRayAtTime(origin, dir Vec3, time float32) Ray {
	return Ray{Origin: origin, Dir: dir, Time: time}
}

// Get the point at parametric distance t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
