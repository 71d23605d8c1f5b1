package scene

import (
	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/types"
)

// Thickness given to a degenerate box axis so slab tests stay well defined
// for axis-aligned geometry.
const aabbPadEpsilon float32 = 1e-4

// An axis-aligned bounding box.
type Aabb struct {
	Min types.Vec3
	Max types.Vec3
}

// A box that unions as the identity element.
func EmptyAabb() Aabb {
	inf := math32.Inf(1)
	return Aabb{
		Min: types.XYZ(inf, inf, inf),
		Max: types.XYZ(-inf, -inf, -inf),
	}
}

// The smallest box enclosing both inputs.
func (b Aabb) Union(other Aabb) Aabb {
	return Aabb{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Widen any near-zero axis by a small epsilon.
func (b Aabb) Pad() Aabb {
	for axis := 0; axis < 3; axis++ {
		if b.Max[axis]-b.Min[axis] < aabbPadEpsilon {
			b.Min[axis] -= 0.5 * aabbPadEpsilon
			b.Max[axis] += 0.5 * aabbPadEpsilon
		}
	}
	return b
}

// The box center, used as the primitive sort key during BVH builds.
func (b Aabb) Centroid() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// The index of the widest axis.
func (b Aabb) LongestAxis() int {
	ext := b.Max.Sub(b.Min)
	axis := 0
	if ext[1] > ext[axis] {
		axis = 1
	}
	if ext[2] > ext[axis] {
		axis = 2
	}
	return axis
}

// Slab intersection test. Returns whether the ray crosses the box within
// (tMin, tMax) and the entry distance, used for near-child-first traversal.
func (b Aabb) Hit(r types.Ray, tMin, tMax float32) (bool, float32) {
	for axis := 0; axis < 3; axis++ {
		invD := 1.0 / r.Dir[axis]
		t0 := (b.Min[axis] - r.Origin[axis]) * invD
		t1 := (b.Max[axis] - r.Origin[axis]) * invD
		if invD < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax <= tMin {
			return false, 0
		}
	}
	return true, tMin
}
