package scene

import (
	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/types"
)

// Hit information produced by an intersection test and consumed within a
// single integrator step. Records are reused between tests to avoid
// per-bounce allocations.
type HitRecord struct {
	Point  types.Vec3
	Normal types.Vec3
	T      float32
	U, V   float32

	Mat *Material

	// True when the ray hit the surface from outside.
	FrontFace bool
}

// Store a unit outward normal, flipping it to always face the ray.
func (rec *HitRecord) SetFaceNormal(r types.Ray, outward types.Vec3) {
	rec.FrontFace = r.Dir.Dot(outward) < 0
	if rec.FrontFace {
		rec.Normal = outward
	} else {
		rec.Normal = outward.Mul(-1)
	}
}

// Hittable is implemented by anything a ray can intersect: spheres,
// triangles, primitive lists and BVH trees. Hit fills rec and reports
// whether an intersection exists with t in (tMin, tMax). BBox returns a box
// enclosing the entity over the [t0, t1] shutter interval.
type Hittable interface {
	Hit(r types.Ray, tMin, tMax float32, rec *HitRecord) bool
	BBox(t0, t1 float32) Aabb
}

// A sphere whose center follows a timeline, enabling motion blur when the
// timeline is animated over the shutter interval.
type Sphere struct {
	Center *Timeline
	Radius float32
	Mat    *Material
}

// Create a static sphere.
func NewSphere(center types.Vec3, radius float32, mat *Material) *Sphere {
	return &Sphere{Center: ConstantTimeline(center), Radius: radius, Mat: mat}
}

// Create a sphere whose center follows a keyframed path.
func NewMovingSphere(path *Timeline, radius float32, mat *Material) *Sphere {
	return &Sphere{Center: path, Radius: radius, Mat: mat}
}

// The sphere center at a shutter time.
func (s *Sphere) CenterAt(t float32) types.Vec3 {
	return s.Center.At(t)
}

func (s *Sphere) Hit(r types.Ray, tMin, tMax float32, rec *HitRecord) bool {
	center := s.Center.At(r.Time)
	oc := center.Sub(r.Origin)

	a := r.Dir.LenSq()
	h := r.Dir.Dot(oc)
	c := oc.LenSq() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math32.Sqrt(discriminant)
	root := (h - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (h + sqrtD) / a
		if root <= tMin || root >= tMax {
			return false
		}
	}

	rec.T = root
	rec.Point = r.At(root)
	outward := rec.Point.Sub(center).Mul(1.0 / s.Radius)
	rec.SetFaceNormal(r, outward)
	rec.U, rec.V = sphereUV(outward)
	rec.Mat = s.Mat
	return true
}

func (s *Sphere) BBox(t0, t1 float32) Aabb {
	rVec := types.XYZ(s.Radius, s.Radius, s.Radius)
	c0 := s.Center.At(t0)
	box := Aabb{Min: c0.Sub(rVec), Max: c0.Add(rVec)}
	if s.Center.Animated() {
		c1 := s.Center.At(t1)
		box = box.Union(Aabb{Min: c1.Sub(rVec), Max: c1.Add(rVec)})
	}
	return box
}

// Spherical surface coordinates for a unit outward normal.
func sphereUV(p types.Vec3) (u, v float32) {
	theta := math32.Acos(-p[1])
	phi := math32.Atan2(-p[2], p[0]) + math32.Pi
	return phi / (2 * math32.Pi), theta / math32.Pi
}

// A triangle with optional per-vertex normals and surface coordinates.
// Vertices are fixed; meshes animate at the frame level, not per ray.
type Triangle struct {
	V0, V1, V2 types.Vec3

	// Shading normals; zero vectors fall back to the geometric normal.
	N0, N1, N2 types.Vec3

	// Surface coordinates per vertex.
	UV0, UV1, UV2 types.Vec2

	Mat *Material
}

// Create a triangle from three vertices with derived surface data.
func NewTriangle(v0, v1, v2 types.Vec3, mat *Material) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2, Mat: mat}
}

// Moller-Trumbore intersection.
func (tr *Triangle) Hit(r types.Ray, tMin, tMax float32, rec *HitRecord) bool {
	const parallelEpsilon float32 = 1e-7

	e1 := tr.V1.Sub(tr.V0)
	e2 := tr.V2.Sub(tr.V0)

	rayCrossE2 := r.Dir.Cross(e2)
	det := e1.Dot(rayCrossE2)
	if det > -parallelEpsilon && det < parallelEpsilon {
		return false
	}

	invDet := 1.0 / det
	s := r.Origin.Sub(tr.V0)
	u := invDet * s.Dot(rayCrossE2)
	if u < 0 || u > 1 {
		return false
	}

	sCrossE1 := s.Cross(e1)
	v := invDet * r.Dir.Dot(sCrossE1)
	if v < 0 || u+v > 1 {
		return false
	}

	t := invDet * e2.Dot(sCrossE1)
	if t <= tMin || t >= tMax {
		return false
	}

	rec.T = t
	rec.Point = r.At(t)
	rec.Mat = tr.Mat

	normal := e1.Cross(e2).Normalize()
	if !tr.N0.NearZero() {
		// Barycentric blend of the shading normals.
		normal = tr.N0.Mul(1 - u - v).Add(tr.N1.Mul(u)).Add(tr.N2.Mul(v)).Normalize()
	}
	rec.SetFaceNormal(r, normal)

	w := 1 - u - v
	rec.U = w*tr.UV0[0] + u*tr.UV1[0] + v*tr.UV2[0]
	rec.V = w*tr.UV0[1] + u*tr.UV1[1] + v*tr.UV2[1]
	return true
}

func (tr *Triangle) BBox(t0, t1 float32) Aabb {
	box := Aabb{
		Min: types.MinVec3(tr.V0, types.MinVec3(tr.V1, tr.V2)),
		Max: types.MaxVec3(tr.V0, types.MaxVec3(tr.V1, tr.V2)),
	}
	return box.Pad()
}

// A flat collection of hittables. Lists are the input to BVH construction
// and double as a non-accelerated fallback for tiny scenes and tests.
type List []Hittable

func (l List) Hit(r types.Ray, tMin, tMax float32, rec *HitRecord) bool {
	hitAnything := false
	closest := tMax

	for _, h := range l {
		if h.Hit(r, tMin, closest, rec) {
			hitAnything = true
			closest = rec.T
		}
	}
	return hitAnything
}

func (l List) BBox(t0, t1 float32) Aabb {
	box := EmptyAabb()
	for _, h := range l {
		box = box.Union(h.BBox(t0, t1))
	}
	return box
}
