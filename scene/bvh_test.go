package scene

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/types"
)

func TestBuildBvhRejectsEmptyList(t *testing.T) {
	if _, err := BuildBvh(nil, 0, 1); !errors.Is(err, ErrInvalidScene) {
		t.Fatalf("expected ErrInvalidScene for empty list; got %v", err)
	}
}

func TestBvhNodeEncoding(t *testing.T) {
	var n BvhNode
	n.SetPrimitives(3, 2)
	if !n.IsLeaf() {
		t.Fatal("expected a leaf node")
	}
	if first, count := n.Primitives(); first != 3 || count != 2 {
		t.Fatalf("expected primitives (3, 2); got (%d, %d)", first, count)
	}

	n.SetChildren(1, 2)
	if n.IsLeaf() {
		t.Fatal("expected an inner node")
	}
}

func TestBvhMatchesLinearScan(t *testing.T) {
	smp := types.NewSampler(42)

	prims := make([]Hittable, 0, 128)
	for i := 0; i < 128; i++ {
		center := types.XYZ(smp.Range(-20, 20), smp.Range(-20, 20), smp.Range(-20, 20))
		prims = append(prims, NewSphere(center, smp.Range(0.1, 2), nil))
	}

	bvh, err := BuildBvh(prims, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	list := List(prims)

	for i := 0; i < 2000; i++ {
		r := types.NewRay(
			types.XYZ(smp.Range(-30, 30), smp.Range(-30, 30), smp.Range(-30, 30)),
			smp.UnitVector(),
		)

		var bvhRec, listRec HitRecord
		bvhHit := bvh.Hit(r, 0.001, math32.Inf(1), &bvhRec)
		listHit := list.Hit(r, 0.001, math32.Inf(1), &listRec)

		if bvhHit != listHit {
			t.Fatalf("[ray %d] hit disagreement: bvh=%v list=%v", i, bvhHit, listHit)
		}
		if bvhHit && math32.Abs(bvhRec.T-listRec.T) > 1e-3 {
			t.Fatalf("[ray %d] distance disagreement: bvh=%v list=%v", i, bvhRec.T, listRec.T)
		}
	}
}

func TestBvhMovingPrimitives(t *testing.T) {
	path := NewTimeline(
		Keyframe{Time: 0, Value: types.XYZ(0, 0, -5)},
		Keyframe{Time: 1, Value: types.XYZ(20, 0, -5), Interp: InterpLinear},
	)
	prims := []Hittable{
		NewMovingSphere(path, 1, nil),
		NewSphere(types.XYZ(0, 30, 0), 1, nil),
	}

	bvh, err := BuildBvh(prims, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	// The tree was built over the full shutter interval, so the sphere must
	// be reachable at any time within it.
	for _, time := range []float32{0, 0.5, 1} {
		pos := path.At(time)
		r := types.NewRayAtTime(types.XYZ(pos[0], pos[1], 0), types.XYZ(0, 0, -1), time)

		var rec HitRecord
		if !bvh.Hit(r, 0.001, math32.Inf(1), &rec) {
			t.Fatalf("expected hit at time %v", time)
		}
	}
}

func TestBvhSingleAndPairLeaves(t *testing.T) {
	for _, count := range []int{1, 2, 3} {
		prims := make([]Hittable, 0, count)
		for i := 0; i < count; i++ {
			prims = append(prims, NewSphere(types.XYZ(float32(i)*5, 0, -5), 1, nil))
		}

		bvh, err := BuildBvh(prims, 0, 1)
		if err != nil {
			t.Fatalf("[count %d] %v", count, err)
		}

		var rec HitRecord
		for i := 0; i < count; i++ {
			r := types.NewRay(types.XYZ(float32(i)*5, 0, 0), types.XYZ(0, 0, -1))
			if !bvh.Hit(r, 0.001, math32.Inf(1), &rec) {
				t.Fatalf("[count %d] expected hit on sphere %d", count, i)
			}
		}
	}
}

func TestAabbHit(t *testing.T) {
	box := Aabb{Min: types.XYZ(-1, -1, -1), Max: types.XYZ(1, 1, 1)}

	hit, dist := box.Hit(types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1)), 0.001, math32.Inf(1))
	if !hit {
		t.Fatal("expected centered ray to hit the box")
	}
	if math32.Abs(dist-4) > 1e-4 {
		t.Fatalf("expected entry distance 4; got %v", dist)
	}

	if hit, _ = box.Hit(types.NewRay(types.XYZ(0, 5, 5), types.XYZ(0, 0, -1)), 0.001, math32.Inf(1)); hit {
		t.Fatal("expected offset ray to miss the box")
	}
}

func TestAabbUnion(t *testing.T) {
	b1 := Aabb{Min: types.XYZ(0, 0, 0), Max: types.XYZ(1, 1, 1)}
	b2 := Aabb{Min: types.XYZ(-1, 2, 0), Max: types.XYZ(0.5, 3, 4)}

	u := b1.Union(b2)
	if u.Min != types.XYZ(-1, 0, 0) || u.Max != types.XYZ(1, 3, 4) {
		t.Fatalf("expected union to cover both boxes; got %v", u)
	}

	if got := EmptyAabb().Union(b1); got != b1 {
		t.Fatalf("expected empty box to be a union identity; got %v", got)
	}
}
