package scene

import (
	"errors"
	"testing"

	"github.com/kylittle/Crucible/asset/texture"
	"github.com/kylittle/Crucible/asset/wavefront"
	"github.com/kylittle/Crucible/types"
)

func mustTexels(t *testing.T, w, h uint32, data []float32) *texture.Texture {
	t.Helper()
	img, err := texture.NewFromTexels(w, h, data)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestSceneAliases(t *testing.T) {
	sc := New()
	ball := NewSphere(types.XYZ(0, 0, 0), 1, nil)

	if err := sc.AddNamed("ball", ball); err != nil {
		t.Fatal(err)
	}
	if err := sc.AddNamed("ball", NewSphere(types.XYZ(1, 0, 0), 1, nil)); !errors.Is(err, ErrAliasInUse) {
		t.Fatalf("expected ErrAliasInUse for duplicate alias; got %v", err)
	}

	got, err := sc.Lookup("ball")
	if err != nil {
		t.Fatal(err)
	}
	if got != Hittable(ball) {
		t.Fatal("expected lookup to return the registered object")
	}

	if _, err = sc.Lookup("missing"); !errors.Is(err, ErrUnknownAlias) {
		t.Fatalf("expected ErrUnknownAlias; got %v", err)
	}
}

func TestSceneValidate(t *testing.T) {
	sc := New()
	if err := sc.Validate(); !errors.Is(err, ErrInvalidScene) {
		t.Fatalf("expected ErrInvalidScene for empty scene; got %v", err)
	}

	sc.Add(NewSphere(types.XYZ(0, 0, 0), 1, NewLambertianColor(types.XYZ(1, 1, 1), 1)))
	if err := sc.Validate(); !errors.Is(err, ErrInvalidScene) {
		t.Fatalf("expected ErrInvalidScene without a camera; got %v", err)
	}

	sc.Camera = NewCameraRig(types.XYZ(0, 0, 5), types.XYZ(0, 0, 0))
	if err := sc.Validate(); err != nil {
		t.Fatalf("expected valid scene; got %v", err)
	}

	sc.Add(NewSphere(types.XYZ(2, 0, 0), 1, nil))
	if err := sc.Validate(); !errors.Is(err, ErrInvalidScene) {
		t.Fatalf("expected ErrInvalidScene for material-less primitive; got %v", err)
	}
}

func TestSceneValidateBrokenMaterial(t *testing.T) {
	sc := New()
	sc.Camera = NewCameraRig(types.XYZ(0, 0, 5), types.XYZ(0, 0, 0))
	sc.Add(NewSphere(types.XYZ(0, 0, 0), 1, NewDielectric(-2)))

	if err := sc.Validate(); !errors.Is(err, ErrInvalidScene) {
		t.Fatalf("expected ErrInvalidScene for broken material; got %v", err)
	}
}

func TestAddMesh(t *testing.T) {
	mesh := &wavefront.Mesh{
		Vertices: []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		Faces: []wavefront.Face{
			{Vertices: [3]int{0, 1, 2}, Normals: [3]int{-1, -1, -1}, UVs: [3]int{-1, -1, -1}},
			{Vertices: [3]int{1, 3, 2}, Normals: [3]int{-1, -1, -1}, UVs: [3]int{-1, -1, -1}},
		},
	}

	sc := New()
	mat := NewLambertianColor(types.XYZ(1, 1, 1), 1)
	if added := sc.AddMesh(mesh, mat, 2, types.XYZ(0, 0, -5)); added != 2 {
		t.Fatalf("expected 2 triangles; got %d", added)
	}

	tri, ok := sc.Objects[0].(*Triangle)
	if !ok {
		t.Fatal("expected a triangle primitive")
	}
	if tri.V1 != types.XYZ(2, 0, -5) {
		t.Fatalf("expected scaled and offset vertex; got %v", tri.V1)
	}
	if tri.Mat != mat {
		t.Fatal("expected mesh material to be shared")
	}
}

func TestAddMeshMixedCornerForms(t *testing.T) {
	// faces like "f 1//1 2 3" reference a normal on one corner only; such
	// partial shading data must be ignored, not indexed
	mesh := &wavefront.Mesh{
		Vertices: []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:  []types.Vec3{{0, 0, 1}},
		UVs:      []types.Vec2{{0, 0}},
		Faces: []wavefront.Face{
			{Vertices: [3]int{0, 1, 2}, Normals: [3]int{0, -1, -1}, UVs: [3]int{0, -1, -1}},
		},
	}

	sc := New()
	mat := NewLambertianColor(types.XYZ(1, 1, 1), 1)
	if added := sc.AddMesh(mesh, mat, 1, types.Vec3{}); added != 1 {
		t.Fatalf("expected 1 triangle; got %d", added)
	}

	tri := sc.Objects[0].(*Triangle)
	if !tri.N0.NearZero() || !tri.N1.NearZero() || !tri.N2.NearZero() {
		t.Fatalf("expected partial normals to be dropped; got %v %v %v", tri.N0, tri.N1, tri.N2)
	}
	if tri.UV0 != (types.Vec2{}) {
		t.Fatalf("expected partial uvs to be dropped; got %v", tri.UV0)
	}
}
