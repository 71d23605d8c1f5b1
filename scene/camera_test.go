package scene

import (
	"errors"
	"testing"

	"github.com/kylittle/Crucible/types"
)

func TestNewCameraRejectsDegenerateBasis(t *testing.T) {
	up := types.XYZ(0, 1, 0)

	// position and target coincide
	_, err := NewCamera(types.XYZ(1, 2, 3), types.XYZ(1, 2, 3), up, 45, 1, 0, 10, 0, 0)
	if !errors.Is(err, ErrInvalidScene) {
		t.Fatalf("expected ErrInvalidScene for coincident position/target; got %v", err)
	}

	// up vector parallel to the view direction
	_, err = NewCamera(types.XYZ(0, 5, 0), types.XYZ(0, 0, 0), up, 45, 1, 0, 10, 0, 0)
	if !errors.Is(err, ErrInvalidScene) {
		t.Fatalf("expected ErrInvalidScene for parallel up vector; got %v", err)
	}
}

func TestCastRayCenterPointsAtTarget(t *testing.T) {
	lookFrom := types.XYZ(0, 0, 5)
	lookAt := types.XYZ(0, 0, 0)
	cam, err := NewCamera(lookFrom, lookAt, types.XYZ(0, 1, 0), 45, 1, 0, 5, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	smp := types.NewSampler(1)
	r := cam.CastRay(0.5, 0.5, smp)

	if r.Origin != lookFrom {
		t.Fatalf("expected pinhole origin %v; got %v", lookFrom, r.Origin)
	}
	exp := lookAt.Sub(lookFrom).Normalize()
	if r.Dir.Normalize().Sub(exp).Len() > 1e-5 {
		t.Fatalf("expected center ray toward target %v; got %v", exp, r.Dir.Normalize())
	}
}

func TestCastRayZeroApertureIsDeterministic(t *testing.T) {
	cam, err := NewCamera(types.XYZ(0, 0, 5), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), 45, 1, 0, 5, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	smp := types.NewSampler(1)
	r1 := cam.CastRay(0.3, 0.7, smp)
	r2 := cam.CastRay(0.3, 0.7, smp)

	if r1.Origin != r2.Origin || r1.Dir != r2.Dir {
		t.Fatal("expected identical rays for a zero aperture")
	}
}

func TestCastRayApertureJittersOrigin(t *testing.T) {
	cam, err := NewCamera(types.XYZ(0, 0, 5), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), 45, 1, 0.5, 5, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	smp := types.NewSampler(1)
	origins := make(map[types.Vec3]bool)
	for i := 0; i < 16; i++ {
		origins[cam.CastRay(0.5, 0.5, smp).Origin] = true
	}
	if len(origins) < 2 {
		t.Fatal("expected lens sampling to vary the ray origin")
	}

	for origin := range origins {
		if origin.Sub(types.XYZ(0, 0, 5)).Len() > 0.25+1e-5 {
			t.Fatalf("origin %v outside the lens radius", origin)
		}
	}
}

func TestCastRayTimeInShutterInterval(t *testing.T) {
	cam, err := NewCamera(types.XYZ(0, 0, 5), types.XYZ(0, 0, 0), types.XYZ(0, 1, 0), 45, 1, 0, 5, 2, 2.5)
	if err != nil {
		t.Fatal(err)
	}

	smp := types.NewSampler(1)
	for i := 0; i < 1000; i++ {
		r := cam.CastRay(0.5, 0.5, smp)
		if r.Time < 2 || r.Time >= 2.5 {
			t.Fatalf("[draw %d] ray time %v outside shutter interval [2, 2.5)", i, r.Time)
		}
	}
}

func TestCameraRigFreezesAtFrameTime(t *testing.T) {
	rig := NewCameraRig(types.XYZ(0, 0, 10), types.XYZ(0, 0, 0))
	rig.LookFrom = NewTimeline(
		Keyframe{Time: 0, Value: types.XYZ(0, 0, 10)},
		Keyframe{Time: 1, Value: types.XYZ(10, 0, 10), Interp: InterpLinear},
	)

	cam, err := rig.CameraAt(0.5, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}

	smp := types.NewSampler(1)
	r := cam.CastRay(0.5, 0.5, smp)
	if r.Origin.Sub(types.XYZ(5, 0, 10)).Len() > 1e-4 {
		t.Fatalf("expected camera frozen at the frame-time position; got %v", r.Origin)
	}
	if r.Time < 0.5 || r.Time >= 0.6 {
		t.Fatalf("expected ray time inside the frame's shutter interval; got %v", r.Time)
	}
}
