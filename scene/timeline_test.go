package scene

import (
	"testing"

	"github.com/kylittle/Crucible/types"
)

func TestConstantTimeline(t *testing.T) {
	tl := ConstantTimeline(types.XYZ(1, 2, 3))
	if tl.Animated() {
		t.Fatal("expected single-key timeline to be static")
	}
	for _, time := range []float32{-1, 0, 0.5, 100} {
		if got := tl.At(time); got != types.XYZ(1, 2, 3) {
			t.Fatalf("expected constant value at t=%v; got %v", time, got)
		}
	}
}

func TestTimelineClampsOutsideKeyRange(t *testing.T) {
	tl := NewTimeline(
		Keyframe{Time: 1, Value: types.XYZ(0, 0, 0)},
		Keyframe{Time: 2, Value: types.XYZ(10, 0, 0), Interp: InterpLinear},
	)

	if got := tl.At(0); got != types.XYZ(0, 0, 0) {
		t.Fatalf("expected clamp to first key before range; got %v", got)
	}
	if got := tl.At(5); got != types.XYZ(10, 0, 0) {
		t.Fatalf("expected clamp to last key after range; got %v", got)
	}
}

func TestTimelineInterpolation(t *testing.T) {
	type spec struct {
		interp Interpolation
		at     float32
		exp    types.Vec3
	}
	specs := []spec{
		{InterpStep, 0.25, types.XYZ(0, 0, 0)},
		{InterpStep, 0.999, types.XYZ(0, 0, 0)},
		{InterpLinear, 0.25, types.XYZ(2.5, 0, 0)},
		{InterpLinear, 0.5, types.XYZ(5, 0, 0)},
		// smoothstep(0.5) == 0.5 but eases near the ends
		{InterpSmooth, 0.5, types.XYZ(5, 0, 0)},
	}

	for index, s := range specs {
		tl := NewTimeline(
			Keyframe{Time: 0, Value: types.XYZ(0, 0, 0)},
			Keyframe{Time: 1, Value: types.XYZ(10, 0, 0), Interp: s.interp},
		)
		got := tl.At(s.at)
		if got.Sub(s.exp).Len() > 1e-5 {
			t.Fatalf("[spec %d] expected %v at t=%v; got %v", index, s.exp, s.at, got)
		}
	}
}

func TestTimelineSmoothEases(t *testing.T) {
	tl := NewTimeline(
		Keyframe{Time: 0, Value: types.XYZ(0, 0, 0)},
		Keyframe{Time: 1, Value: types.XYZ(10, 0, 0), Interp: InterpSmooth},
	)

	// Smoothstep lags linear in the first half.
	if got := tl.At(0.25)[0]; got >= 2.5 {
		t.Fatalf("expected eased value below 2.5; got %v", got)
	}
}

func TestAddKeySortsByTime(t *testing.T) {
	tl := NewTimeline()
	tl.AddKey(2, types.XYZ(2, 0, 0), InterpLinear).
		AddKey(0, types.XYZ(0, 0, 0), InterpLinear).
		AddKey(1, types.XYZ(1, 0, 0), InterpLinear)

	if !tl.Animated() {
		t.Fatal("expected multi-key timeline to be animated")
	}
	if got := tl.At(0.5); got.Sub(types.XYZ(0.5, 0, 0)).Len() > 1e-5 {
		t.Fatalf("expected keys to be time-ordered; got %v at t=0.5", got)
	}
}
