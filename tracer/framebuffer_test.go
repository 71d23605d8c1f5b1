package tracer

import (
	"testing"

	"github.com/kylittle/Crucible/types"
)

func TestFramebufferAccumulate(t *testing.T) {
	fb := NewFramebuffer(4, 4)

	if got := fb.Pixel(0, 0); got != (types.Vec3{}) {
		t.Fatalf("expected empty pixel to be black; got %v", got)
	}

	fb.Accumulate(1, 2, types.XYZ(2, 4, 6), 2)
	if got := fb.Pixel(1, 2); got != types.XYZ(1, 2, 3) {
		t.Fatalf("expected per-sample average (1, 2, 3); got %v", got)
	}

	fb.Accumulate(1, 2, types.XYZ(0, 0, 0), 2)
	if got := fb.Pixel(1, 2); got != types.XYZ(0.5, 1, 1.5) {
		t.Fatalf("expected running average (0.5, 1, 1.5); got %v", got)
	}

	fb.Clear()
	if got := fb.Pixel(1, 2); got != (types.Vec3{}) {
		t.Fatalf("expected cleared pixel to be black; got %v", got)
	}
}

func TestFinalizeGamma(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Accumulate(0, 0, types.XYZ(0.25, 0.25, 0.25), 1)
	fb.Accumulate(1, 0, types.XYZ(1, 1, 1), 1)

	img := fb.Finalize(1.0)

	// sqrt(0.25) = 0.5 -> 127
	if got := img.Pix[img.PixOffset(0, 0)]; got != 127 {
		t.Fatalf("expected gamma-corrected 127; got %d", got)
	}
	if got := img.Pix[img.PixOffset(1, 0)]; got != 255 {
		t.Fatalf("expected full white 255; got %d", got)
	}
	if got := img.Pix[img.PixOffset(0, 0)+3]; got != 255 {
		t.Fatalf("expected opaque alpha; got %d", got)
	}
}

func TestFinalizeClampsOverexposure(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Accumulate(0, 0, types.XYZ(100, 100, 100), 1)

	img := fb.Finalize(2.0)
	if got := img.Pix[img.PixOffset(0, 0)]; got != 255 {
		t.Fatalf("expected HDR value to clamp to 255; got %d", got)
	}
}

func TestFinalizeExposureScales(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Accumulate(0, 0, types.XYZ(0.25, 0.25, 0.25), 1)

	dim := fb.Finalize(0.25)
	bright := fb.Finalize(1.0)
	if dim.Pix[0] >= bright.Pix[0] {
		t.Fatalf("expected lower exposure to darken the image; got %d >= %d", dim.Pix[0], bright.Pix[0])
	}
}
