package tracer

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/types"
)

// Framebuffer accumulates linear HDR radiance per pixel together with the
// number of samples contributing to it. Workers write disjoint row bands so
// no synchronization is needed during a frame.
type Framebuffer struct {
	Width  uint32
	Height uint32

	// RGB accumulator, 3 floats per pixel.
	accum []float32

	// Samples accumulated per pixel.
	samples []uint32
}

// Create a framebuffer for the given dimensions.
func NewFramebuffer(width, height uint32) *Framebuffer {
	return &Framebuffer{
		Width:   width,
		Height:  height,
		accum:   make([]float32, width*height*3),
		samples: make([]uint32, width*height),
	}
}

// Reset the accumulator for the next frame.
func (fb *Framebuffer) Clear() {
	for i := range fb.accum {
		fb.accum[i] = 0
	}
	for i := range fb.samples {
		fb.samples[i] = 0
	}
}

// Add the radiance sum of sampleCount rays to a pixel.
func (fb *Framebuffer) Accumulate(x, y uint32, sum types.Vec3, sampleCount uint32) {
	base := (y*fb.Width + x) * 3
	fb.accum[base] += sum[0]
	fb.accum[base+1] += sum[1]
	fb.accum[base+2] += sum[2]
	fb.samples[y*fb.Width+x] += sampleCount
}

// The averaged linear radiance of a pixel.
func (fb *Framebuffer) Pixel(x, y uint32) types.Vec3 {
	count := fb.samples[y*fb.Width+x]
	if count == 0 {
		return types.Vec3{}
	}
	base := (y*fb.Width + x) * 3
	inv := 1.0 / float32(count)
	return types.XYZ(fb.accum[base]*inv, fb.accum[base+1]*inv, fb.accum[base+2]*inv)
}

// Resolve the accumulator into an 8-bit sRGB image. Exposure scales the
// linear radiance before the gamma 2.0 transfer.
func (fb *Framebuffer) Finalize(exposure float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(fb.Width), int(fb.Height)))

	for y := uint32(0); y < fb.Height; y++ {
		for x := uint32(0); x < fb.Width; x++ {
			c := fb.Pixel(x, y).Mul(exposure)
			offset := img.PixOffset(int(x), int(y))
			img.Pix[offset] = toneChannel(c[0])
			img.Pix[offset+1] = toneChannel(c[1])
			img.Pix[offset+2] = toneChannel(c[2])
			img.Pix[offset+3] = 0xff
		}
	}
	return img
}

func toneChannel(v float32) uint8 {
	if v < 0 {
		v = 0
	}
	// Gamma 2.0 transfer.
	v = math32.Sqrt(v)
	if v > 1 {
		v = 1
	}
	return uint8(v * 255.0)
}
