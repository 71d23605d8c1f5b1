package renderer

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of indirect bounces.
	NumBounces uint32

	// Min bounces before applying russian roulette for path elimination.
	MinBouncesForRR uint32

	// Number of samples.
	SamplesPerPixel uint32

	// Exposure for tonemapping.
	Exposure float32

	// Base seed for the per-row samplers. The same seed and scene always
	// produce the same frame, regardless of worker count.
	Seed uint64

	// Size of the worker pool; 0 selects one worker per logical CPU.
	NumWorkers int

	// Frame timing for animation. FrameRate is in frames per second and
	// ShutterAngle in degrees, where 360 keeps the shutter open for the
	// entire frame interval.
	FrameRate    float32
	ShutterAngle float32

	// Number of frames to render for movies; single frame renders use 1.
	FrameCount uint32
}

// Fill in usable values for unset fields.
func (o *Options) applyDefaults() {
	if o.Exposure == 0 {
		o.Exposure = 1.0
	}
	if o.FrameRate == 0 {
		o.FrameRate = 24
	}
	if o.ShutterAngle == 0 {
		o.ShutterAngle = 180
	}
}

// The time in seconds at which a frame's shutter opens.
func (o *Options) FrameTime(frame uint32) float32 {
	return float32(frame) / o.FrameRate
}

// The time in seconds the shutter stays open per frame.
func (o *Options) ShutterLength() float32 {
	return (o.ShutterAngle / 360.0) / o.FrameRate
}
