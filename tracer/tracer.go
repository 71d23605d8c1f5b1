package tracer

import (
	"sync/atomic"

	"github.com/chewxy/math32"

	"github.com/kylittle/Crucible/scene"
	"github.com/kylittle/Crucible/types"
)

// Rays restart slightly off the surface they scattered from so float error
// cannot re-intersect it (shadow acne).
const surfaceEpsilon float32 = 0.001

// Russian roulette never terminates a path whose throughput still exceeds
// this survival probability cap.
const maxSurvivalProbability float32 = 0.95

// A unit of work processed by a tracing unit. Blocks are horizontal row
// bands of the frame; disjoint bands touch disjoint framebuffer rows so no
// locking is needed while tracing.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// The number of emitted rays per traced pixel.
	SamplesPerPixel uint32

	// Base seed for the per-row samplers. Mixing the row index into the
	// seed makes output independent of how rows are grouped into blocks.
	Seed uint64

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32
}

// Per-block tracing statistics used by the scheduler's feedback loop.
type Stats struct {
	// The rendered block height.
	BlockH uint32

	// The time for rendering this block (in nanoseconds).
	BlockTime int64
}

// Context holds the frozen per-frame state a tracing unit reads: the
// acceleration structure, camera and environment. It is immutable once a
// frame starts, so any number of units can share it.
type Context struct {
	World  scene.Hittable
	Camera *scene.Camera
	Sky    *scene.Skybox

	FrameW uint32
	FrameH uint32

	// Path termination controls.
	NumBounces      uint32
	MinBouncesForRR uint32

	// Count of non-finite radiance samples replaced with black.
	nanEvents uint64
}

// Trace all pixels of a block, accumulating radiance into fb. Each row uses
// its own deterministically seeded sampler.
func (ctx *Context) TraceBlock(req BlockRequest, fb *Framebuffer) {
	invW := 1.0 / float32(ctx.FrameW)
	invH := 1.0 / float32(ctx.FrameH)

	for y := req.BlockY; y < req.BlockY+req.BlockH; y++ {
		smp := types.NewSampler(rowSeed(req.Seed, y))

		for x := uint32(0); x < ctx.FrameW; x++ {
			var sum types.Vec3
			for s := uint32(0); s < req.SamplesPerPixel; s++ {
				u := (float32(x) + smp.Float32()) * invW
				v := 1.0 - (float32(y)+smp.Float32())*invH
				r := ctx.Camera.CastRay(u, v, smp)
				sum = sum.Add(ctx.Radiance(r, smp))
			}
			fb.Accumulate(x, y, sum, req.SamplesPerPixel)
		}
	}

	if req.DoneChan != nil {
		req.DoneChan <- req.BlockH
	}
}

// Estimate the radiance arriving along a primary ray. The loop carries the
// path throughput forward instead of recursing; emission is weighted by the
// throughput accumulated up to the bounce that reached it.
func (ctx *Context) Radiance(r types.Ray, smp *types.Sampler) types.Vec3 {
	var radiance types.Vec3
	throughput := types.XYZ(1, 1, 1)

	var rec scene.HitRecord
	for bounce := uint32(0); bounce <= ctx.NumBounces; bounce++ {
		if !ctx.World.Hit(r, surfaceEpsilon, math32.Inf(1), &rec) {
			radiance = radiance.Add(throughput.MulVec(ctx.Sky.Sample(r.Dir)))
			break
		}

		radiance = radiance.Add(throughput.MulVec(rec.Mat.Emitted(rec.U, rec.V, rec.Point)))

		scattered, attenuation, ok := rec.Mat.Scatter(r, &rec, smp)
		if !ok {
			break
		}
		throughput = throughput.MulVec(attenuation)

		if bounce >= ctx.MinBouncesForRR {
			p := math32.Min(throughput.MaxComponent(), maxSurvivalProbability)
			if smp.Float32() >= p {
				break
			}
			throughput = throughput.Mul(1.0 / p)
		}
		r = scattered
	}

	return ctx.sanitize(radiance)
}

// Replace non-finite or negative samples with black so one bad ray cannot
// poison a pixel average.
func (ctx *Context) sanitize(c types.Vec3) types.Vec3 {
	for i := 0; i < 3; i++ {
		if math32.IsNaN(c[i]) || math32.IsInf(c[i], 0) || c[i] < 0 {
			atomic.AddUint64(&ctx.nanEvents, 1)
			return types.Vec3{}
		}
	}
	return c
}

// The number of radiance samples discarded as non-finite so far.
func (ctx *Context) NanEvents() uint64 {
	return atomic.LoadUint64(&ctx.nanEvents)
}

// Derive the sampler seed for a frame row. splitmix-style mixing keeps
// adjacent rows decorrelated.
func rowSeed(base uint64, row uint32) uint64 {
	z := base + uint64(row)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
