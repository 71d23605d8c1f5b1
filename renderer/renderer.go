package renderer

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/kylittle/Crucible/log"
	"github.com/kylittle/Crucible/scene"
	"github.com/kylittle/Crucible/tracer"
)

// Renderer drives a pool of CPU tracing workers over a scene. The pool is
// sized once at construction and reused for every frame; per frame, the
// scheduler splits the image into one row band per worker and each worker
// traces its band into a disjoint region of the shared framebuffer.
type Renderer struct {
	sc        *scene.Scene
	scheduler tracer.BlockScheduler
	options   Options
	logger    log.Logger

	fb       *tracer.Framebuffer
	workChan chan workItem
	wg       sync.WaitGroup

	// Per-worker stats for the previous frame, fed back to the scheduler.
	lastStats []tracer.Stats
	haveStats bool

	frameStats FrameStats
}

// A block request paired with the context to trace it against.
type workItem struct {
	ctx      *tracer.Context
	req      tracer.BlockRequest
	workerId int
	stats    []tracer.Stats
}

// Create a renderer for a scene using the specified block scheduler. The
// scene and options are validated before any worker starts.
func New(sc *scene.Scene, scheduler tracer.BlockScheduler, opts Options) (*Renderer, error) {
	opts.applyDefaults()

	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, fmt.Errorf("%w: frame dimensions %dx%d", ErrBadConfiguration, opts.FrameW, opts.FrameH)
	}
	if opts.SamplesPerPixel == 0 {
		return nil, fmt.Errorf("%w: samples per pixel must be > 0", ErrBadConfiguration)
	}
	if opts.NumBounces == 0 {
		return nil, fmt.Errorf("%w: number of bounces must be > 0", ErrBadConfiguration)
	}
	if opts.MinBouncesForRR > opts.NumBounces {
		return nil, fmt.Errorf("%w: min bounces for RR exceeds bounce limit", ErrBadConfiguration)
	}
	if opts.Exposure <= 0 {
		return nil, fmt.Errorf("%w: exposure must be > 0", ErrBadConfiguration)
	}
	if opts.NumWorkers < 0 {
		return nil, fmt.Errorf("%w: negative worker count", ErrBadConfiguration)
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	if uint32(opts.NumWorkers) > opts.FrameH {
		opts.NumWorkers = int(opts.FrameH)
	}

	// A degenerate rig (coincident look points, vup parallel to the view
	// direction) should fail here rather than after the pool has started.
	aspect := float32(opts.FrameW) / float32(opts.FrameH)
	if _, err := sc.Camera.CameraAt(0, opts.ShutterLength(), aspect); err != nil {
		return nil, err
	}

	r := &Renderer{
		sc:        sc,
		scheduler: scheduler,
		options:   opts,
		logger:    log.New("renderer"),
		fb:        tracer.NewFramebuffer(opts.FrameW, opts.FrameH),
		workChan:  make(chan workItem),
		lastStats: make([]tracer.Stats, opts.NumWorkers),
	}

	r.wg.Add(opts.NumWorkers)
	for i := 0; i < opts.NumWorkers; i++ {
		go r.worker()
	}
	r.logger.Infof("started %d tracing workers", opts.NumWorkers)

	return r, nil
}

// Shutdown the renderer and its worker pool.
func (r *Renderer) Close() {
	close(r.workChan)
	r.wg.Wait()
}

// Get render statistics for the last rendered frame.
func (r *Renderer) Stats() FrameStats {
	return r.frameStats
}

func (r *Renderer) worker() {
	defer r.wg.Done()
	for item := range r.workChan {
		start := time.Now()
		item.ctx.TraceBlock(item.req, r.fb)
		item.stats[item.workerId] = tracer.Stats{
			BlockH:    item.req.BlockH,
			BlockTime: time.Since(start).Nanoseconds(),
		}
	}
}

// Render a single frame and resolve it into an sRGB image. Frame indices
// map to shot time through the options' frame rate; index 0 renders the
// shot's first frame.
func (r *Renderer) RenderFrame(frame uint32) (*image.RGBA, error) {
	opts := &r.options
	frameTime := opts.FrameTime(frame)
	shutterLen := opts.ShutterLength()

	aspect := float32(opts.FrameW) / float32(opts.FrameH)
	camera, err := r.sc.Camera.CameraAt(frameTime, shutterLen, aspect)
	if err != nil {
		return nil, err
	}

	// The BVH must enclose moving primitives for the whole shutter interval.
	bvh, err := scene.BuildBvh(r.sc.Objects, frameTime, frameTime+shutterLen)
	if err != nil {
		return nil, err
	}

	ctx := &tracer.Context{
		World:           bvh,
		Camera:          camera,
		Sky:             r.sc.Sky,
		FrameW:          opts.FrameW,
		FrameH:          opts.FrameH,
		NumBounces:      opts.NumBounces,
		MinBouncesForRR: opts.MinBouncesForRR,
	}

	var feedback []tracer.Stats
	if r.haveStats {
		feedback = r.lastStats
	}
	blockHeights := r.scheduler.Schedule(opts.NumWorkers, opts.FrameH, feedback)

	r.fb.Clear()
	frameStart := time.Now()
	doneChan := make(chan uint32, len(blockHeights))

	stats := make([]tracer.Stats, opts.NumWorkers)
	var blockY uint32
	for workerId, blockH := range blockHeights {
		r.workChan <- workItem{
			ctx: ctx,
			req: tracer.BlockRequest{
				BlockY:          blockY,
				BlockH:          blockH,
				SamplesPerPixel: opts.SamplesPerPixel,
				Seed:            opts.Seed,
				DoneChan:        doneChan,
			},
			workerId: workerId,
			stats:    stats,
		}
		blockY += blockH
	}

	var pendingRows = opts.FrameH
	for pendingRows > 0 {
		pendingRows -= <-doneChan
	}

	r.lastStats = stats
	r.haveStats = true
	r.collectFrameStats(stats, time.Since(frameStart), ctx.NanEvents())
	r.logger.Infof("rendered frame %d in %s", frame, r.frameStats.RenderTime)

	return r.fb.Finalize(opts.Exposure), nil
}

// Render every frame of the shot, invoking emit for each finished frame in
// order. Rendering stops at the first error from a frame or from emit.
func (r *Renderer) RenderMovie(emit func(frame uint32, img *image.RGBA) error) error {
	if r.options.FrameCount == 0 {
		return ErrNoFrames
	}
	for frame := uint32(0); frame < r.options.FrameCount; frame++ {
		img, err := r.RenderFrame(frame)
		if err != nil {
			return err
		}
		if err = emit(frame, img); err != nil {
			return fmt.Errorf("%w: %v", ErrInterrupted, err)
		}
	}
	return nil
}

func (r *Renderer) collectFrameStats(stats []tracer.Stats, renderTime time.Duration, nanEvents uint64) {
	workers := make([]WorkerStat, len(stats))
	for id, st := range stats {
		workers[id] = WorkerStat{
			Id:           id,
			BlockH:       st.BlockH,
			FramePercent: 100.0 * float32(st.BlockH) / float32(r.options.FrameH),
			RenderTime:   time.Duration(st.BlockTime),
		}
	}
	r.frameStats = FrameStats{
		Workers:    workers,
		RenderTime: renderTime,
		NanEvents:  nanEvents,
	}
}
