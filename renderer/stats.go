package renderer

import "time"

type WorkerStat struct {
	// The worker index inside the pool.
	Id int

	// The block height and the percentage of total frame area it represents.
	BlockH       uint32
	FramePercent float32

	// Render time for assigned block.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total render time for entire frame.
	RenderTime time.Duration

	// Radiance samples discarded as non-finite while tracing the frame.
	NanEvents uint64
}
