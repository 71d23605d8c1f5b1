package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into row bands of variable height and assign one band to
	// each worker using feedback collected from previous frames.
	//
	// stats holds each worker's statistics for the previous frame; it is
	// ignored on the first frame. The returned slice gives the block height
	// assigned to each worker and always sums to frameH.
	Schedule(workers int, frameH uint32, stats []Stats) []uint32
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same, so each worker's share of the
// next frame is proportional to its measured row throughput.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance.
func NewPerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Split frame into row bands and assign one to each worker.
//
// When previous frame information is available the scheduler estimates the
// workload for worker w in frame i+1 as:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i / time_i)
func (sch *perfectScheduler) Schedule(workers int, frameH uint32, stats []Stats) []uint32 {
	// If this is the first frame or the worker count changed, fall back to
	// an even split.
	if len(sch.blockAssignment) != workers || len(stats) != workers {
		sch.blockAssignment = make([]uint32, workers)

		share := frameH / uint32(workers)
		var assignedRows uint32
		for idx := range sch.blockAssignment {
			sch.blockAssignment[idx] = share
			assignedRows += share
		}
		sch.blockAssignment[0] += frameH - assignedRows

		return sch.blockAssignment
	}

	// Use last frame statistics.
	var total float64
	for _, st := range stats {
		total += float64(st.BlockH) / float64(st.BlockTime)
	}

	scaler := float64(frameH) / total
	var scheduledRows uint32
	for idx, st := range stats {
		rows := uint32(math.Max(1.0, math.Floor(float64(st.BlockH)/float64(st.BlockTime)*scaler)))
		if scheduledRows+rows > frameH {
			rows = frameH - scheduledRows
		}
		sch.blockAssignment[idx] = rows
		scheduledRows += rows
	}

	// In case rows don't add up to the frame height append the missing ones
	// to the first worker.
	sch.blockAssignment[0] += frameH - scheduledRows

	return sch.blockAssignment
}
