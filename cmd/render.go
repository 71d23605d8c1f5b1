package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/kylittle/Crucible/demo"
	"github.com/kylittle/Crucible/renderer"
	"github.com/kylittle/Crucible/tracer"
)

// Render a still frame of a demo scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.Options{
		FrameW:          uint32(ctx.Int("width")),
		FrameH:          uint32(ctx.Int("height")),
		SamplesPerPixel: uint32(ctx.Int("spp")),
		NumBounces:      uint32(ctx.Int("num-bounces")),
		MinBouncesForRR: uint32(ctx.Int("rr-bounces")),
		Exposure:        float32(ctx.Float64("exposure")),
		Seed:            uint64(ctx.Int("seed")),
		NumWorkers:      ctx.Int("threads"),
	}

	if opts.MinBouncesForRR == 0 || opts.MinBouncesForRR >= opts.NumBounces {
		logger.Notice("disabling RR for path elimination")
		opts.MinBouncesForRR = opts.NumBounces
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}
	entry, err := demo.Lookup(ctx.Args().First())
	if err != nil {
		return err
	}

	sc, err := entry.Build(opts.Seed)
	if err != nil {
		return err
	}

	r, err := renderer.New(sc, tracer.NewPerfectScheduler(), opts)
	if err != nil {
		return err
	}
	defer r.Close()

	img, err := r.RenderFrame(uint32(ctx.Int("frame")))
	if err != nil {
		return err
	}

	stats := r.Stats()
	logger.Noticef("rendered %q in %s", entry.Name, stats.RenderTime)
	if stats.NanEvents > 0 {
		logger.Warningf("discarded %d non-finite radiance samples", stats.NanEvents)
	}
	displayFrameStats(stats)

	return writePng(ctx.String("out"), img)
}

// Print a per-worker breakdown of the last frame.
func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Block time"})
	for _, w := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", w.Id),
			fmt.Sprintf("%d", w.BlockH),
			fmt.Sprintf("%5.1f", w.FramePercent),
			w.RenderTime.String(),
		})
	}
	table.Render()
	fmt.Fprint(os.Stdout, buf.String())
}

func writePng(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, img); err != nil {
		return err
	}
	logger.Noticef("wrote %s", path)
	return nil
}
