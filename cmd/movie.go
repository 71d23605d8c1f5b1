package cmd

import (
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/kylittle/Crucible/asset"
	"github.com/kylittle/Crucible/asset/shot"
	"github.com/kylittle/Crucible/demo"
	"github.com/kylittle/Crucible/renderer"
	"github.com/kylittle/Crucible/tracer"
)

// Render every frame of a shot file into numbered PNGs, then optionally
// assemble them with ffmpeg.
func RenderMovie(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing shot file argument")
	}

	res, err := asset.NewResource(ctx.Args().First(), nil)
	if err != nil {
		return err
	}
	defer res.Close()

	sh, err := shot.Load(res)
	if err != nil {
		return err
	}

	entry, err := demo.Lookup(sh.Scene)
	if err != nil {
		return err
	}
	sc, err := entry.Build(sh.Seed)
	if err != nil {
		return err
	}

	r, err := renderer.New(sc, tracer.NewPerfectScheduler(), renderer.Options{
		FrameW:          sh.Width,
		FrameH:          sh.Height,
		SamplesPerPixel: sh.SamplesPerPixel,
		NumBounces:      sh.NumBounces,
		MinBouncesForRR: sh.MinBouncesForRR,
		Exposure:        sh.Exposure,
		Seed:            sh.Seed,
		NumWorkers:      sh.Threads,
		FrameRate:       sh.FrameRate,
		ShutterAngle:    sh.ShutterAngle,
		FrameCount:      sh.Frames,
	})
	if err != nil {
		return err
	}
	defer r.Close()

	if err = os.MkdirAll(sh.OutDir, 0755); err != nil {
		return err
	}

	logger.Noticef("rendering %d frames of %q into %s", sh.Frames, sh.Scene, sh.OutDir)
	err = r.RenderMovie(func(frame uint32, img *image.RGBA) error {
		return writePng(framePath(sh.OutDir, frame), img)
	})
	if err != nil {
		return err
	}

	if sh.MakeMovie {
		return assembleMovie(sh)
	}
	return nil
}

func framePath(outDir string, frame uint32) string {
	return filepath.Join(outDir, fmt.Sprintf("frame_%05d.png", frame))
}

// Stitch the rendered frames into an mp4 next to the frame directory.
func assembleMovie(sh *shot.Shot) error {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return errors.New("cmd: ffmpeg not found in PATH; frames were rendered but not assembled")
	}

	outFile := sh.OutDir + ".mp4"
	cmd := exec.Command(ffmpeg,
		"-y",
		"-framerate", fmt.Sprintf("%g", sh.FrameRate),
		"-i", filepath.Join(sh.OutDir, "frame_%05d.png"),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		outFile,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.Noticef("assembling %s", outFile)
	return cmd.Run()
}
