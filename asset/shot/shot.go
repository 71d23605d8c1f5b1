package shot

import (
	"fmt"
	"io"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/kylittle/Crucible/asset"
)

// A Shot describes a movie render: the scene to use, output settings and the
// frame/shutter schedule. Shots are stored as TOML files so long renders can
// be reproduced without retyping a dozen flags.
type Shot struct {
	// Name of the demo movie or scene to render.
	Scene string `toml:"scene"`

	// Output frame dimensions.
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`

	// Sampling settings.
	SamplesPerPixel uint32 `toml:"samples_per_pixel"`
	NumBounces      uint32 `toml:"num_bounces"`
	MinBouncesForRR uint32 `toml:"rr_bounces"`

	// Frame schedule. ShutterAngle follows film convention: 360 keeps the
	// shutter open for the whole frame interval.
	Frames       uint32  `toml:"frames"`
	FrameRate    float32 `toml:"frame_rate"`
	ShutterAngle float32 `toml:"shutter_angle"`

	// Worker pool size; 0 selects the host parallelism.
	Threads int `toml:"threads"`

	// Base RNG seed for reproducible renders.
	Seed uint64 `toml:"seed"`

	// Exposure for HDR -> LDR mapping.
	Exposure float32 `toml:"exposure"`

	// Directory receiving the numbered frame images.
	OutDir string `toml:"out_dir"`

	// Assemble the frames into an mp4 with ffmpeg after rendering.
	MakeMovie bool `toml:"make_movie"`
}

// Load a shot description from a TOML resource and fill in defaults.
func Load(res *asset.Resource) (*Shot, error) {
	data, err := io.ReadAll(res)
	if err != nil {
		return nil, fmt.Errorf("shot: could not read %s: %s", res.Path(), err.Error())
	}

	sh := &Shot{}
	if err = toml.Unmarshal(data, sh); err != nil {
		return nil, fmt.Errorf("shot: could not parse %s: %s", res.Path(), err.Error())
	}

	sh.applyDefaults()
	if err = sh.validate(); err != nil {
		return nil, fmt.Errorf("shot: %s: %s", res.Path(), err.Error())
	}
	return sh, nil
}

func (sh *Shot) applyDefaults() {
	if sh.Width == 0 {
		sh.Width = 512
	}
	if sh.Height == 0 {
		sh.Height = 512
	}
	if sh.SamplesPerPixel == 0 {
		sh.SamplesPerPixel = 16
	}
	if sh.NumBounces == 0 {
		sh.NumBounces = 10
	}
	if sh.Frames == 0 {
		sh.Frames = 1
	}
	if sh.FrameRate == 0 {
		sh.FrameRate = 24
	}
	if sh.ShutterAngle == 0 {
		sh.ShutterAngle = 180
	}
	if sh.Threads == 0 {
		sh.Threads = runtime.NumCPU()
	}
	if sh.Exposure == 0 {
		sh.Exposure = 1.0
	}
	if sh.OutDir == "" {
		sh.OutDir = "frames"
	}
}

func (sh *Shot) validate() error {
	if sh.Scene == "" {
		return fmt.Errorf("missing scene name")
	}
	if sh.ShutterAngle < 0 || sh.ShutterAngle > 360 {
		return fmt.Errorf("shutter angle %v outside [0, 360]", sh.ShutterAngle)
	}
	if sh.FrameRate < 0 {
		return fmt.Errorf("negative frame rate %v", sh.FrameRate)
	}
	if sh.Threads < 0 {
		return fmt.Errorf("negative thread count %d", sh.Threads)
	}
	return nil
}

// The length of time the shutter stays open each frame, in seconds.
func (sh *Shot) ShutterLength() float32 {
	return (sh.ShutterAngle / 360.0) / sh.FrameRate
}

// The time at which a frame's shutter opens, in seconds.
func (sh *Shot) FrameTime(frame uint32) float32 {
	return float32(frame) / sh.FrameRate
}
