package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/kylittle/Crucible/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "crucible"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "scene",
			Usage:  "inspect built-in demo scenes",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:   "list",
					Usage:  "list built-in demo scenes",
					Action: cmd.ListScenes,
				},
				{
					Name:      "info",
					Usage:     "describe a demo scene",
					ArgsUsage: "scene_name",
					Flags: []cli.Flag{
						cli.IntFlag{
							Name:  "seed",
							Value: 42,
							Usage: "seed for procedural scenes",
						},
					},
					Action: cmd.SceneInfo,
				},
			},
		},
		{
			Name:   "render",
			Usage:  "render scene",
			Action: nil,
			Subcommands: []cli.Command{
				{
					Name:        "frame",
					Usage:       "render single frame",
					Description: `Render a single frame of a built-in demo scene.`,
					ArgsUsage:   "scene_name",
					Flags: []cli.Flag{
						cli.IntFlag{
							Name:  "width",
							Value: 512,
							Usage: "frame width",
						},
						cli.IntFlag{
							Name:  "height",
							Value: 512,
							Usage: "frame height",
						},
						cli.IntFlag{
							Name:  "spp",
							Value: 16,
							Usage: "samples per pixel",
						},
						cli.IntFlag{
							Name:  "num-bounces",
							Value: 10,
							Usage: "max path bounces",
						},
						cli.IntFlag{
							Name:  "rr-bounces",
							Value: 3,
							Usage: "min bounces before applying RR for path elimination",
						},
						cli.Float64Flag{
							Name:  "exposure",
							Value: 1.0,
							Usage: "camera exposure for tone-mapping",
						},
						cli.IntFlag{
							Name:  "seed",
							Value: 42,
							Usage: "seed for procedural scenes and samplers",
						},
						cli.IntFlag{
							Name:  "threads",
							Usage: "number of tracing workers (0 = all CPUs)",
						},
						cli.IntFlag{
							Name:  "frame",
							Usage: "frame index to render for animated scenes",
						},
						cli.StringFlag{
							Name:  "out, o",
							Value: "frame.png",
							Usage: "image filename for the rendered frame",
						},
					},
					Action: cmd.RenderFrame,
				},
				{
					Name:        "movie",
					Usage:       "render all frames of a shot file",
					Description: `Render a movie described by a TOML shot file and optionally assemble it with ffmpeg.`,
					ArgsUsage:   "shot_file.toml",
					Action:      cmd.RenderMovie,
				},
			},
		},
	}

	app.Run(os.Args)
}
