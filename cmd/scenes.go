package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/kylittle/Crucible/demo"
	"github.com/kylittle/Crucible/scene"
)

// List the built-in demo scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Scene", "Description"})
	for _, entry := range demo.List() {
		table.Append([]string{entry.Name, entry.Description})
	}
	table.Render()

	fmt.Fprint(os.Stdout, buf.String())
	return nil
}

// Describe a demo scene: build it with the default seed and summarize its
// contents.
func SceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene name argument")
	}
	entry, err := demo.Lookup(ctx.Args().First())
	if err != nil {
		return err
	}

	sc, err := entry.Build(uint64(ctx.Int("seed")))
	if err != nil {
		return err
	}

	spheres, triangles, animated := 0, 0, 0
	for _, obj := range sc.Objects {
		switch prim := obj.(type) {
		case *scene.Sphere:
			spheres++
			if prim.Center.Animated() {
				animated++
			}
		case *scene.Triangle:
			triangles++
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"Name", entry.Name})
	table.Append([]string{"Description", entry.Description})
	table.Append([]string{"Spheres", fmt.Sprintf("%d", spheres)})
	table.Append([]string{"Triangles", fmt.Sprintf("%d", triangles)})
	table.Append([]string{"Animated objects", fmt.Sprintf("%d", animated)})
	table.Append([]string{"Animated camera", fmt.Sprintf("%t", sc.Camera.LookFrom.Animated() || sc.Camera.LookAt.Animated())})
	table.Render()

	fmt.Fprint(os.Stdout, buf.String())
	return nil
}
