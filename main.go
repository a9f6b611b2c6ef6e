package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-montecarlo-raytracer/cmd"
	"github.com/df07/go-montecarlo-raytracer/pkg/log"
)

var logger = log.New("raytracer")

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-montecarlo-raytracer"
	app.Usage = "render scenes using Monte-Carlo path tracing"
	app.Version = "0.1.0"
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
			Name:  "render",
			Usage: "render a built-in scene to an image file",
			Description: `
Build the selected scene, wrap its objects in a bounding volume hierarchy and
estimate the radiance of every pixel by averaging path-traced samples.

Image tiles are rendered in parallel. Each tile draws from its own random
source seeded from --seed, so the same flags always produce the same image.
Press Ctrl-C to abort; no image is written for an interrupted render.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderFrame,
		},
		{
			Name:  "serve",
			Usage: "serve renders over HTTP",
			Description: `
Start an HTTP server exposing /api/scenes, /api/scene-config and /api/render.
A render request returns the finished image; closing the connection cancels it.`,
			Flags:  cmd.ServeFlags,
			Action: cmd.Serve,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
