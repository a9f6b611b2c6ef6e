package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
	"github.com/df07/go-montecarlo-raytracer/pkg/scene"
	"github.com/df07/go-montecarlo-raytracer/web/server"
)

// ServeFlags are the flags accepted by the serve command
var ServeFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "port, p",
		Value: 8080,
		Usage: "port to serve on",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "render goroutines per request; 0 uses one per CPU",
	},
	cli.IntFlag{
		Name:  "tile",
		Value: renderer.DefaultRenderConfig().TileSize,
		Usage: "tile edge in pixels",
	},
	cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "random seed for scene construction and sampling",
	},
	cli.StringFlag{
		Name:  "texture",
		Value: scene.DefaultOptions().EarthTexture,
		Usage: "image used by the earth texture",
	},
}

// Serve renders scenes over HTTP.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	seed := ctx.Int64("seed")
	srv := server.NewServer(
		ctx.Int("port"),
		scene.Options{Seed: seed, EarthTexture: ctx.String("texture")},
		renderer.RenderConfig{TileSize: ctx.Int("tile"), NumWorkers: ctx.Int("workers"), Seed: seed},
	)
	return srv.Start()
}
