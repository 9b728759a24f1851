package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "raybvh"
	app.Usage = "build and trace bounding volume hierarchies over triangle meshes"
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
			Name:      "build",
			Usage:     "build a BVH over an OBJ mesh and print its stats",
			ArgsUsage: "mesh.obj",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "builder",
					Value: "sah",
					Usage: "split strategy: simple|sah",
				},
			},
			Action: buildCommand,
		},
		{
			Name:      "render",
			Usage:     "render an ambient-occlusion demo image for an OBJ mesh",
			ArgsUsage: "mesh.obj",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "samples",
					Value: 16,
					Usage: "number of ambient-occlusion samples per pixel",
				},
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
				cli.StringFlag{
					Name:  "out, o",
					Value: "output.bmp",
					Usage: "output image filename",
				},
			},
			Action: renderCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%s", err.Error())
		os.Exit(1)
	}
}
