package main

import (
	"fmt"
	"os"

	"github.com/achilleasa/renderfarm/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "renderfarm"
	app.Usage = "render sharded synthetic scene datasets with external renderers"
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
			Name:  "render",
			Usage: "render all scenes of a shard",
			Description: `
Split the scene catalog into --total shards and render shard --sub.

Every scene is first passed to the photorealistic renderer and, once the whole
shard is done, to the depth and segmentation label renderer. Scenes whose
outputs already exist below --target-root are skipped, so an interrupted run
resumes when launched again with the same arguments.`,
			Flags:  cmd.ShardFlags,
			Action: cmd.RenderShard,
		},
		{
			Name:        "plan",
			Usage:       "list the scenes of a shard and their completion state",
			Description: `Print the shard assignment without rendering anything.`,
			Flags:       cmd.ShardFlags,
			Action:      cmd.PlanShard,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
