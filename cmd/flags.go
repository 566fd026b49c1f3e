package cmd

import (
	"github.com/achilleasa/renderfarm/config"
	"github.com/urfave/cli"
)

// Flags shared by all commands that operate on a shard.
var ShardFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "sub",
		Usage: "1-based index of the shard to process",
	},
	cli.IntFlag{
		Name:  "total",
		Usage: "number of shards the scene catalog is split into",
	},
	cli.StringFlag{
		Name:  "target-root",
		Usage: "output root; scenes are written below <target-root>/data",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel",
	},
	cli.StringFlag{
		Name:  "material",
		Usage: "object material set",
	},
	cli.BoolFlag{
		Name:  "denoise",
		Usage: "denoise rendered frames",
	},
	cli.Float64Flag{
		Name:  "trans-prob",
		Usage: "probability of assigning a transparent material to an object",
	},
	cli.BoolFlag{
		Name:  "fixed-angle",
		Usage: "render from fixed camera angles (required)",
	},
	cli.BoolFlag{
		Name:  "rand-pattern",
		Usage: "randomize the projected pattern (unsupported)",
	},
	cli.BoolFlag{
		Name:  "rand-lighting",
		Usage: "randomize scene lighting (unsupported)",
	},
	cli.BoolFlag{
		Name:  "rand-table",
		Usage: "use a random material for the table (unsupported)",
	},
	cli.BoolFlag{
		Name:  "rand-env",
		Usage: "use a random environment map (unsupported)",
	},
	cli.BoolFlag{
		Name:  "primitives",
		Usage: "render the primitive scene set",
	},
	cli.BoolFlag{
		Name:  "primitives-v2",
		Usage: "render the v2 primitive scene set",
	},
	cli.BoolFlag{
		Name:  "thin",
		Usage: "render the thin primitive scene set",
	},
	cli.IntFlag{
		Name:  "num-views",
		Usage: "camera views per scene (default $RENDERFARM_NUM_VIEWS or 21)",
	},
	cli.IntFlag{
		Name:  "max-bounces",
		Usage: "max indirect bounces (default $RENDERFARM_MAX_BOUNCES or 8)",
	},
	cli.StringFlag{
		Name:  "photoreal-cmd",
		Usage: "photorealistic renderer command (default $RENDERFARM_PHOTOREAL_CMD)",
	},
	cli.StringFlag{
		Name:  "depth-cmd",
		Usage: "depth and label renderer command (default $RENDERFARM_DEPTH_CMD)",
	},
	cli.StringFlag{
		Name:  "env",
		Usage: "load environment variables from this file",
	},
}

// Build the run configuration from the environment and the command line.
// Flags take precedence over environment values.
func configFromContext(ctx *cli.Context) (*config.Config, error) {
	if err := config.LoadEnvFile(ctx.String("env")); err != nil {
		return nil, err
	}
	env, err := config.ParseEnv()
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Sub:             ctx.Int("sub"),
		Total:           ctx.Int("total"),
		TargetRoot:      ctx.String("target-root"),
		SamplesPerPixel: ctx.Int("spp"),
		Material:        ctx.String("material"),
		Denoise:         ctx.Bool("denoise"),
		TransProb:       ctx.Float64("trans-prob"),
		NumViews:        env.NumViews,
		MaxBounces:      env.MaxBounces,
		PhotorealCmd:    env.PhotorealCmd,
		DepthCmd:        env.DepthCmd,
		Scenario: config.Scenario{
			FixedAngle:   ctx.Bool("fixed-angle"),
			RandPattern:  ctx.Bool("rand-pattern"),
			RandLighting: ctx.Bool("rand-lighting"),
			RandTable:    ctx.Bool("rand-table"),
			RandEnv:      ctx.Bool("rand-env"),
			Primitives:   ctx.Bool("primitives"),
			PrimitivesV2: ctx.Bool("primitives-v2"),
			Thin:         ctx.Bool("thin"),
		},
	}

	if ctx.IsSet("num-views") {
		cfg.NumViews = ctx.Int("num-views")
	}
	if ctx.IsSet("max-bounces") {
		cfg.MaxBounces = ctx.Int("max-bounces")
	}
	if ctx.IsSet("photoreal-cmd") {
		cfg.PhotorealCmd = ctx.String("photoreal-cmd")
	}
	if ctx.IsSet("depth-cmd") {
		cfg.DepthCmd = ctx.String("depth-cmd")
	}

	return cfg, cfg.Validate()
}
