package config

import (
	"errors"
	"fmt"

	"github.com/achilleasa/renderfarm/scene"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds the settings that are read from the process environment.
type Env struct {
	PhotorealCmd string `env:"RENDERFARM_PHOTOREAL_CMD" envDefault:"render-scene"`
	DepthCmd     string `env:"RENDERFARM_DEPTH_CMD" envDefault:"render-gt-depth-label"`
	NumViews     int    `env:"RENDERFARM_NUM_VIEWS" envDefault:"21"`
	MaxBounces   int    `env:"RENDERFARM_MAX_BOUNCES" envDefault:"8"`
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment. An empty path is a no-op.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: could not load env file '%s': %w", path, err)
	}
	return nil
}

// ParseEnv reads the environment backed settings.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Scenario flags forwarded to the external renderers. Only fixed camera
// angles without any randomization are supported by this driver.
type Scenario struct {
	FixedAngle   bool
	RandPattern  bool
	RandLighting bool
	RandTable    bool
	RandEnv      bool
	Primitives   bool
	PrimitivesV2 bool
	Thin         bool
}

// Mode returns the scene set selected by the scenario flags.
func (s Scenario) Mode() scene.Mode {
	if s.Primitives || s.PrimitivesV2 || s.Thin {
		return scene.Primitive
	}
	return scene.Paired
}

// Config describes a single shard run.
type Config struct {
	// 1-based shard index and shard count.
	Sub   int
	Total int

	// Output root; scenes are written below TargetRoot/data.
	TargetRoot string

	SamplesPerPixel int
	Material        string
	Denoise         bool
	TransProb       float64

	NumViews   int
	MaxBounces int

	// Command lines of the external backends.
	PhotorealCmd string
	DepthCmd     string

	Scenario Scenario
}

// Mode returns the scene set this run renders.
func (c *Config) Mode() scene.Mode {
	return c.Scenario.Mode()
}

// Params returns the settings that key photorealistic completion markers.
func (c *Config) Params() scene.RenderParams {
	return scene.RenderParams{
		SamplesPerPixel: c.SamplesPerPixel,
		Material:        c.Material,
		Denoise:         c.Denoise,
	}
}

// Layout returns the output layout below the target root.
func (c *Config) Layout() scene.Layout {
	return scene.Layout{Root: c.TargetRoot}
}

// Validate checks every constraint and reports all violations. The returned
// error wraps one *Error per violation.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, field, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, Errorf(field, format, args...))
		}
	}

	check(c.Total >= 1, "total", "shard count must be at least 1; got %d", c.Total)
	check(c.Sub >= 1 && c.Sub <= c.Total, "sub", "shard index must be in [1, %d]; got %d", c.Total, c.Sub)
	check(c.TargetRoot != "", "target-root", "output root is required")
	check(c.SamplesPerPixel >= 1, "spp", "samples per pixel must be at least 1; got %d", c.SamplesPerPixel)
	check(c.Material != "", "material", "material name is required")
	check(c.TransProb >= 0 && c.TransProb <= 1, "trans-prob", "probability must be in [0, 1]; got %g", c.TransProb)
	check(c.NumViews >= 1, "num-views", "view count must be at least 1; got %d", c.NumViews)
	check(c.MaxBounces >= 1, "max-bounces", "bounce count must be at least 1; got %d", c.MaxBounces)
	check(c.PhotorealCmd != "", "photoreal-cmd", "photorealistic renderer command is required")
	check(c.DepthCmd != "", "depth-cmd", "depth label renderer command is required")

	sc := c.Scenario
	check(sc.FixedAngle, "fixed-angle", "only fixed camera angles are supported")
	check(!sc.RandPattern, "rand-pattern", "pattern randomization is not supported")
	check(!sc.RandLighting, "rand-lighting", "lighting randomization is not supported")
	check(!sc.RandTable, "rand-table", "table material randomization is not supported")
	check(!sc.RandEnv, "rand-env", "environment map randomization is not supported")

	var primitiveSets int
	for _, set := range []bool{sc.Primitives, sc.PrimitivesV2, sc.Thin} {
		if set {
			primitiveSets++
		}
	}
	check(primitiveSets <= 1, "primitives", "at most one of primitives, primitives-v2 and thin may be set")

	return errors.Join(errs...)
}
