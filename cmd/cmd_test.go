package cmd

import (
	"bytes"
	"flag"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/achilleasa/renderfarm/config"
	"github.com/achilleasa/renderfarm/scene"
	"github.com/urfave/cli"
)

func testApp(out *bytes.Buffer) *cli.App {
	app := cli.NewApp()
	app.Name = "renderfarm"
	app.Writer = out
	app.Flags = []cli.Flag{cli.BoolFlag{Name: "v"}, cli.BoolFlag{Name: "vv"}}
	app.Commands = []cli.Command{
		{Name: "render", Flags: ShardFlags, Action: RenderShard},
		{Name: "plan", Flags: ShardFlags, Action: PlanShard},
	}
	return app
}

func contextFor(t *testing.T, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range ShardFlags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestRunLogName(t *testing.T) {
	started := time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)
	if got, exp := runLogName(3, 12, started), "log.render.sub03.tot12.24-03-07_09-05-03.txt"; got != exp {
		t.Fatalf("expected log name %s; got %s", exp, got)
	}

	cfg := &config.Config{TargetRoot: "/data/renders/tro_v1/"}
	if got, exp := runLoggerName(cfg), "render_tro_v1"; got != exp {
		t.Fatalf("expected logger name %s; got %s", exp, got)
	}
}

func TestConfigFromContext(t *testing.T) {
	ctx := contextFor(t,
		"--sub", "2", "--total", "3", "--target-root", "/out", "--spp", "128",
		"--material", "tless", "--denoise", "--fixed-angle", "--thin",
		"--num-views", "5", "--photoreal-cmd", "python3 render.py",
	)

	cfg, err := configFromContext(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sub != 2 || cfg.Total != 3 || cfg.SamplesPerPixel != 128 || !cfg.Denoise {
		t.Fatalf("unexpected shard settings: %+v", cfg)
	}
	if cfg.NumViews != 5 {
		t.Fatalf("expected --num-views to override the environment; got %d", cfg.NumViews)
	}
	if cfg.MaxBounces != 8 {
		t.Fatalf("expected default max bounces; got %d", cfg.MaxBounces)
	}
	if cfg.PhotorealCmd != "python3 render.py" {
		t.Fatalf("expected --photoreal-cmd to override the environment; got %q", cfg.PhotorealCmd)
	}
	if cfg.Mode() != scene.Primitive {
		t.Fatalf("expected --thin to select primitive mode; got %s", cfg.Mode())
	}
	if spec := shardSpec(cfg); spec.Total != scene.PrimitiveSceneCount {
		t.Fatalf("expected primitive catalog size; got %d", spec.Total)
	}
}

func TestConfigFromContextRejectsRandomization(t *testing.T) {
	ctx := contextFor(t,
		"--sub", "1", "--total", "1", "--target-root", "/out", "--spp", "1",
		"--material", "tless", "--rand-lighting",
	)

	_, err := configFromContext(ctx)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	for _, field := range []string{"fixed-angle", "rand-lighting"} {
		if !strings.Contains(err.Error(), "invalid "+field) {
			t.Fatalf("expected a violation for %s; got %v", field, err)
		}
	}
}

func TestPlanCommand(t *testing.T) {
	root := t.TempDir()
	layout := scene.Layout{Root: root}
	params := scene.RenderParams{SamplesPerPixel: 64, Material: "tless"}
	for view := 0; view < 2; view++ {
		path := layout.RenderMarker("0-0", view, params)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	err := testApp(&out).Run([]string{"renderfarm", "plan",
		"--sub", "1", "--total", "500", "--target-root", root, "--spp", "64",
		"--material", "tless", "--fixed-angle", "--num-views", "2",
	})
	if err != nil {
		t.Fatal(err)
	}

	table := out.String()
	for _, exp := range []string{"0-0", "1-0", "0-1", "1-1", "done", "pending"} {
		if !strings.Contains(table, exp) {
			t.Fatalf("expected plan to contain %q; got:\n%s", exp, table)
		}
	}
	if strings.Contains(table, "0-2") {
		t.Fatalf("expected plan to only list shard 1 scenes; got:\n%s", table)
	}
}

func TestRenderCommand(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skipf("true not available: %v", err)
	}

	root := t.TempDir()
	var out bytes.Buffer
	err := testApp(&out).Run([]string{"renderfarm", "render",
		"--sub", "1000", "--total", "1000", "--target-root", root, "--spp", "8",
		"--material", "tless", "--fixed-angle", "--num-views", "3",
		"--photoreal-cmd", "true", "--depth-cmd", "true",
	})
	if err != nil {
		t.Fatal(err)
	}

	if info, err := os.Stat(filepath.Join(root, "data")); err != nil || !info.IsDir() {
		t.Fatalf("expected data dir to be created; got %v", err)
	}
	logs, err := filepath.Glob(filepath.Join(root, "log.render.sub1000.tot1000.*.txt"))
	if err != nil || len(logs) != 1 {
		t.Fatalf("expected a single run log; got %v, %v", logs, err)
	}
	payload, err := os.ReadFile(logs[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(payload), "Generating 2 scenes from 0-999 to 1-999") {
		t.Fatalf("expected run log to describe the shard; got:\n%s", payload)
	}
}
