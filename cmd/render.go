package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/achilleasa/renderfarm/config"
	"github.com/achilleasa/renderfarm/log"
	"github.com/achilleasa/renderfarm/renderer"
	"github.com/achilleasa/renderfarm/renderer/external"
	"github.com/achilleasa/renderfarm/runner"
	"github.com/achilleasa/renderfarm/shard"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Exit codes returned by the commands.
const (
	exitRenderFailure = 1
	exitConfigError   = 2
)

// Render every scene of a shard, then generate its depth and label outputs.
func RenderShard(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := configFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), exitConfigError)
	}

	runLog, err := openRunLog(cfg, time.Now())
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("could not open run log: %v", err), exitRenderFailure)
	}
	defer closeRunLog(runLog)

	runLogger := log.New(runLoggerName(cfg))
	runLogger.Noticef("Args: %+v", *cfg)

	r, err := newRunner(cfg, runLogger)
	if err != nil {
		return cli.NewExitError(err.Error(), exitConfigError)
	}

	report, err := r.Run(context.Background())
	displayRunReport(report)
	if err != nil {
		runLogger.Error(err)
		return cli.NewExitError(err.Error(), exitRenderFailure)
	}

	return nil
}

// Wire the external backends into a shard runner.
func newRunner(cfg *config.Config, runLogger log.Logger) (*runner.Runner, error) {
	opts := renderer.OptionsFromConfig(cfg)
	opts.Output = os.Stderr

	return runner.New(runner.Config{
		Shard:      shardSpec(cfg),
		Mode:       cfg.Mode(),
		Layout:     cfg.Layout(),
		NumViews:   cfg.NumViews,
		Params:     cfg.Params(),
		Photoreal:  external.Factory(renderer.Photoreal, cfg.PhotorealCmd, opts),
		DepthLabel: external.Factory(renderer.DepthLabel, cfg.DepthCmd, opts),
		Logger:     runLogger,
		Progress:   os.Stderr,
	})
}

func shardSpec(cfg *config.Config) shard.Spec {
	return shard.Spec{
		Index: cfg.Sub,
		Count: cfg.Total,
		Total: cfg.Mode().TotalScenes(),
	}
}

func displayRunReport(report runner.Report) {
	if len(report.Phases) == 0 {
		return
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Phase", "Rendered", "Skipped", "Backend time", "Elapsed"})

	var total time.Duration
	for _, phase := range report.Phases {
		table.Append([]string{
			phase.Kind.String(),
			fmt.Sprintf("%d", phase.Rendered),
			fmt.Sprintf("%d", phase.Skipped),
			phase.Stats.RenderTime.Round(time.Millisecond).String(),
			phase.Elapsed.Round(time.Millisecond).String(),
		})
		total += phase.Elapsed
	}
	table.SetFooter([]string{"", "", "", "TOTAL", total.Round(time.Millisecond).String()})

	table.Render()
	logger.Noticef("run statistics\n%s", buf.String())
}
