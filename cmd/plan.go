package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/achilleasa/renderfarm/config"
	"github.com/achilleasa/renderfarm/scene"
	"github.com/achilleasa/renderfarm/shard"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Scene completion as seen by the resume checks.
type sceneStatus struct {
	ID        scene.ID
	Photoreal bool
	Depth     bool
}

// Print the scenes assigned to a shard and their completion state without
// rendering anything.
func PlanShard(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := configFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), exitConfigError)
	}

	ids, err := shard.Assign(shardSpec(cfg), cfg.Mode())
	if err != nil {
		return cli.NewExitError(err.Error(), exitConfigError)
	}

	statuses, err := planStatus(cfg, ids)
	if err != nil {
		return cli.NewExitError(err.Error(), exitRenderFailure)
	}

	first, last, err := ids.Bounds()
	if err != nil {
		logger.Warningf("shard %d/%d has no scenes assigned", cfg.Sub, cfg.Total)
		return nil
	}

	var pendingRender, pendingDepth int
	for _, st := range statuses {
		if !st.Photoreal {
			pendingRender++
		}
		if !st.Depth {
			pendingDepth++
		}
	}
	logger.Noticef("shard %d/%d (%s): %d scenes from %s to %s; %d pending render, %d pending depth",
		cfg.Sub, cfg.Total, cfg.Mode(), len(ids), first, last, pendingRender, pendingDepth)

	writePlan(ctx.App.Writer, statuses)
	return nil
}

func planStatus(cfg *config.Config, ids shard.Assignment) ([]sceneStatus, error) {
	layout := cfg.Layout()
	params := cfg.Params()

	statuses := make([]sceneStatus, 0, len(ids))
	for _, id := range ids {
		rendered, err := layout.RenderComplete(id, cfg.NumViews, params)
		if err != nil {
			return nil, err
		}
		depth, err := layout.DepthComplete(id, cfg.NumViews)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, sceneStatus{ID: id, Photoreal: rendered, Depth: depth})
	}
	return statuses, nil
}

func writePlan(w io.Writer, statuses []sceneStatus) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Photoreal", "Depth/label"})
	for _, st := range statuses {
		table.Append([]string{string(st.ID), doneLabel(st.Photoreal), doneLabel(st.Depth)})
	}
	table.Render()

	fmt.Fprint(w, buf.String())
}

func doneLabel(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
