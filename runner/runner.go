package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/achilleasa/renderfarm/config"
	"github.com/achilleasa/renderfarm/log"
	"github.com/achilleasa/renderfarm/renderer"
	"github.com/achilleasa/renderfarm/scene"
	"github.com/achilleasa/renderfarm/shard"
	"github.com/schollz/progressbar/v3"
)

type Config struct {
	// The shard to render and the scene set it is taken from.
	Shard shard.Spec
	Mode  scene.Mode

	// Output layout used for completion checks.
	Layout scene.Layout

	NumViews int

	// Settings keying the photorealistic completion markers.
	Params scene.RenderParams

	// Backend constructors, one per phase.
	Photoreal  renderer.Factory
	DepthLabel renderer.Factory

	Logger log.Logger

	// Destination for progress bars. Discarded if nil.
	Progress io.Writer
}

// The Runner renders every scene of a shard in two phases: photorealistic
// renders first, then depth and segmentation labels. Scenes whose
// completion markers already exist are skipped, so rerunning a shard
// resumes where a previous run stopped.
type Runner struct {
	cfg        Config
	assignment shard.Assignment
}

// Create a runner for the configured shard. The shard assignment is
// computed once here.
func New(cfg Config) (*Runner, error) {
	if cfg.NumViews < 1 {
		return nil, config.Errorf("num-views", "view count must be at least 1; got %d", cfg.NumViews)
	}
	if cfg.Photoreal == nil || cfg.DepthLabel == nil {
		return nil, fmt.Errorf("runner: %w", renderer.ErrBackendUnavailable)
	}
	if cfg.Progress == nil {
		cfg.Progress = io.Discard
	}

	assignment, err := shard.Assign(cfg.Shard, cfg.Mode)
	if err != nil {
		return nil, err
	}

	// The last shard absorbs the remainder so it can never legitimately be
	// empty; other shards may be when there are more shards than scenes.
	if len(assignment) == 0 && cfg.Shard.Index == cfg.Shard.Count {
		return nil, config.Errorf("sub", "last shard %d has no scenes assigned", cfg.Shard.Index)
	}

	return &Runner{cfg: cfg, assignment: assignment}, nil
}

// Assignment returns the scenes processed by this runner in order.
func (r *Runner) Assignment() shard.Assignment {
	return r.assignment
}

// Run both phases over the shard assignment. Backend failures abort the run.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	var report Report
	logger := r.cfg.Logger

	if err := r.cfg.Layout.Prepare(); err != nil {
		return report, err
	}

	first, last, err := r.assignment.Bounds()
	if err == shard.ErrEmptyAssignment {
		logger.Warningf("Shard %d/%d has no scenes assigned", r.cfg.Shard.Index, r.cfg.Shard.Count)
	} else {
		logger.Noticef("Generating %d scenes from %s to %s", len(r.assignment), first, last)
	}

	phases := []struct {
		kind    renderer.Kind
		factory renderer.Factory
		done    func(scene.ID) (bool, error)
	}{
		{renderer.Photoreal, r.cfg.Photoreal, r.renderDone},
		{renderer.DepthLabel, r.cfg.DepthLabel, r.depthDone},
	}

	for _, phase := range phases {
		rep, err := r.runPhase(ctx, phase.kind, phase.factory, phase.done)
		report.Phases = append(report.Phases, rep)
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func (r *Runner) renderDone(id scene.ID) (bool, error) {
	return r.cfg.Layout.RenderComplete(id, r.cfg.NumViews, r.cfg.Params)
}

func (r *Runner) depthDone(id scene.ID) (bool, error) {
	return r.cfg.Layout.DepthComplete(id, r.cfg.NumViews)
}

// Run a single phase with a backend that lives only for the duration of
// this call.
func (r *Runner) runPhase(ctx context.Context, kind renderer.Kind, factory renderer.Factory, done func(scene.ID) (bool, error)) (rep PhaseReport, err error) {
	rep.Kind = kind
	logger := r.cfg.Logger
	start := time.Now()
	defer func() { rep.Elapsed = time.Since(start) }()

	backend, err := factory()
	if err != nil {
		return rep, fmt.Errorf("runner: could not set up %s backend: %w", kind, err)
	}
	defer func() {
		rep.Stats = backend.Stats()
		backend.Close()
		logger.Debugf("Released %s backend", kind)
	}()
	logger.Debugf("Initialized %s backend", kind)

	bar := progressbar.NewOptions(len(r.assignment),
		progressbar.OptionSetWriter(r.cfg.Progress),
		progressbar.OptionSetDescription(kind.String()),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(len(r.assignment) > 0),
	)
	defer bar.Finish()

	req := renderer.Request{
		TargetRoot: r.cfg.Layout.DataDir(),
		NumViews:   r.cfg.NumViews,
	}
	for _, id := range r.assignment {
		complete, err := done(id)
		if err != nil {
			return rep, err
		}

		if complete {
			logger.Infof(skipMessage[kind], id)
			rep.Skipped++
			bar.Add(1)
			continue
		}

		logger.Infof(renderMessage[kind], id)
		req.Scene = id
		if err := backend.Render(ctx, req); err != nil {
			return rep, err
		}
		rep.Rendered++
		bar.Add(1)
	}

	return rep, nil
}

var skipMessage = map[renderer.Kind]string{
	renderer.Photoreal:  "Skip scene %s rendering",
	renderer.DepthLabel: "Skip scene %s gt depth and seg",
}

var renderMessage = map[renderer.Kind]string{
	renderer.Photoreal:  "Rendering scene %s",
	renderer.DepthLabel: "Generating scene %s gt depth and seg",
}
