// Package external implements renderer backends that delegate each scene to
// an external program.
//
// A backend is configured with a command line such as
//
//	python3 data_rendering/render_scene.py --repo-root /src
//
// and appends the per-scene flags to it before every invocation. The program
// is expected to write all views of the scene below the target root and exit
// with a non-zero status on failure.
package external

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"time"

	"github.com/achilleasa/renderfarm/renderer"
	"github.com/mattn/go-shellwords"
)

type backend struct {
	kind renderer.Kind
	argv []string
	opts renderer.Options

	stats  renderer.Stats
	closed bool
}

// NewPhotoreal returns a backend producing photorealistic renders.
func NewPhotoreal(command string, opts renderer.Options) (renderer.Renderer, error) {
	return Factory(renderer.Photoreal, command, opts)()
}

// NewDepthLabel returns a backend producing ground-truth depth and
// segmentation labels.
func NewDepthLabel(command string, opts renderer.Options) (renderer.Renderer, error) {
	return Factory(renderer.DepthLabel, command, opts)()
}

// Factory returns a renderer.Factory that constructs a backend of the given
// kind on every call.
func Factory(kind renderer.Kind, command string, opts renderer.Options) renderer.Factory {
	return func() (renderer.Renderer, error) {
		b, err := newBackend(kind, command, opts)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

func newBackend(kind renderer.Kind, command string, opts renderer.Options) (*backend, error) {
	argv, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("renderer: could not parse %s command %q: %w", kind, command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w for %s backend", renderer.ErrNoCommand, kind)
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", renderer.ErrBackendUnavailable, kind, err)
	}
	argv[0] = path

	if opts.Output == nil {
		opts.Output = io.Discard
	}

	return &backend{
		kind:  kind,
		argv:  argv,
		opts:  opts,
		stats: renderer.Stats{Backend: kind.String()},
	}, nil
}

// Render all views of a scene by running the backend command once.
func (b *backend) Render(ctx context.Context, req renderer.Request) error {
	if b.closed {
		return renderer.ErrClosed
	}

	args := append(append([]string{}, b.argv[1:]...), b.args(req)...)
	cmd := exec.CommandContext(ctx, b.argv[0], args...)
	cmd.Stdout = b.opts.Output
	cmd.Stderr = b.opts.Output

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("renderer: %s backend failed on scene %s: %w", b.kind, req.Scene, err)
	}
	b.stats.Record(req.Scene, time.Since(start))

	return nil
}

func (b *backend) Close() {
	b.closed = true
}

func (b *backend) Stats() renderer.Stats {
	return b.stats
}

// A boolean command line switch, emitted only when set.
type switchFlag struct {
	set  bool
	name string
}

// Build the per-scene arguments appended to the backend command.
func (b *backend) args(req renderer.Request) []string {
	opts := b.opts
	args := []string{
		"--scene-id", string(req.Scene),
		"--target-root", req.TargetRoot,
		"--spp", strconv.FormatUint(uint64(opts.SamplesPerPixel), 10),
		"--num-views", strconv.Itoa(req.NumViews),
	}

	sc := opts.Scenario
	flags := []switchFlag{
		{sc.FixedAngle, "--fixed-angle"},
		{sc.RandPattern, "--rand-pattern"},
		{sc.Primitives, "--primitives"},
		{sc.PrimitivesV2, "--primitives-v2"},
		{sc.Thin, "--thin"},
	}

	if b.kind == renderer.Photoreal {
		args = append(args,
			"--material", opts.Material,
			"--max-bounces", strconv.FormatUint(uint64(opts.MaxBounces), 10),
			"--trans-prob", strconv.FormatFloat(opts.TransProb, 'g', -1, 64),
		)
		if opts.Denoise {
			args = append(args, "--denoise")
		}
		flags = append(flags,
			switchFlag{sc.RandLighting, "--rand-lighting"},
			switchFlag{sc.RandTable, "--rand-table"},
			switchFlag{sc.RandEnv, "--rand-env"},
		)
	}

	for _, flag := range flags {
		if flag.set {
			args = append(args, flag.name)
		}
	}
	return args
}
