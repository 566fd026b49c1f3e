package renderer

import (
	"context"

	"github.com/achilleasa/renderfarm/scene"
)

// The Kind of outputs a renderer backend produces.
type Kind uint8

const (
	// Photorealistic infrared/color renders, one image set per view.
	Photoreal Kind = iota

	// Ground-truth depth and segmentation labels.
	DepthLabel
)

func (k Kind) String() string {
	switch k {
	case Photoreal:
		return "photoreal"
	case DepthLabel:
		return "depth-label"
	default:
		return "unknown"
	}
}

// A Request asks a backend to produce every view of one scene.
type Request struct {
	Scene scene.ID

	// Directory receiving the per-view output directories.
	TargetRoot string

	NumViews int
}

type Renderer interface {
	// Render all views of a scene.
	Render(ctx context.Context, req Request) error

	// Shutdown renderer and release any held resources.
	Close()

	// Get render statistics.
	Stats() Stats
}

// A Factory constructs a renderer backend. Each call returns a fresh
// backend owned by the caller.
type Factory func() (Renderer, error)
