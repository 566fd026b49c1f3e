package scene

import (
	"fmt"
	"os"
	"path/filepath"
)

// Marker file written next to the last view once depth and segmentation
// labels have been generated for a scene.
const depthMarkerName = "depthR_colored.png"

// RenderParams are the render settings that key photorealistic outputs.
type RenderParams struct {
	SamplesPerPixel int
	Material        string
	Denoise         bool
}

// MarkerName returns the file name of the infrared output produced for a
// view with these settings.
func (p RenderParams) MarkerName() string {
	return fmt.Sprintf("%04d_irR_%s_den%s_half.png", p.SamplesPerPixel, p.Material, denoiseLabel(p.Denoise))
}

// The external renderer spells booleans with a leading capital.
func denoiseLabel(denoise bool) string {
	if denoise {
		return "True"
	}
	return "False"
}

// The Layout describes where rendered scenes live below an output root.
type Layout struct {
	Root string
}

// DataDir returns the directory holding the per-view output directories.
func (l Layout) DataDir() string {
	return filepath.Join(l.Root, "data")
}

// ViewDir returns the output directory for one view of a scene.
func (l Layout) ViewDir(id ID, view int) string {
	return filepath.Join(l.DataDir(), id.View(view))
}

// RenderMarker returns the completion marker of a photorealistic view.
func (l Layout) RenderMarker(id ID, view int, params RenderParams) string {
	return filepath.Join(l.ViewDir(id, view), params.MarkerName())
}

// DepthMarker returns the completion marker of a scene's depth and label
// outputs. Only the last view is checked.
func (l Layout) DepthMarker(id ID, numViews int) string {
	return filepath.Join(l.ViewDir(id, numViews-1), depthMarkerName)
}

// Prepare creates the data directory if it does not exist yet.
func (l Layout) Prepare() error {
	if err := os.MkdirAll(l.DataDir(), 0o755); err != nil {
		return fmt.Errorf("scene: could not create data dir: %w", err)
	}
	return nil
}

// RenderComplete reports whether every view of the scene has its
// photorealistic marker. Checking stops at the first missing view.
func (l Layout) RenderComplete(id ID, numViews int, params RenderParams) (bool, error) {
	for view := 0; view < numViews; view++ {
		ok, err := exists(l.RenderMarker(id, view, params))
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// DepthComplete reports whether the scene's depth marker exists.
func (l Layout) DepthComplete(id ID, numViews int) (bool, error) {
	return exists(l.DepthMarker(id, numViews))
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, fmt.Errorf("scene: could not check marker %s: %w", path, err)
	}
}
