package runner

import (
	"time"

	"github.com/achilleasa/renderfarm/renderer"
)

type PhaseReport struct {
	// The backend kind used by this phase.
	Kind renderer.Kind

	// Number of scenes handed to the backend and number of scenes whose
	// outputs already existed.
	Rendered int
	Skipped  int

	// Wall time for the phase, including backend setup and teardown.
	Elapsed time.Duration

	// Backend statistics collected before the backend was released.
	Stats renderer.Stats
}

type Report struct {
	// Phase reports in execution order. A failed run only reports the
	// phases that were started.
	Phases []PhaseReport
}

// Rendered returns the number of scenes rendered across all phases.
func (r Report) Rendered() int {
	total := 0
	for _, phase := range r.Phases {
		total += phase.Rendered
	}
	return total
}
