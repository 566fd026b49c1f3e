package renderer

import (
	"time"

	"github.com/achilleasa/renderfarm/scene"
)

type SceneStat struct {
	// The rendered scene.
	Scene scene.ID

	// Wall time spent rendering all of its views.
	RenderTime time.Duration
}

type Stats struct {
	// The backend that produced these stats.
	Backend string

	// Individual scene stats in render order.
	Scenes []SceneStat

	// Total render time across scenes.
	RenderTime time.Duration
}

// Record appends a scene stat and updates the total.
func (s *Stats) Record(id scene.ID, elapsed time.Duration) {
	s.Scenes = append(s.Scenes, SceneStat{Scene: id, RenderTime: elapsed})
	s.RenderTime += elapsed
}
