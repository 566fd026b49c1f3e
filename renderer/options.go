package renderer

import (
	"io"

	"github.com/achilleasa/renderfarm/config"
)

type Options struct {
	// Number of samples.
	SamplesPerPixel uint32

	// Number of indirect bounces.
	MaxBounces uint32

	// Run the denoiser on rendered frames.
	Denoise bool

	// Name of the object material set.
	Material string

	// Probability of assigning a transparent material to an object.
	TransProb float64

	// Scene generation flags.
	Scenario config.Scenario

	// Destination for backend output. Discarded if nil.
	Output io.Writer
}

// OptionsFromConfig returns the backend options for a run.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SamplesPerPixel: uint32(cfg.SamplesPerPixel),
		MaxBounces:      uint32(cfg.MaxBounces),
		Denoise:         cfg.Denoise,
		Material:        cfg.Material,
		TransProb:       cfg.TransProb,
		Scenario:        cfg.Scenario,
	}
}
