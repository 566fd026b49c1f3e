package renderer

import "errors"

var (
	ErrClosed             = errors.New("renderer: backend closed")
	ErrBackendUnavailable = errors.New("renderer: backend unavailable")
	ErrNoCommand          = errors.New("renderer: no backend command configured")
)
