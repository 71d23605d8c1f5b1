package renderer

import "errors"

var (
	ErrBadConfiguration = errors.New("renderer: invalid render configuration")
	ErrSceneNotDefined  = errors.New("renderer: no scene defined")
	ErrNoFrames         = errors.New("renderer: no frames to render")
	ErrInterrupted      = errors.New("renderer: interrupted while rendering")
)
