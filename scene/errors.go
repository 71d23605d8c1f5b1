package scene

import "errors"

var (
	// The primitive set or the camera basis cannot produce a render.
	ErrInvalidScene = errors.New("scene: invalid or empty scene")

	// A texture's backing resource could not be resolved into usable data.
	ErrTextureLoad = errors.New("scene: could not load texture data")

	// An alias is already bound to another scene object.
	ErrAliasInUse = errors.New("scene: alias already in use")

	// An alias does not resolve to a scene object.
	ErrUnknownAlias = errors.New("scene: unknown alias")
)
