package gekkofx

import "errors"

var (
	ErrInvalidCount    = errors.New("particle count must be positive")
	ErrInvalidLifetime = errors.New("lifetime range must be positive")
	ErrInvalidOpacity  = errors.New("opacity must be within [0,1]")
	ErrInvalidSize     = errors.New("point size must be positive")

	ErrUnknownEffectKind   = errors.New("unknown effect kind")
	ErrEffectDisposed      = errors.New("effect has been disposed")
	ErrNoEffect            = errors.New("scene object hosts no particle effect")
	ErrTextureUnavailable  = errors.New("sprite texture unavailable")
	ErrUnknownPresetFormat = errors.New("unknown preset format")
)
