package gekkofx

import (
	"fmt"
)

// Effect is one running particle population. It owns its config, its
// buffers and its renderable; nothing is shared with other effects except
// the sprite texture cached by the asset server.
type Effect struct {
	ID   AssetId
	Kind EffectKind

	config  *EffectConfig
	buffers *ParticleBuffers
	points  *Points

	rng        Rand
	assets     *AssetServer
	logger     Logger
	spriteSize int
	frameScale func() float32

	frames   uint64
	respawns uint64
	disposed bool
}

type EffectOption func(*effectOptions)

type effectOptions struct {
	config     *EffectConfig
	rng        Rand
	seed       int64
	assets     *AssetServer
	logger     Logger
	spriteSize int
	frameScale func() float32
}

// WithConfig replaces the kind defaults. The config is copied.
func WithConfig(cfg EffectConfig) EffectOption {
	return func(o *effectOptions) { o.config = &cfg }
}

func WithRand(rng Rand) EffectOption {
	return func(o *effectOptions) { o.rng = rng }
}

func WithSeed(seed int64) EffectOption {
	return func(o *effectOptions) { o.seed = seed }
}

// WithAssets shares a sprite texture cache between effects.
func WithAssets(assets *AssetServer) EffectOption {
	return func(o *effectOptions) { o.assets = assets }
}

func WithLogger(logger Logger) EffectOption {
	return func(o *effectOptions) { o.logger = logger }
}

func WithSpriteSize(size int) EffectOption {
	return func(o *effectOptions) { o.spriteSize = size }
}

// WithFrameScale makes Update advance by scale() frames instead of one.
func WithFrameScale(scale func() float32) EffectOption {
	return func(o *effectOptions) { o.frameScale = scale }
}

func NewFountain(opts ...EffectOption) (*Effect, error) { return NewEffect(EffectFountain, opts...) }
func NewFire(opts ...EffectOption) (*Effect, error)     { return NewEffect(EffectFire, opts...) }
func NewSnow(opts ...EffectOption) (*Effect, error)     { return NewEffect(EffectSnow, opts...) }
func NewDust(opts ...EffectOption) (*Effect, error)     { return NewEffect(EffectDust, opts...) }

// NewEffect builds a populated effect of the given kind.
func NewEffect(kind EffectKind, opts ...EffectOption) (*Effect, error) {
	if kind < EffectFountain || kind > EffectDust {
		return nil, fmt.Errorf("%v: %w", kind, ErrUnknownEffectKind)
	}

	o := effectOptions{spriteSize: DefaultSpriteSize}
	for _, opt := range opts {
		opt(&o)
	}

	var cfg EffectConfig
	if o.config != nil {
		cfg = *o.config
	} else {
		cfg = DefaultConfig(kind)
	}
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("new %v effect: count %d: %w", kind, cfg.Count, ErrInvalidCount)
	}
	cfg.Normalize()

	if o.rng == nil {
		o.rng = NewRand(o.seed)
	}
	if o.assets == nil {
		o.assets = NewAssetServer()
	}
	if o.logger == nil {
		o.logger = NewNopLogger()
	}

	e := &Effect{
		ID:         makeAssetId(),
		Kind:       kind,
		config:     &cfg,
		rng:        o.rng,
		assets:     o.assets,
		logger:     o.logger,
		spriteSize: o.spriteSize,
		frameScale: o.frameScale,
	}
	e.buffers = Initialize(e.config, kind, e.rng)
	e.points = &Points{
		Geometry: newPointGeometry(e.buffers),
		Material: e.buildMaterial(),
	}
	e.logger.Debugf("created %v effect %s with %d particles", kind, e.ID, cfg.Count)
	return e, nil
}

// buildMaterial creates a material for the current style. A textured style
// whose sprite cannot be built degrades to plain points.
func (e *Effect) buildMaterial() *PointMaterial {
	if e.config.Style != StyleTextured {
		return newPointMaterial(e.config, nil)
	}
	sprite, err := e.assets.SpriteTexture(e.spriteSize)
	if err != nil {
		e.logger.Warnf("effect %s: textured style unavailable, using points: %v", e.ID, err)
		return newPointMaterial(e.config, nil)
	}
	return newPointMaterial(e.config, sprite)
}

// Config is the live config. It is the object stored as the host's
// effectConfig metadata; edits should go through ApplyConfigUpdate.
func (e *Effect) Config() *EffectConfig { return e.config }

func (e *Effect) Buffers() *ParticleBuffers { return e.buffers }

func (e *Effect) Points() *Points { return e.points }

func (e *Effect) Frames() uint64 { return e.frames }

func (e *Effect) Disposed() bool { return e.disposed }

// Update is the per-frame callback: one integration step, then both
// attributes are flagged for upload.
func (e *Effect) Update() {
	if e == nil || e.disposed {
		return
	}
	frames := float32(1)
	if e.frameScale != nil {
		frames = e.frameScale()
	}
	n := Advance(e.config, e.Kind, e.buffers, e.rng, frames)
	e.respawns += uint64(n)
	e.frames++

	g := e.points.Geometry
	g.Position.MarkDirty()
	g.Color.MarkDirty()
}

// Dispose releases the geometry and the material. Hosts detach the frame
// callback before calling it.
func (e *Effect) Dispose() {
	if e == nil || e.disposed {
		return
	}
	e.disposed = true
	e.points.Geometry.Dispose()
	e.points.Material.Dispose()
	e.buffers = nil
	e.logger.Debugf("disposed %v effect %s", e.Kind, e.ID)
}
