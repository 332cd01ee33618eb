package gekkofx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ConfigUpdate is a partial EffectConfig. Nil fields are left unchanged;
// struct fields such as ColorRange replace the whole sub-object.
type ConfigUpdate struct {
	Count             *int
	Size              *float32
	Opacity           *float32
	Gravity           *float32
	Turbulence        *float32
	Spread            *mgl32.Vec3
	InitialBoost      *float32
	Lifetime          *Range
	Color             *HSL
	ColorRange        *ColorRange
	BlendingMode      *BlendingMode
	UseDepthWrite     *bool
	Style             *Style
	SpeedFactor       *float32
	MaxSpeed          *float32
	UnclampedVelocity *bool
}

// FullUpdate sets every field of the update from cfg. Reloaded presets are
// applied this way.
func FullUpdate(cfg EffectConfig) ConfigUpdate {
	return ConfigUpdate{
		Count:             &cfg.Count,
		Size:              &cfg.Size,
		Opacity:           &cfg.Opacity,
		Gravity:           &cfg.Gravity,
		Turbulence:        &cfg.Turbulence,
		Spread:            &cfg.Spread,
		InitialBoost:      &cfg.InitialBoost,
		Lifetime:          &cfg.Lifetime,
		Color:             &cfg.Color,
		ColorRange:        &cfg.ColorRange,
		BlendingMode:      &cfg.BlendingMode,
		UseDepthWrite:     &cfg.UseDepthWrite,
		Style:             &cfg.Style,
		SpeedFactor:       &cfg.SpeedFactor,
		MaxSpeed:          &cfg.MaxSpeed,
		UnclampedVelocity: &cfg.UnclampedVelocity,
	}
}

func (u ConfigUpdate) mergeInto(cfg *EffectConfig) {
	if u.Count != nil {
		cfg.Count = *u.Count
	}
	if u.Size != nil {
		cfg.Size = *u.Size
	}
	if u.Opacity != nil {
		cfg.Opacity = *u.Opacity
	}
	if u.Gravity != nil {
		cfg.Gravity = *u.Gravity
	}
	if u.Turbulence != nil {
		cfg.Turbulence = *u.Turbulence
	}
	if u.Spread != nil {
		cfg.Spread = *u.Spread
	}
	if u.InitialBoost != nil {
		cfg.InitialBoost = *u.InitialBoost
	}
	if u.Lifetime != nil {
		cfg.Lifetime = *u.Lifetime
	}
	if u.Color != nil {
		cfg.Color = *u.Color
	}
	if u.ColorRange != nil {
		cfg.ColorRange = *u.ColorRange
	}
	if u.BlendingMode != nil {
		cfg.BlendingMode = *u.BlendingMode
	}
	if u.UseDepthWrite != nil {
		cfg.UseDepthWrite = *u.UseDepthWrite
	}
	if u.Style != nil {
		cfg.Style = *u.Style
	}
	if u.SpeedFactor != nil {
		cfg.SpeedFactor = *u.SpeedFactor
	}
	if u.MaxSpeed != nil {
		cfg.MaxSpeed = *u.MaxSpeed
	}
	if u.UnclampedVelocity != nil {
		cfg.UnclampedVelocity = *u.UnclampedVelocity
	}
}

// ApplyConfigUpdate merges u into the live config. A new count reallocates
// the population, a new style rebuilds the material, anything else is
// patched onto the existing material. Applying the same update twice leaves
// the effect as the first application did.
func (e *Effect) ApplyConfigUpdate(u ConfigUpdate) error {
	if e == nil {
		return ErrNoEffect
	}
	if e.disposed {
		return fmt.Errorf("effect %s: %w", e.ID, ErrEffectDisposed)
	}
	if u.Count != nil && *u.Count <= 0 {
		return fmt.Errorf("effect %s: count %d: %w", e.ID, *u.Count, ErrInvalidCount)
	}

	prevCount, prevStyle := e.config.Count, e.config.Style
	next := *e.config
	u.mergeInto(&next)
	next.Normalize()
	*e.config = next

	if next.Count != prevCount {
		e.reallocate()
	}
	if next.Style != prevStyle {
		e.replaceMaterial()
	} else {
		e.points.Material.apply(e.config)
	}
	return nil
}

// reallocate builds the new population completely before swapping it in,
// so the renderer never sees a half-initialized geometry.
func (e *Effect) reallocate() {
	buf := Initialize(e.config, e.Kind, e.rng)
	geometry := newPointGeometry(buf)

	old := e.points.Geometry
	e.buffers = buf
	e.points.Geometry = geometry
	old.Dispose()
	e.logger.Debugf("effect %s reallocated for %d particles", e.ID, e.config.Count)
}

func (e *Effect) replaceMaterial() {
	material := e.buildMaterial()
	old := e.points.Material
	e.points.Material = material
	old.Dispose()
	e.logger.Debugf("effect %s material replaced, style %v", e.ID, material.Style)
}

// ApplyConfigUpdate is the editor entry point: it patches the effect hosted
// by obj.
func ApplyConfigUpdate(obj *SceneObject, u ConfigUpdate) error {
	if obj == nil || obj.Effect == nil {
		return ErrNoEffect
	}
	return obj.Effect.ApplyConfigUpdate(u)
}
