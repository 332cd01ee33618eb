package gekkofx

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// EffectKind selects the spawn region, the vertical velocity rule and the
// fade mode of an effect. Everything else comes from EffectConfig.
type EffectKind int

const (
	EffectFountain EffectKind = iota
	EffectFire
	EffectSnow
	EffectDust
)

var effectKindNames = [...]string{"fountain", "fire", "snow", "dust"}

func (k EffectKind) String() string {
	if k < 0 || int(k) >= len(effectKindNames) {
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
	return effectKindNames[k]
}

func ParseEffectKind(s string) (EffectKind, error) {
	for i, name := range effectKindNames {
		if strings.EqualFold(s, name) {
			return EffectKind(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownEffectKind)
}

// Ambient effects fill a region; emitter effects spawn at the origin.
func (k EffectKind) ambient() bool {
	return k == EffectSnow || k == EffectDust
}

type BlendingMode int

const (
	BlendAdditive BlendingMode = iota
	BlendNormal
	BlendMultiply
	BlendSubtractive
)

var blendingNames = [...]string{"Additive", "Normal", "Multiply", "Subtractive"}

func (b BlendingMode) String() string {
	if b < 0 || int(b) >= len(blendingNames) {
		return fmt.Sprintf("BlendingMode(%d)", int(b))
	}
	return blendingNames[b]
}

func (b BlendingMode) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BlendingMode) UnmarshalText(text []byte) error {
	for i, name := range blendingNames {
		if strings.EqualFold(string(text), name) {
			*b = BlendingMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown blending mode %q", text)
}

type Style int

const (
	StylePoint Style = iota
	StyleTextured
)

func (s Style) String() string {
	if s == StyleTextured {
		return "textured"
	}
	return "point"
}

func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "point", "":
		*s = StylePoint
	case "textured":
		*s = StyleTextured
	default:
		return fmt.Errorf("unknown style %q", text)
	}
	return nil
}

// HSL channels are all in [0,1].
type HSL struct {
	Hue        float32 `json:"hue" toml:"hue" yaml:"hue"`
	Saturation float32 `json:"saturation" toml:"saturation" yaml:"saturation"`
	Lightness  float32 `json:"lightness" toml:"lightness" yaml:"lightness"`
}

// ColorRange, when enabled, ramps each particle from Start at birth to End at death.
type ColorRange struct {
	Enabled bool `json:"enabled" toml:"enabled" yaml:"enabled"`
	Start   HSL  `json:"start" toml:"start" yaml:"start"`
	End     HSL  `json:"end" toml:"end" yaml:"end"`
}

// Range is an inclusive [Min,Max] interval in frames.
type Range struct {
	Min float32 `json:"min" toml:"min" yaml:"min"`
	Max float32 `json:"max" toml:"max" yaml:"max"`
}

const (
	defaultMaxSpeed    float32 = 5
	minLifetimeFrames  float32 = 1
	fallbackPointSize  float32 = 0.1
	defaultSpeedFactor float32 = 1
)

// EffectConfig is the live-editable parameter set of one particle population.
// Lifetime is the single canonical range; legacy preset fields are resolved
// into it when a preset is decoded.
type EffectConfig struct {
	Count         int
	Size          float32
	Opacity       float32
	Gravity       float32
	Turbulence    float32
	Spread        mgl32.Vec3
	InitialBoost  float32
	Lifetime      Range
	Color         HSL
	ColorRange    ColorRange
	BlendingMode  BlendingMode
	UseDepthWrite bool
	Style         Style
	SpeedFactor   float32

	// MaxSpeed bounds the per-frame velocity magnitude built up by turbulence.
	MaxSpeed          float32
	UnclampedVelocity bool
}

// DefaultConfig returns the stock parameters for kind.
func DefaultConfig(kind EffectKind) EffectConfig {
	switch kind {
	case EffectFire:
		return EffectConfig{
			Count:        500,
			Size:         0.3,
			Opacity:      0.9,
			Gravity:      -0.001,
			Turbulence:   0.01,
			Spread:       mgl32.Vec3{0.03, 0.02, 0.03},
			InitialBoost: 0.03,
			Lifetime:     Range{Min: 30, Max: 60},
			Color:        HSL{Hue: 0.08, Saturation: 1, Lightness: 0.5},
			ColorRange: ColorRange{
				Enabled: true,
				Start:   HSL{Hue: 0.12, Saturation: 1, Lightness: 0.6},
				End:     HSL{Hue: 0, Saturation: 1, Lightness: 0.3},
			},
			BlendingMode: BlendAdditive,
			Style:        StyleTextured,
			SpeedFactor:  0.15,
			MaxSpeed:     defaultMaxSpeed,
		}
	case EffectSnow:
		return EffectConfig{
			Count:        2000,
			Size:         0.15,
			Opacity:      0.9,
			Gravity:      0.0005,
			Turbulence:   0.002,
			Spread:       mgl32.Vec3{0.02, 0.01, 0.02},
			InitialBoost: -0.02,
			Lifetime:     Range{Min: 200, Max: 400},
			Color:        HSL{Hue: 0, Saturation: 0, Lightness: 1},
			ColorRange: ColorRange{
				Start: HSL{Hue: 0.6, Saturation: 0.2, Lightness: 1},
				End:   HSL{Hue: 0.6, Saturation: 0.2, Lightness: 0.8},
			},
			BlendingMode:  BlendNormal,
			UseDepthWrite: false,
			Style:         StyleTextured,
			SpeedFactor:   0.35,
			MaxSpeed:      defaultMaxSpeed,
		}
	case EffectDust:
		return EffectConfig{
			Count:        1500,
			Size:         0.05,
			Opacity:      0.5,
			Gravity:      0,
			Turbulence:   0.01,
			Spread:       mgl32.Vec3{0.01, 0.01, 0.01},
			InitialBoost: 0,
			Lifetime:     Range{Min: 300, Max: 600},
			Color:        HSL{Hue: 0.1, Saturation: 0.3, Lightness: 0.7},
			ColorRange: ColorRange{
				Start: HSL{Hue: 0.1, Saturation: 0.3, Lightness: 0.8},
				End:   HSL{Hue: 0.1, Saturation: 0.2, Lightness: 0.4},
			},
			BlendingMode: BlendNormal,
			Style:        StylePoint,
			SpeedFactor:  0.02,
			MaxSpeed:     defaultMaxSpeed,
		}
	default:
		return EffectConfig{
			Count:        1000,
			Size:         0.1,
			Opacity:      0.8,
			Gravity:      0.003,
			Turbulence:   0,
			Spread:       mgl32.Vec3{0.05, 0.05, 0.05},
			InitialBoost: 0.05,
			Lifetime:     Range{Min: 60, Max: 120},
			Color:        HSL{Hue: 0.55, Saturation: 0.8, Lightness: 0.6},
			ColorRange: ColorRange{
				Start: HSL{Hue: 0.55, Saturation: 0.8, Lightness: 0.7},
				End:   HSL{Hue: 0.65, Saturation: 0.8, Lightness: 0.3},
			},
			BlendingMode: BlendAdditive,
			Style:        StylePoint,
			SpeedFactor:  0.5,
			MaxSpeed:     defaultMaxSpeed,
		}
	}
}

// Validate reports the first configuration error, if any. Callers that
// prefer degrading over rejecting use Normalize instead.
func (c *EffectConfig) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("count %d: %w", c.Count, ErrInvalidCount)
	}
	if c.Size <= 0 {
		return fmt.Errorf("size %g: %w", c.Size, ErrInvalidSize)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity %g: %w", c.Opacity, ErrInvalidOpacity)
	}
	if c.Lifetime.Min <= 0 || c.Lifetime.Max <= 0 {
		return fmt.Errorf("lifetime [%g,%g]: %w", c.Lifetime.Min, c.Lifetime.Max, ErrInvalidLifetime)
	}
	return nil
}

// Normalize repairs malformed values in place so the frame loop never has to.
func (c *EffectConfig) Normalize() {
	if c.Count < 0 {
		c.Count = 0
	}
	if c.Size <= 0 {
		c.Size = fallbackPointSize
	}
	c.Opacity = clamp01(c.Opacity)
	if c.Turbulence < 0 {
		c.Turbulence = 0
	}
	if c.SpeedFactor <= 0 {
		c.SpeedFactor = defaultSpeedFactor
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = defaultMaxSpeed
	}
	for i := range c.Spread {
		if c.Spread[i] < 0 {
			c.Spread[i] = -c.Spread[i]
		}
	}
	c.Lifetime = c.Lifetime.normalized()
	c.Color = c.Color.clamped()
	c.ColorRange.Start = c.ColorRange.Start.clamped()
	c.ColorRange.End = c.ColorRange.End.clamped()
}

func (r Range) normalized() Range {
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if r.Min < minLifetimeFrames {
		r.Min = minLifetimeFrames
	}
	if r.Max < r.Min {
		r.Max = r.Min
	}
	return r
}

func (h HSL) clamped() HSL {
	return HSL{
		Hue:        clamp01(h.Hue),
		Saturation: clamp01(h.Saturation),
		Lightness:  clamp01(h.Lightness),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
