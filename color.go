package gekkofx

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB returns the color in linear [0,1] channels as written to the color buffer.
func (h HSL) RGB() (r, g, b float32) {
	c := colorful.Hsl(float64(h.Hue)*360, float64(h.Saturation), float64(h.Lightness)).Clamped()
	return float32(c.R), float32(c.G), float32(c.B)
}

func lerpHSL(a, b HSL, t float32) HSL {
	return HSL{
		Hue:        lerp(a.Hue, b.Hue, t),
		Saturation: lerp(a.Saturation, b.Saturation, t),
		Lightness:  lerp(a.Lightness, b.Lightness, t),
	}
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// particleColor applies the lifetime color rule. lifeRatio is the fraction of
// life remaining: 1 at birth, 0 at death.
func particleColor(cfg *EffectConfig, kind EffectKind, lifeRatio float32) (r, g, b float32) {
	if cfg.ColorRange.Enabled {
		return lerpHSL(cfg.ColorRange.Start, cfg.ColorRange.End, 1-lifeRatio).RGB()
	}
	if kind == EffectFountain {
		c := cfg.Color
		c.Lightness *= lifeRatio
		return c.RGB()
	}
	r, g, b = cfg.Color.RGB()
	return r * lifeRatio, g * lifeRatio, b * lifeRatio
}

// spawnColor is the color a particle carries before its first step.
func spawnColor(cfg *EffectConfig) (r, g, b float32) {
	if cfg.ColorRange.Enabled {
		return cfg.ColorRange.Start.RGB()
	}
	return cfg.Color.RGB()
}
