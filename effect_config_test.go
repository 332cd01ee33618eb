package gekkofx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	for _, kind := range []EffectKind{EffectFountain, EffectFire, EffectSnow, EffectDust} {
		cfg := DefaultConfig(kind)
		assert.NoError(t, cfg.Validate(), kind.String())
		assert.Equal(t, defaultMaxSpeed, cfg.MaxSpeed, kind.String())
		assert.False(t, cfg.UnclampedVelocity, kind.String())
	}
}

func TestDefaultConfig_KindTraits(t *testing.T) {
	assert.True(t, DefaultConfig(EffectFire).ColorRange.Enabled)
	assert.Equal(t, StyleTextured, DefaultConfig(EffectSnow).Style)
	assert.Less(t, DefaultConfig(EffectSnow).InitialBoost, float32(0))
	assert.Equal(t, StylePoint, DefaultConfig(EffectDust).Style)
	assert.Equal(t, BlendAdditive, DefaultConfig(EffectFountain).BlendingMode)
}

func TestParseEffectKind(t *testing.T) {
	k, err := ParseEffectKind("Snow")
	require.NoError(t, err)
	assert.Equal(t, EffectSnow, k)

	_, err = ParseEffectKind("smoke")
	assert.ErrorIs(t, err, ErrUnknownEffectKind)

	assert.Equal(t, "EffectKind(9)", EffectKind(9).String())
}

func TestEffectConfig_Validate(t *testing.T) {
	cfg := DefaultConfig(EffectFountain)
	cfg.Count = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidCount)

	cfg = DefaultConfig(EffectFountain)
	cfg.Opacity = 1.5
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidOpacity)

	cfg = DefaultConfig(EffectFountain)
	cfg.Lifetime = Range{Min: 0, Max: 10}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidLifetime)

	cfg = DefaultConfig(EffectFountain)
	cfg.Size = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidSize)
}

func TestEffectConfig_Normalize(t *testing.T) {
	cfg := EffectConfig{
		Count:      -3,
		Opacity:    2,
		Turbulence: -1,
		Spread:     mgl32.Vec3{-1, 2, -3},
		Lifetime:   Range{Min: 50, Max: 0},
		Color:      HSL{Hue: 1.5, Saturation: -1, Lightness: 0.5},
	}
	cfg.Normalize()

	assert.Equal(t, 0, cfg.Count)
	assert.Equal(t, fallbackPointSize, cfg.Size)
	assert.Equal(t, float32(1), cfg.Opacity)
	assert.Equal(t, float32(0), cfg.Turbulence)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cfg.Spread)
	assert.Equal(t, Range{Min: 1, Max: 50}, cfg.Lifetime)
	assert.Equal(t, HSL{Hue: 1, Saturation: 0, Lightness: 0.5}, cfg.Color)
	assert.Equal(t, defaultSpeedFactor, cfg.SpeedFactor)
	assert.Equal(t, defaultMaxSpeed, cfg.MaxSpeed)
}

func TestBlendingMode_UnmarshalText(t *testing.T) {
	var b BlendingMode
	require.NoError(t, b.UnmarshalText([]byte("multiply")))
	assert.Equal(t, BlendMultiply, b)
	assert.Error(t, b.UnmarshalText([]byte("screen")))

	var s Style
	require.NoError(t, s.UnmarshalText([]byte("Textured")))
	assert.Equal(t, StyleTextured, s)
	assert.Error(t, s.UnmarshalText([]byte("mesh")))
}
