package gekkofx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_Lengths(t *testing.T) {
	cfg := DefaultConfig(EffectFountain)
	cfg.Count = 37
	buf := Initialize(&cfg, EffectFountain, NewRand(7))

	require.NoError(t, buf.Check())
	assert.Equal(t, 37, buf.Len())
	assert.Len(t, buf.Positions, 37*3)
	assert.Len(t, buf.Velocities, 37*3)
	assert.Len(t, buf.Colors, 37*3)
}

func TestInitialize_ZeroCount(t *testing.T) {
	cfg := DefaultConfig(EffectDust)
	cfg.Count = 0
	buf := Initialize(&cfg, EffectDust, NewRand(1))
	assert.Equal(t, 0, buf.Len())
	assert.NoError(t, buf.Check())

	assert.Equal(t, 0, Initialize(nil, EffectDust, nil).Len())
}

func TestInitialize_AgesBelowLifetime(t *testing.T) {
	cfg := DefaultConfig(EffectFire)
	buf := Initialize(&cfg, EffectFire, NewRand(3))
	for i := 0; i < buf.Len(); i++ {
		assert.GreaterOrEqual(t, buf.Ages[i], float32(0))
		assert.Less(t, buf.Ages[i], buf.Lifetimes[i])
		assert.GreaterOrEqual(t, buf.Lifetimes[i], cfg.Lifetime.Min)
		assert.LessOrEqual(t, buf.Lifetimes[i], cfg.Lifetime.Max)
	}
}

func TestInitialize_EmitterStartsAtOrigin(t *testing.T) {
	cfg := DefaultConfig(EffectFountain)
	buf := Initialize(&cfg, EffectFountain, NewRand(5))
	for i := 0; i < buf.Len(); i++ {
		assert.Equal(t, mgl32.Vec3{}, buf.Position(i))
		assert.GreaterOrEqual(t, buf.Velocity(i).Y(), cfg.InitialBoost)
	}
}

func TestInitialize_AmbientFillsRegion(t *testing.T) {
	for _, kind := range []EffectKind{EffectSnow, EffectDust} {
		cfg := DefaultConfig(kind)
		lo, hi := SpawnRegion(kind)
		buf := Initialize(&cfg, kind, NewRand(11))
		for i := 0; i < buf.Len(); i++ {
			p := buf.Position(i)
			for k := 0; k < 3; k++ {
				assert.GreaterOrEqual(t, p[k], lo[k], kind.String())
				assert.LessOrEqual(t, p[k], hi[k], kind.String())
			}
		}
	}

	lo, hi := SpawnRegion(EffectSnow)
	assert.Equal(t, float32(5), lo.Y())
	assert.Equal(t, float32(10), hi.Y())
}

func TestInitialize_DrawOrder(t *testing.T) {
	cfg := DefaultConfig(EffectFountain)
	cfg.Count = 1
	cfg.Spread = mgl32.Vec3{2, 4, 2}
	cfg.InitialBoost = 1
	cfg.Lifetime = Range{Min: 10, Max: 20}
	rng := NewSequenceRand(0.5, 0.25, 0.75, 0.5, 0.5)

	buf := Initialize(&cfg, EffectFountain, rng)

	assert.Equal(t, 5, rng.Draws())
	assert.Equal(t, mgl32.Vec3{0, 2, 0.5}, buf.Velocity(0))
	assert.Equal(t, float32(15), buf.Lifetimes[0])
	assert.Equal(t, float32(7.5), buf.Ages[0])
}

func TestInitialize_AmbientDrawsPositionFirst(t *testing.T) {
	cfg := DefaultConfig(EffectSnow)
	cfg.Count = 1
	rng := NewSequenceRand(0, 1, 0.5, 0.5, 0.5, 0.5, 0, 0)

	buf := Initialize(&cfg, EffectSnow, rng)

	assert.Equal(t, 8, rng.Draws())
	assert.Equal(t, mgl32.Vec3{-10, 10, 0}, buf.Position(0))
}

func TestInitialize_SpawnColor(t *testing.T) {
	cfg := DefaultConfig(EffectFire)
	buf := Initialize(&cfg, EffectFire, NewRand(2))
	r, g, b := cfg.ColorRange.Start.RGB()
	assert.Equal(t, [3]float32{r, g, b}, buf.Color(0))
}
