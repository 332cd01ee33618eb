package gekkofx

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// singleParticle returns a one-particle population with the given state.
func singleParticle(pos, vel mgl32.Vec3, age, lifetime float32) *ParticleBuffers {
	buf := NewParticleBuffers(1)
	buf.setVec(buf.Positions, 0, pos.X(), pos.Y(), pos.Z())
	buf.setVec(buf.Velocities, 0, vel.X(), vel.Y(), vel.Z())
	buf.Ages[0] = age
	buf.Lifetimes[0] = lifetime
	return buf
}

func calmConfig(kind EffectKind) EffectConfig {
	cfg := DefaultConfig(kind)
	cfg.Count = 1
	cfg.Spread = mgl32.Vec3{}
	cfg.Turbulence = 0
	cfg.Gravity = 0
	cfg.InitialBoost = 0
	cfg.SpeedFactor = 1
	cfg.Lifetime = Range{Min: 10, Max: 10}
	return cfg
}

func cloneBuffers(b *ParticleBuffers) *ParticleBuffers {
	return &ParticleBuffers{
		Positions:  slices.Clone(b.Positions),
		Velocities: slices.Clone(b.Velocities),
		Lifetimes:  slices.Clone(b.Lifetimes),
		Ages:       slices.Clone(b.Ages),
		Colors:     slices.Clone(b.Colors),
	}
}

func TestAdvance_ZeroFramesIsNoop(t *testing.T) {
	cfg := DefaultConfig(EffectFire)
	buf := Initialize(&cfg, EffectFire, NewRand(4))
	before := cloneBuffers(buf)

	assert.Equal(t, 0, Advance(&cfg, EffectFire, buf, NewRand(4), 0))
	assert.Equal(t, before, buf)
}

func TestAdvance_InconsistentBuffersIsNoop(t *testing.T) {
	cfg := DefaultConfig(EffectFountain)
	buf := NewParticleBuffers(4)
	buf.Colors = buf.Colors[:3]

	assert.NotPanics(t, func() {
		assert.Equal(t, 0, Step(&cfg, EffectFountain, buf, nil))
	})
	assert.Equal(t, 0, Step(nil, EffectFountain, buf, nil))
	assert.Equal(t, 0, Step(&cfg, EffectFountain, nil, nil))
}

func TestStep_Deterministic(t *testing.T) {
	cfg := DefaultConfig(EffectSnow)
	cfg.Count = 200

	a := Initialize(&cfg, EffectSnow, NewRand(42))
	b := Initialize(&cfg, EffectSnow, NewRand(42))
	ra, rb := NewRand(9), NewRand(9)
	for i := 0; i < 50; i++ {
		Step(&cfg, EffectSnow, a, ra)
		Step(&cfg, EffectSnow, b, rb)
	}
	assert.Equal(t, a, b)
}

func TestStep_RespawnResetsWithoutIntegrating(t *testing.T) {
	cfg := calmConfig(EffectFountain)
	cfg.InitialBoost = 0.1
	buf := singleParticle(mgl32.Vec3{3, 3, 3}, mgl32.Vec3{1, 1, 1}, 10, 10)

	n := Step(&cfg, EffectFountain, buf, NewSequenceRand(0.5))

	assert.Equal(t, 1, n)
	assert.Equal(t, float32(0), buf.Ages[0])
	assert.Equal(t, mgl32.Vec3{}, buf.Position(0))
	assert.InDelta(t, 0.1, buf.Velocity(0).Y(), 1e-6)
	assert.Equal(t, float32(10), buf.Lifetimes[0])
}

func TestStep_ExactlyAtLifetimeStillIntegrates(t *testing.T) {
	cfg := calmConfig(EffectFountain)
	buf := singleParticle(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 9, 10)

	assert.Equal(t, 0, Step(&cfg, EffectFountain, buf, nil))
	assert.Equal(t, float32(10), buf.Ages[0])
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, buf.Position(0))
}

func TestStep_SnowRespawnRedrawsPosition(t *testing.T) {
	cfg := calmConfig(EffectSnow)
	rng := NewRand(13)
	for i := 0; i < 20; i++ {
		buf := singleParticle(mgl32.Vec3{0, -50, 0}, mgl32.Vec3{}, 10, 10)
		require.Equal(t, 1, Step(&cfg, EffectSnow, buf, rng))
		y := buf.Position(0).Y()
		assert.GreaterOrEqual(t, y, float32(5))
		assert.LessOrEqual(t, y, float32(10))
	}
}

func TestStep_ColorBoundaries(t *testing.T) {
	cfg := calmConfig(EffectFire)
	cfg.ColorRange = ColorRange{
		Enabled: true,
		Start:   HSL{Hue: 0.12, Saturation: 1, Lightness: 0.6},
		End:     HSL{Hue: 0, Saturation: 1, Lightness: 0.3},
	}

	last := singleParticle(mgl32.Vec3{}, mgl32.Vec3{}, 9, 10)
	Step(&cfg, EffectFire, last, nil)
	r, g, b := cfg.ColorRange.End.RGB()
	c := last.Color(0)
	assertRGB(t, [3]float32{r, g, b}, c[0], c[1], c[2])

	fresh := singleParticle(mgl32.Vec3{}, mgl32.Vec3{}, -1, 10)
	Step(&cfg, EffectFire, fresh, nil)
	r, g, b = cfg.ColorRange.Start.RGB()
	c = fresh.Color(0)
	assertRGB(t, [3]float32{r, g, b}, c[0], c[1], c[2])
}

func TestStep_FountainTrajectory(t *testing.T) {
	cfg := calmConfig(EffectFountain)
	cfg.Gravity = 0.003
	cfg.SpeedFactor = 0.5
	cfg.Lifetime = Range{Min: 1000, Max: 1000}
	boost := float32(0.05)
	buf := singleParticle(mgl32.Vec3{}, mgl32.Vec3{0, boost, 0}, 0, 1000)

	const steps = 40
	sf := cfg.SpeedFactor
	gravity := cfg.Gravity * sf
	var y, vy float32 = 0, boost
	for i := 0; i < steps; i++ {
		Step(&cfg, EffectFountain, buf, nil)
		y += vy * sf
		vy -= gravity
	}

	assert.InDelta(t, y, buf.Position(0).Y(), 1e-6)
	assert.InDelta(t, vy, buf.Velocity(0).Y(), 1e-6)

	n := float32(steps)
	closed := sf * (n*boost - cfg.Gravity*sf*n*(n-1)/2)
	assert.InDelta(t, closed, buf.Position(0).Y(), 1e-4)
	assert.Equal(t, float32(0), buf.Position(0).X())
	assert.Equal(t, float32(steps)*sf, buf.Ages[0])
}

func TestStep_VelocityClamp(t *testing.T) {
	cfg := calmConfig(EffectFountain)
	cfg.Lifetime = Range{Min: 100, Max: 100}

	clamped := singleParticle(mgl32.Vec3{}, mgl32.Vec3{10, 0, 0}, 0, 100)
	Step(&cfg, EffectFountain, clamped, nil)
	assert.Equal(t, float32(10), clamped.Position(0).X())
	assert.InDelta(t, 5, clamped.Velocity(0).Len(), 1e-5)

	cfg.UnclampedVelocity = true
	free := singleParticle(mgl32.Vec3{}, mgl32.Vec3{10, 0, 0}, 0, 100)
	Step(&cfg, EffectFountain, free, nil)
	assert.Equal(t, float32(10), free.Velocity(0).X())
}

func TestStep_TurbulenceDrawsThreePerParticle(t *testing.T) {
	cfg := calmConfig(EffectDust)
	cfg.Turbulence = 0.1
	cfg.Lifetime = Range{Min: 100, Max: 100}
	buf := singleParticle(mgl32.Vec3{}, mgl32.Vec3{}, 0, 100)
	rng := NewSequenceRand(1, 0, 0.5)

	Step(&cfg, EffectDust, buf, rng)

	assert.Equal(t, 3, rng.Draws())
	v := buf.Velocity(0)
	assert.InDelta(t, 0.05, v.X(), 1e-6)
	assert.InDelta(t, -0.05, v.Y(), 1e-6)
	assert.InDelta(t, 0, v.Z(), 1e-6)
}

func TestStep_ZeroSpeedFactorCountsAsOne(t *testing.T) {
	cfg := calmConfig(EffectDust)
	cfg.SpeedFactor = 0
	buf := singleParticle(mgl32.Vec3{}, mgl32.Vec3{}, 0, 10)

	Step(&cfg, EffectDust, buf, nil)
	assert.Equal(t, float32(1), buf.Ages[0])
}

func TestAdvance_ScalesByFrames(t *testing.T) {
	cfg := calmConfig(EffectDust)
	cfg.SpeedFactor = 0.5
	cfg.Lifetime = Range{Min: 100, Max: 100}
	buf := singleParticle(mgl32.Vec3{}, mgl32.Vec3{0.2, 0, 0}, 0, 100)

	Advance(&cfg, EffectDust, buf, nil, 4)
	assert.Equal(t, float32(2), buf.Ages[0])
	assert.InDelta(t, 0.4, buf.Position(0).X(), 1e-6)
}

func TestStep_FountainTenFrames(t *testing.T) {
	cfg := DefaultConfig(EffectFountain)
	cfg.Spread = mgl32.Vec3{}
	cfg.SpeedFactor = 1
	buf := singleParticle(mgl32.Vec3{}, mgl32.Vec3{0, cfg.InitialBoost, 0}, 0, 1000)

	var want float32
	for k := 0; k < 10; k++ {
		Step(&cfg, EffectFountain, buf, nil)
		want += cfg.InitialBoost - float32(k)*cfg.Gravity
	}

	assert.InDelta(t, want, buf.Position(0).Y(), 1e-6)
	assert.InDelta(t, 0.365, buf.Position(0).Y(), 1e-5)
}
