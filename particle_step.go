package gekkofx

import (
	"github.com/chewxy/math32"
)

// Step advances a population by one rendered frame and returns how many
// particles respawned. It never fails: nil or inconsistent input is a no-op.
// Callers that step every frame should pass their own rng; nil draws from a
// fresh source per call.
func Step(cfg *EffectConfig, kind EffectKind, buf *ParticleBuffers, rng Rand) int {
	return Advance(cfg, kind, buf, rng, 1)
}

// Advance is Step scaled by a number of frames. Time is counted in frames
// times SpeedFactor, never in wall-clock seconds.
func Advance(cfg *EffectConfig, kind EffectKind, buf *ParticleBuffers, rng Rand, frames float32) int {
	if cfg == nil || frames <= 0 || buf.Check() != nil {
		return 0
	}
	rng = orNewRand(rng)

	sf := cfg.SpeedFactor
	if sf <= 0 {
		sf = defaultSpeedFactor
	}
	sf *= frames
	turbulence := cfg.Turbulence
	if turbulence < 0 {
		turbulence = 0
	}
	maxSpeed := cfg.MaxSpeed
	if maxSpeed <= 0 {
		maxSpeed = defaultMaxSpeed
	}
	lifetime := cfg.Lifetime.normalized()
	gravity := cfg.Gravity * sf

	respawned := 0
	pos, vel := buf.Positions, buf.Velocities
	for i := range buf.Ages {
		buf.Ages[i] += sf

		if buf.Ages[i] > buf.Lifetimes[i] {
			spawnParticle(cfg, kind, lifetime, buf, i, rng)
			buf.Ages[i] = 0
			respawned++
		} else {
			p := i * 3
			pos[p] += vel[p] * sf
			pos[p+1] += vel[p+1] * sf
			pos[p+2] += vel[p+2] * sf

			vel[p+1] -= gravity
			if turbulence > 0 {
				vel[p] += (rng.Float32() - 0.5) * turbulence * sf
				vel[p+1] += (rng.Float32() - 0.5) * turbulence * sf
				vel[p+2] += (rng.Float32() - 0.5) * turbulence * sf
			}
			if !cfg.UnclampedVelocity {
				clampSpeed(vel[p:p+3], maxSpeed)
			}
		}

		r, g, b := particleColor(cfg, kind, lifeRatio(buf.Ages[i], buf.Lifetimes[i]))
		buf.setVec(buf.Colors, i, r, g, b)
	}
	return respawned
}

// lifeRatio is the fraction of life remaining, in [0,1].
func lifeRatio(age, lifetime float32) float32 {
	if lifetime <= 0 {
		return 0
	}
	return clamp01(1 - age/lifetime)
}

func clampSpeed(v []float32, limit float32) {
	sq := v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
	if sq <= limit*limit {
		return
	}
	scale := limit / math32.Sqrt(sq)
	v[0] *= scale
	v[1] *= scale
	v[2] *= scale
}
