package gekkofx

import (
	"github.com/go-gl/mathgl/mgl32"
)

type spawnRegion struct {
	Min, Max mgl32.Vec3
}

// Ambient effects spawn anywhere inside their box.
var ambientRegions = map[EffectKind]spawnRegion{
	EffectSnow: {Min: mgl32.Vec3{-10, 5, -10}, Max: mgl32.Vec3{10, 10, 10}},
	EffectDust: {Min: mgl32.Vec3{-20, 0, -20}, Max: mgl32.Vec3{20, 5, 20}},
}

// SpawnRegion returns the box a kind spawns into. Emitter kinds return a
// degenerate box at the origin.
func SpawnRegion(kind EffectKind) (lo, hi mgl32.Vec3) {
	if r, ok := ambientRegions[kind]; ok {
		return r.Min, r.Max
	}
	return mgl32.Vec3{}, mgl32.Vec3{}
}

// Initialize allocates a population for cfg and gives every particle its
// starting state. Ages are spread over each lifetime so the population starts
// out at steady state instead of pulsing. A nil rng is replaced by a fresh
// time-seeded source.
func Initialize(cfg *EffectConfig, kind EffectKind, rng Rand) *ParticleBuffers {
	if cfg == nil || cfg.Count <= 0 {
		return NewParticleBuffers(0)
	}
	rng = orNewRand(rng)
	lifetime := cfg.Lifetime.normalized()
	buf := NewParticleBuffers(cfg.Count)
	r, g, b := spawnColor(cfg)

	for i := 0; i < cfg.Count; i++ {
		spawnParticle(cfg, kind, lifetime, buf, i, rng)

		age := rng.Float32() * buf.Lifetimes[i]
		if age >= buf.Lifetimes[i] {
			age = 0
		}
		buf.Ages[i] = age
		buf.setVec(buf.Colors, i, r, g, b)
	}
	return buf
}

// spawnParticle draws position, velocity and lifetime for slot i. Random
// draws happen in a fixed order: position xyz (ambient only), velocity xyz,
// lifetime.
func spawnParticle(cfg *EffectConfig, kind EffectKind, lifetime Range, buf *ParticleBuffers, i int, rng Rand) {
	var px, py, pz float32
	if region, ok := ambientRegions[kind]; ok {
		px = lerp(region.Min.X(), region.Max.X(), rng.Float32())
		py = lerp(region.Min.Y(), region.Max.Y(), rng.Float32())
		pz = lerp(region.Min.Z(), region.Max.Z(), rng.Float32())
	}
	buf.setVec(buf.Positions, i, px, py, pz)

	vx := (rng.Float32() - 0.5) * cfg.Spread.X()
	var vy float32
	if kind.ambient() {
		vy = (rng.Float32()-0.5)*cfg.Spread.Y() + cfg.InitialBoost
	} else {
		vy = rng.Float32()*cfg.Spread.Y() + cfg.InitialBoost
	}
	vz := (rng.Float32() - 0.5) * cfg.Spread.Z()
	buf.setVec(buf.Velocities, i, vx, vy, vz)

	buf.Lifetimes[i] = lerp(lifetime.Min, lifetime.Max, rng.Float32())
}
