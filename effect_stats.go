package gekkofx

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Bounds struct {
	Min, Max mgl32.Vec3
}

func (b Bounds) Size() mgl32.Vec3 { return b.Max.Sub(b.Min) }

// EffectStats summarizes a population for tooling and logs.
type EffectStats struct {
	Kind     EffectKind
	Count    int
	Frames   uint64
	Respawns uint64
	Bounds   Bounds
	MaxSpeed float32
	// MeanLife is the average fraction of life remaining.
	MeanLife float32
}

func (e *Effect) Stats() EffectStats {
	st := EffectStats{Kind: e.Kind, Frames: e.frames, Respawns: e.respawns}
	buf := e.buffers
	if e.disposed || buf.Len() == 0 {
		return st
	}
	st.Count = buf.Len()
	st.Bounds = Bounds{Min: buf.Position(0), Max: buf.Position(0)}

	var lifeSum float32
	for i := 0; i < st.Count; i++ {
		p := buf.Position(i)
		for k := 0; k < 3; k++ {
			st.Bounds.Min[k] = math32.Min(st.Bounds.Min[k], p[k])
			st.Bounds.Max[k] = math32.Max(st.Bounds.Max[k], p[k])
		}
		if s := buf.Velocity(i).Len(); s > st.MaxSpeed {
			st.MaxSpeed = s
		}
		lifeSum += lifeRatio(buf.Ages[i], buf.Lifetimes[i])
	}
	st.MeanLife = lifeSum / float32(st.Count)
	return st
}
