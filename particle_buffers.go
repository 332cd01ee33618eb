package gekkofx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleBuffers is the structure-of-arrays storage of one population.
// Vectors are flattened xyz. A population is reallocated on count change,
// never resized in place.
type ParticleBuffers struct {
	Positions  []float32
	Velocities []float32
	Lifetimes  []float32
	Ages       []float32
	Colors     []float32
}

func NewParticleBuffers(count int) *ParticleBuffers {
	if count < 0 {
		count = 0
	}
	return &ParticleBuffers{
		Positions:  make([]float32, count*3),
		Velocities: make([]float32, count*3),
		Lifetimes:  make([]float32, count),
		Ages:       make([]float32, count),
		Colors:     make([]float32, count*3),
	}
}

// Len is the population size.
func (b *ParticleBuffers) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Ages)
}

// Check verifies that every array matches the population size.
func (b *ParticleBuffers) Check() error {
	if b == nil {
		return fmt.Errorf("nil particle buffers")
	}
	n := len(b.Ages)
	if len(b.Lifetimes) != n {
		return fmt.Errorf("lifetimes has %d entries, want %d", len(b.Lifetimes), n)
	}
	if len(b.Positions) != n*3 {
		return vecLenError("positions", len(b.Positions), n)
	}
	if len(b.Velocities) != n*3 {
		return vecLenError("velocities", len(b.Velocities), n)
	}
	if len(b.Colors) != n*3 {
		return vecLenError("colors", len(b.Colors), n)
	}
	return nil
}

func vecLenError(name string, got, count int) error {
	return fmt.Errorf("%s has %d entries, want %d", name, got, count*3)
}

func (b *ParticleBuffers) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2]}
}

func (b *ParticleBuffers) Velocity(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Velocities[i*3], b.Velocities[i*3+1], b.Velocities[i*3+2]}
}

func (b *ParticleBuffers) Color(i int) [3]float32 {
	return [3]float32{b.Colors[i*3], b.Colors[i*3+1], b.Colors[i*3+2]}
}

func (b *ParticleBuffers) setVec(s []float32, i int, x, y, z float32) {
	s[i*3] = x
	s[i*3+1] = y
	s[i*3+2] = z
}
