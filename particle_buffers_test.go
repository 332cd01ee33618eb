package gekkofx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticleBuffers_Check(t *testing.T) {
	buf := NewParticleBuffers(4)
	assert.NoError(t, buf.Check())

	var none *ParticleBuffers
	assert.Error(t, none.Check())
	assert.Equal(t, 0, none.Len())

	buf.Lifetimes = buf.Lifetimes[:3]
	assert.EqualError(t, buf.Check(), "lifetimes has 3 entries, want 4")
}

func TestParticleBuffers_CheckReportsFirstMismatch(t *testing.T) {
	buf := NewParticleBuffers(2)
	buf.Velocities = buf.Velocities[:3]
	buf.Colors = buf.Colors[:3]

	for i := 0; i < 10; i++ {
		assert.EqualError(t, buf.Check(), "velocities has 3 entries, want 6")
	}
}

func TestParticleBuffers_CheckDoesNotAllocate(t *testing.T) {
	buf := NewParticleBuffers(16)
	allocs := testing.AllocsPerRun(100, func() {
		_ = buf.Check()
	})
	assert.Zero(t, allocs)
}

func TestNewParticleBuffers_NegativeCount(t *testing.T) {
	buf := NewParticleBuffers(-5)
	assert.Equal(t, 0, buf.Len())
	assert.NoError(t, buf.Check())
}
