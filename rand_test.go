package gekkofx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceRand_Wraps(t *testing.T) {
	rng := NewSequenceRand(0.1, 0.2)
	assert.Equal(t, float32(0.1), rng.Float32())
	assert.Equal(t, float32(0.2), rng.Float32())
	assert.Equal(t, float32(0.1), rng.Float32())
	assert.Equal(t, 3, rng.Draws())

	assert.Equal(t, float32(0), NewSequenceRand().Float32())
}

func TestNewRand_SeededSequencesMatch(t *testing.T) {
	a, b := NewRand(21), NewRand(21)
	for i := 0; i < 8; i++ {
		assert.Equal(t, a.Float32(), b.Float32())
	}
}

func TestOrNewRand_NilGetsPrivateSource(t *testing.T) {
	seq := NewSequenceRand(0.5)
	assert.Same(t, seq, orNewRand(seq))

	a, b := orNewRand(nil), orNewRand(nil)
	assert.NotSame(t, a, b)
	v := a.Float32()
	assert.GreaterOrEqual(t, v, float32(0))
	assert.Less(t, v, float32(1))
}

// Nil sources must not be shared; run with -race to catch a shared one.
func TestInitialize_NilRandConcurrentCallers(t *testing.T) {
	cfg := DefaultConfig(EffectSnow)
	cfg.Count = 64

	var wg sync.WaitGroup
	results := make([]*ParticleBuffers, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := cfg
			buf := Initialize(&c, EffectSnow, nil)
			Step(&c, EffectSnow, buf, nil)
			results[i] = buf
		}(i)
	}
	wg.Wait()

	for _, buf := range results {
		assert.NoError(t, buf.Check())
		assert.Equal(t, 64, buf.Len())
	}
}
