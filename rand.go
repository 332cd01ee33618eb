package gekkofx

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// Rand is the only source of randomness the particle engine reads.
// *rand.Rand satisfies it.
type Rand interface {
	Float32() float32
}

var seedCounter atomic.Int64

// NewRand returns a seeded source private to one effect. A zero seed draws a
// fresh one so that two effects never share a sequence by accident.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano() + seedCounter.Add(1)
	}
	return rand.New(rand.NewSource(seed))
}

// SequenceRand replays a fixed list of values in [0,1), wrapping around.
// Tests use it to pin every random draw of a step.
type SequenceRand struct {
	Values []float32
	next   int
}

func NewSequenceRand(values ...float32) *SequenceRand {
	return &SequenceRand{Values: values}
}

func (s *SequenceRand) Float32() float32 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}

// Draws reports how many values have been consumed.
func (s *SequenceRand) Draws() int { return s.next }

// orNewRand gives nil callers a private source instead of sharing one. The
// source is seeded on first draw.
func orNewRand(rng Rand) Rand {
	if rng == nil {
		return &lazyRand{}
	}
	return rng
}

type lazyRand struct {
	r *rand.Rand
}

func (l *lazyRand) Float32() float32 {
	if l.r == nil {
		l.r = NewRand(0)
	}
	return l.r.Float32()
}
