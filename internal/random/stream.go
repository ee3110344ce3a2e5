// Package random provides the seeded integer stream used to draw fixture
// coefficients.
//
// The stream is a 48-bit linear congruential generator with the constants of
// java.util.Random, so a given seed yields the same draws the historical
// fixture generator produced:
//
//	Multiplier: 0x5DEECE66D
//	Increment:  0xB
//	Modulus:    2^48
//
// A Stream is not safe for concurrent use. Callers create one per generation
// call and draw from it in a fixed order.
package random

// DefaultSeed is the seed every committed fixture was generated with.
const DefaultSeed int64 = 44

const (
	multiplier = 0x5DEECE66D
	increment  = 0xB
	mask       = (1 << 48) - 1
)

// Stream is a deterministic pseudo-random integer stream.
type Stream struct {
	state uint64
}

// New creates a stream positioned at the first draw for seed.
func New(seed int64) *Stream {
	s := &Stream{}
	s.Reset(seed)
	return s
}

// Reset rewinds the stream to the first draw for seed.
func (s *Stream) Reset(seed int64) {
	s.state = (uint64(seed) ^ multiplier) & mask
}

// Next advances the generator and returns the top bits of the new state as a
// signed 32-bit value. bits must be in [1, 32].
func (s *Stream) Next(bits uint) int32 {
	s.state = (s.state*multiplier + increment) & mask
	return int32(s.state >> (48 - bits))
}

// Intn returns a uniformly distributed int in [0, n).
// It panics if n <= 0.
func (s *Stream) Intn(n int32) int32 {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}

	r := s.Next(31)
	m := n - 1

	// Power of two: take the high bits.
	if n&m == 0 {
		return int32((int64(n) * int64(r)) >> 31)
	}

	// Reject draws from the incomplete final bucket. The int32 overflow in
	// u - r + m is what signals the rejection.
	for u := r; ; u = s.Next(31) {
		r = u % n
		if u-r+m >= 0 {
			return r
		}
	}
}
