package dice

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand/v2"
	"sync"

	"github.com/itsatony/go-dice/internal"
)

// RandomSource supplies uniform integers in [0, n). Implementations used by a
// shared Engine must be safe for concurrent use.
type RandomSource = internal.RandomSource

// CryptoSource draws from crypto/rand. It is the default source.
type CryptoSource struct{}

// IntN returns a uniform integer in [0, n)
func (CryptoSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidRange
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// SeededSource is a deterministic PCG source for reproducible sessions
type SeededSource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	seed uint64
}

// NewSeededSource creates a source that replays the same draws for the same seed
func NewSeededSource(seed uint64) *SeededSource {
	return &SeededSource{
		rng:  rand.New(rand.NewPCG(seed, seed)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with
func (s *SeededSource) Seed() uint64 {
	return s.seed
}

// IntN returns a uniform integer in [0, n)
func (s *SeededSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n), nil
}

// ScriptedSource replays a fixed list of die faces. Each draw is the face a
// die shows (1-based), so a script of 6, 2 makes "2d6" roll a 6 and a 2.
// Fate dice map faces 1, 2, 3 to -1, 0, +1.
type ScriptedSource struct {
	mu    sync.Mutex
	draws []int
	next  int
}

// NewScriptedSource creates a source that returns the given faces in order
func NewScriptedSource(draws ...int) *ScriptedSource {
	return &ScriptedSource{draws: draws}
}

// IntN returns the next scripted face minus one. It fails with
// ErrScriptExhausted when the script is used up and ErrScriptOutOfRange
// when the face does not fit the die.
func (s *ScriptedSource) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, ErrInvalidRange
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.draws) {
		return 0, ErrScriptExhausted
	}
	face := s.draws[s.next]
	s.next++
	if face < 1 || face > n {
		return 0, fmt.Errorf("%w: %d not in 1..%d", ErrScriptOutOfRange, face, n)
	}
	return face - 1, nil
}

// Remaining returns the number of unused draws
func (s *ScriptedSource) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.draws) - s.next
}
