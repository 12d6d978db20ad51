// internal/draw/engine.go
//
// Draw engine for a loto session.
// Responsibilities:
//   - Keep the ordered history of drawn balls (1..90, no repeats).
//   - Draw uniformly among the balls still in the pool.
//   - Accept balls read off a physical cage (manual entry), undo and reset.
//
// Notes:
//   - The engine is single-owner: callers serialize access themselves.
//   - Exhaustion is signalled with the Exhausted sentinel, never an error.
package draw

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

const (
	// Min and Max bound the universe of drawable balls.
	Min = 1
	Max = 90

	// Exhausted is returned by Draw once every ball has been drawn.
	Exhausted uint8 = 255

	// DebugSeed is the fixed seed used by deterministic engines.
	DebugSeed uint64 = 1234
)

// Engine tracks drawn balls and picks new ones.
type Engine struct {
	rng    *rand.Rand
	picked []uint8
	seen   [Max + 1]bool
}

// New returns an engine seeded with DebugSeed when deterministic is set,
// otherwise with entropy from crypto/rand.
func New(deterministic bool) *Engine {
	if deterministic {
		return NewWithSeed(DebugSeed)
	}
	return NewWithSeed(entropySeed())
}

// NewWithSeed returns an engine whose draws are fully determined by seed.
func NewWithSeed(seed uint64) *Engine {
	return &Engine{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		picked: make([]uint8, 0, Max),
	}
}

// entropySeed reads 8 bytes from crypto/rand; the clock is used if that fails.
func entropySeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Draw picks a ball that has not been drawn yet and appends it to the history.
// Once the pool is empty it returns Exhausted and leaves the history unchanged.
func (e *Engine) Draw() uint8 {
	remaining := e.Remaining()
	if len(remaining) == 0 {
		return Exhausted
	}
	n := remaining[e.rng.IntN(len(remaining))]
	e.push(n)
	return n
}

// AddManual records v as drawn. It reports false, without changing anything,
// when v is outside Min..Max or was already drawn.
func (e *Engine) AddManual(v int) bool {
	if v < Min || v > Max || e.seen[v] {
		return false
	}
	e.push(uint8(v))
	return true
}

// UndoLast removes the most recent ball and returns it to the pool.
// ok is false when the history is empty.
func (e *Engine) UndoLast() (n uint8, ok bool) {
	if len(e.picked) == 0 {
		return 0, false
	}
	n = e.picked[len(e.picked)-1]
	e.picked = e.picked[:len(e.picked)-1]
	e.seen[n] = false
	return n, true
}

// Reset empties the history.
func (e *Engine) Reset() {
	e.picked = e.picked[:0]
	e.seen = [Max + 1]bool{}
}

// Picked returns a copy of the history in draw order.
func (e *Engine) Picked() []uint8 {
	out := make([]uint8, len(e.picked))
	copy(out, e.picked)
	return out
}

// Len is the number of balls drawn so far.
func (e *Engine) Len() int { return len(e.picked) }

// Last returns the most recent ball, or false when nothing was drawn.
func (e *Engine) Last() (uint8, bool) {
	if len(e.picked) == 0 {
		return 0, false
	}
	return e.picked[len(e.picked)-1], true
}

// Contains reports whether v has been drawn.
func (e *Engine) Contains(v int) bool {
	return v >= Min && v <= Max && e.seen[v]
}

// Remaining lists the balls still in the pool, ascending.
func (e *Engine) Remaining() []uint8 {
	out := make([]uint8, 0, Max-len(e.picked))
	for v := Min; v <= Max; v++ {
		if !e.seen[v] {
			out = append(out, uint8(v))
		}
	}
	return out
}

func (e *Engine) push(n uint8) {
	e.picked = append(e.picked, n)
	e.seen[n] = true
}
