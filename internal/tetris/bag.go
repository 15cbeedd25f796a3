package tetris

import (
	"math/rand"
	"time"
)

// Bag is a 7-bag randomizer: every run of seven draws from a fresh bag
// contains each kind exactly once, in shuffled order.
type Bag struct {
	rng     *rand.Rand
	pending []Kind
}

// NewBag creates a randomizer. A non-zero seed yields a reproducible
// sequence; zero seeds from the current time.
func NewBag(seed int64) *Bag {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Bag{rng: rand.New(rand.NewSource(seed))}
}

// Next draws the next piece, refilling the bag when it is empty.
func (b *Bag) Next() Piece {
	if len(b.pending) == 0 {
		b.refill()
	}
	k := b.pending[0]
	b.pending = b.pending[1:]
	return NewPiece(k)
}

// Remaining returns how many draws are left before the next reshuffle.
func (b *Bag) Remaining() int {
	return len(b.pending)
}

func (b *Bag) refill() {
	kinds := Kinds
	b.rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})
	b.pending = append(b.pending[:0], kinds[:]...)
}
