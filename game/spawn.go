// spawn.go implements random tile placement.

package game

import (
	"math/rand"
)

// DoubleChance is the percentage of spawns that place a 4 instead of a 2.
const DoubleChance = 10

// Spawner produces seeded "place value at the pos'th empty cell" moves.
// It is not safe for concurrent use.
type Spawner struct {
	rng *rand.Rand
}

func NewSpawner(seed int64) *Spawner {
	return &Spawner{rng: rand.New(rand.NewSource(seed))}
}

// Next picks a value (exponent 1 or 2) and a position below emptyCount.
// emptyCount must be positive.
func (s *Spawner) Next(emptyCount uint8) Move {
	if emptyCount == 0 {
		panic("game: spawn requested on a full board")
	}
	value := uint8(1)
	if s.rng.Intn(100) < DoubleChance {
		value = 2
	}
	return Random(value, uint8(s.rng.Intn(int(emptyCount))))
}

// DeriveSeed mixes a salt into seed so independent generators can be created
// from one configured seed without sharing a sequence.
func DeriveSeed(seed int64, salt uint64) int64 {
	// splitmix64 finalizer
	x := uint64(seed) + salt
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return int64(x ^ (x >> 31))
}
