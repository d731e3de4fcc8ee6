package yatzy

import (
	"fmt"
	"math/big"
)

// Arith abstracts the arithmetic the solver needs over a numeric backend
// T, so the same V0/V1/V2 logic in solver.go serves both precomputation
// (exact rationals, reproducible and order-independent) and query-time
// serving (float64, fast). This mirrors the generic Value capability the
// original solver was built around, expressed in Go as an explicit
// strategy value rather than operator overloading on T itself.
type Arith[T any] interface {
	Zero() T
	FromPoints(points uint8) T
	Add(a, b T) T
	// Scale multiplies v by the probability carried on outcome, which is
	// represented differently depending on the backend (float64 vs *big.Rat).
	Scale(outcome RollOutcome, v T) T
	Less(a, b T) bool
}

// FloatArith is the float64-backed Arith implementation used for serving.
type FloatArith struct{}

func (FloatArith) Zero() float64                 { return 0 }
func (FloatArith) FromPoints(points uint8) float64 { return float64(points) }
func (FloatArith) Add(a, b float64) float64       { return a + b }
func (FloatArith) Scale(outcome RollOutcome, v float64) float64 {
	return outcome.Prob * v
}
func (FloatArith) Less(a, b float64) bool { return a < b }

// RatArith is the *big.Rat-backed Arith implementation used for exact
// precomputation. Every value produced by the solver under RatArith is a
// fresh *big.Rat; none of the inputs are mutated in place.
type RatArith struct{}

func (RatArith) Zero() *big.Rat                   { return new(big.Rat) }
func (RatArith) FromPoints(points uint8) *big.Rat { return new(big.Rat).SetInt64(int64(points)) }
func (RatArith) Add(a, b *big.Rat) *big.Rat       { return new(big.Rat).Add(a, b) }
func (RatArith) Scale(outcome RollOutcome, v *big.Rat) *big.Rat {
	return new(big.Rat).Mul(outcome.RatProb, v)
}
func (RatArith) Less(a, b *big.Rat) bool { return a.Cmp(b) < 0 }

// bonusOrEV returns the additional value of game g, which has just had one
// combo filled: if g is now terminal, the upper-section bonus (or zero);
// otherwise the precomputed expected value of g's resulting GameState.
func bonusOrEV[T any](g Game, ev map[GameState]T, ops Arith[T]) T {
	if g.Ended() {
		if g.HasBonus() {
			return ops.FromPoints(50)
		}
		return ops.Zero()
	}

	state := StateFromGame(g)
	v, ok := ev[state]
	if !ok {
		panic(fmt.Errorf("no expected value recorded for reachable game state %s", state))
	}
	return v
}

func (s GameState) String() string {
	return fmt.Sprintf("GameState{numbersTotal=%d, filled=%015b}", s.NumbersTotal, uint16(s.Filled))
}
