package yatzy

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// NumDice is the number of dice in a Yatzy hand.
const NumDice = 5

// NumSides is the number of faces on a single die.
const NumSides = 6

// Die is the value shown on one die, in the range [1, NumSides].
type Die = uint8

// Dice is an unordered hand of NumDice dice, stored sorted ascending so
// that two hands with the same multiset of values compare equal and hash
// identically as a map key.
type Dice [NumDice]Die

// NewDice validates and sorts values into a Dice hand.
func NewDice(values [NumDice]Die) (Dice, error) {
	var d Dice
	for i, v := range values {
		if v < 1 || v > NumSides {
			return Dice{}, fmt.Errorf("%w: %d", ErrInvalidDieValue, v)
		}
		d[i] = v
	}
	sortDice(&d)
	return d, nil
}

// NewRandomDice rolls five fresh dice using rng.
func NewRandomDice(rng *rand.Rand) Dice {
	var d Dice
	for i := range d {
		d[i] = Die(rng.IntN(NumSides)) + 1
	}
	sortDice(&d)
	return d
}

func sortDice(d *Dice) {
	sort.Slice(d[:], func(i, j int) bool { return d[i] < d[j] })
}

func (d Dice) String() string {
	return fmt.Sprintf("%v", [NumDice]Die(d))
}

// counts returns, for each face 1..6, how many dice show that face.
func (d Dice) counts() [NumSides + 1]uint8 {
	var c [NumSides + 1]uint8
	for _, v := range d {
		c[v]++
	}
	return c
}

// Replace removes each value in old from the hand (each must be present,
// matched by value since dice are indistinguishable) and inserts the
// values of new in its place. old and new must have equal, nonzero length.
func (d Dice) Replace(old, new []Die) (Dice, error) {
	if len(old) != len(new) || len(old) == 0 || len(old) > NumDice {
		return Dice{}, fmt.Errorf("%w: mismatched reroll lengths %d/%d", ErrInvalidDice, len(old), len(new))
	}
	for _, v := range new {
		if v < 1 || v > NumSides {
			return Dice{}, fmt.Errorf("%w: %d", ErrInvalidDieValue, v)
		}
	}

	remaining := d.counts()
	for _, v := range old {
		if remaining[v] == 0 {
			return Dice{}, fmt.Errorf("%w: die %d not held", ErrInvalidDice, v)
		}
		remaining[v]--
	}

	result := make([]Die, 0, NumDice)
	for v := Die(1); v <= NumSides; v++ {
		for i := uint8(0); i < remaining[v]; i++ {
			result = append(result, v)
		}
	}
	result = append(result, new...)
	if len(result) != NumDice {
		return Dice{}, fmt.Errorf("%w: replacement produced %d dice", ErrInvalidDice, len(result))
	}

	var out Dice
	copy(out[:], result)
	sortDice(&out)
	return out, nil
}

// Reroll replaces the given held values with fresh uniform rolls.
func (d Dice) Reroll(toReroll []Die, rng *rand.Rand) (Dice, error) {
	fresh := make([]Die, len(toReroll))
	for i := range fresh {
		fresh[i] = Die(rng.IntN(NumSides)) + 1
	}
	return d.Replace(toReroll, fresh)
}

// retainedAfter returns the sorted multiset of dice left after removing one
// occurrence of each value in rerolled. Used to canonicalize reroll choices:
// two rerolled subsets that leave the same retained multiset are equivalent.
func (d Dice) retainedAfter(rerolled []Die) Dice {
	remaining := d.counts()
	for _, v := range rerolled {
		remaining[v]--
	}

	var kept Dice
	n := 0
	for v := Die(1); v <= NumSides; v++ {
		for i := uint8(0); i < remaining[v]; i++ {
			kept[n] = v
			n++
		}
	}
	return kept
}
