package yatzy

import (
	"math/big"
	"sort"
)

// RollOutcome is one distinct sorted multiset obtainable by rolling k fresh
// dice, together with its exact and float64 probability.
type RollOutcome struct {
	Dice    []Die
	Prob    float64
	RatProb *big.Rat
}

// histogram counts occurrences of each face 1..6 in a roll of some size.
type histogram [NumSides + 1]uint8

func (h histogram) dice() []Die {
	result := make([]Die, 0, NumDice)
	for face := Die(1); face <= NumSides; face++ {
		for i := uint8(0); i < h[face]; i++ {
			result = append(result, face)
		}
	}
	return result
}

// makeHistograms enumerates every one of the 6^k raw sequences of k dice,
// collapsed into its face-count histogram, for k in [1, NumDice].
func makeHistograms(k int) []histogram {
	if k <= 0 {
		return []histogram{{}}
	}

	sub := makeHistograms(k - 1)
	result := make([]histogram, 0, NumSides*len(sub))
	for _, h := range sub {
		for face := Die(1); face <= NumSides; face++ {
			next := h
			next[face]++
			result = append(result, next)
		}
	}
	return result
}

// makeRollProbs builds the distinct-multiset probability table for a roll
// of k dice.
func makeRollProbs(k int) []RollOutcome {
	freq := make(map[histogram]int64)
	total := int64(0)
	for _, h := range makeHistograms(k) {
		freq[h]++
		total++
	}

	result := make([]RollOutcome, 0, len(freq))
	for h, count := range freq {
		result = append(result, RollOutcome{
			Dice:    h.dice(),
			Prob:    float64(count) / float64(total),
			RatProb: big.NewRat(count, total),
		})
	}

	// Map iteration order above is randomized per process; the sum order
	// used throughout the solver must be fixed per state for float-mode
	// results to reproduce across runs, so sort into a canonical order
	// (ascending, lexicographic on the sorted dice values) before returning.
	sort.Slice(result, func(i, j int) bool {
		di, dj := result[i].Dice, result[j].Dice
		for k := range di {
			if di[k] != dj[k] {
				return di[k] < dj[k]
			}
		}
		return false
	})
	return result
}

// rollProbTables[k] is the probability table for rolling k fresh dice,
// k in [1, NumDice]. Built once at package initialization.
var rollProbTables = func() [NumDice + 1][]RollOutcome {
	var tables [NumDice + 1][]RollOutcome
	for k := 1; k <= NumDice; k++ {
		tables[k] = makeRollProbs(k)
	}
	return tables
}()

// RollProb returns the probability table for rolling k fresh dice (k in
// [1, NumDice]): every distinct sorted multiset with its exact probability.
func RollProb(k int) []RollOutcome {
	return rollProbTables[k]
}
