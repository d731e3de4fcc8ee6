package yatzy

import (
	"math/big"
	"testing"
)

func TestRollProbSumsToOne(t *testing.T) {
	for k := 1; k <= NumDice; k++ {
		outcomes := RollProb(k)
		if len(outcomes) == 0 {
			t.Fatalf("RollProb(%d) returned no outcomes", k)
		}

		var floatSum float64
		ratSum := big.NewRat(0, 1)
		for _, o := range outcomes {
			floatSum += o.Prob
			ratSum.Add(ratSum, o.RatProb)
			if len(o.Dice) != k {
				t.Errorf("RollProb(%d): outcome %v has %d dice, want %d", k, o.Dice, len(o.Dice), k)
			}
		}

		if diff := floatSum - 1.0; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("RollProb(%d): float probabilities sum to %v, want 1", k, floatSum)
		}
		if ratSum.Cmp(big.NewRat(1, 1)) != 0 {
			t.Errorf("RollProb(%d): exact probabilities sum to %v, want 1", k, ratSum)
		}
	}
}

func TestRollProbDistinctMultisets(t *testing.T) {
	seen := make(map[string]struct{})
	for _, o := range RollProb(5) {
		key := string(o.Dice)
		if _, dup := seen[key]; dup {
			t.Fatalf("RollProb(5) contains a duplicate multiset: %v", o.Dice)
		}
		seen[key] = struct{}{}
	}

	// There are C(6+5-1, 5) = 252 distinct sorted 5-multisets over 6 faces.
	if len(seen) != 252 {
		t.Errorf("RollProb(5) has %d distinct outcomes, want 252", len(seen))
	}
}

// TestRollProbCanonicalOrder guards the fixed summation order SPEC_FULL.md
// §5 requires: RollProb(k) must come back in the same lexicographic order
// every call, not whatever order a map happened to iterate in.
func TestRollProbCanonicalOrder(t *testing.T) {
	for k := 1; k <= NumDice; k++ {
		outcomes := RollProb(k)
		for i := 1; i < len(outcomes); i++ {
			prev, cur := outcomes[i-1].Dice, outcomes[i].Dice
			less := false
			for j := range prev {
				if prev[j] != cur[j] {
					less = prev[j] < cur[j]
					break
				}
			}
			if !less {
				t.Fatalf("RollProb(%d) is not in canonical order at index %d: %v then %v", k, i, prev, cur)
			}
		}

		again := RollProb(k)
		for i := range outcomes {
			if string(outcomes[i].Dice) != string(again[i].Dice) {
				t.Fatalf("RollProb(%d) order changed between calls at index %d", k, i)
			}
		}
	}
}
