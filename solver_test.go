package yatzy

import "testing"

// scorecardFillingAllBut returns a scorecard with every combo except keep
// filled with its lowest legal score (0, or 5 for Chance), so that selecting
// keep is the only legal move and immediately ends the game (no EV table
// lookup is required to score it).
func scorecardFillingAllBut(keep Combo) [NumCombos]*uint8 {
	var combos [NumCombos]*uint8
	for _, c := range AllCombos {
		if c == keep {
			continue
		}
		lowest := LegalScores(c)[0]
		combos[c] = &lowest
	}
	return combos
}

func wantSelectCombo(t *testing.T, choices []Choice, want Combo) {
	t.Helper()
	if len(choices) == 0 {
		t.Fatal("BestChoices returned no choices")
	}
	got := choices[0]
	if got.Kind != ChoiceSelectCombo || got.Combo != want {
		t.Errorf("best choice = %+v, want SelectCombo(%v)", got, want)
	}
}

// TestBestChoiceS1 exercises scenario S1: with every combo empty and dice
// [1,1,1,1,1], Yatzy (50 points) dominates every other immediate fill so
// strongly that the outcome doesn't depend on precise downstream EVs; a
// uniform placeholder EV for every resulting state is enough to verify it.
func TestBestChoiceS1(t *testing.T) {
	g, err := NewGameFromScorecard(Dice{1, 1, 1, 1, 1}, 0, [NumCombos]*uint8{})
	if err != nil {
		t.Fatalf("NewGameFromScorecard: %v", err)
	}

	ev := make(map[GameState]float64)
	for _, c := range AllCombos {
		points := Points(c, g.Dice())
		filled := g.WithCombo(c, points)
		if !filled.Ended() {
			ev[StateFromGame(filled)] = 0
		}
	}

	choices, _ := BestChoices(g, ev, FloatArith{})
	wantSelectCombo(t, choices, Yatzy)
}

func TestBestChoiceS2LargeStraight(t *testing.T) {
	g, err := NewGameFromScorecard(Dice{2, 3, 4, 5, 6}, 0, scorecardFillingAllBut(LargeStraight))
	if err != nil {
		t.Fatalf("NewGameFromScorecard: %v", err)
	}
	choices, value := BestChoices(g, map[GameState]float64{}, FloatArith{})
	wantSelectCombo(t, choices, LargeStraight)
	if value != 20 {
		t.Errorf("EV = %v, want 20", value)
	}
}

func TestBestChoiceS3SmallStraight(t *testing.T) {
	g, err := NewGameFromScorecard(Dice{1, 2, 3, 4, 5}, 0, scorecardFillingAllBut(SmallStraight))
	if err != nil {
		t.Fatalf("NewGameFromScorecard: %v", err)
	}
	choices, value := BestChoices(g, map[GameState]float64{}, FloatArith{})
	wantSelectCombo(t, choices, SmallStraight)
	if value != 15 {
		t.Errorf("EV = %v, want 15", value)
	}
}

func TestBestChoiceS4FullHouse(t *testing.T) {
	g, err := NewGameFromScorecard(Dice{3, 3, 4, 4, 4}, 0, scorecardFillingAllBut(FullHouse))
	if err != nil {
		t.Fatalf("NewGameFromScorecard: %v", err)
	}
	choices, value := BestChoices(g, map[GameState]float64{}, FloatArith{})
	wantSelectCombo(t, choices, FullHouse)
	if value != 18 {
		t.Errorf("EV = %v, want 18", value)
	}

	// A triple-plus-pair on the same dice is not a TwoPairs.
	if got := Points(TwoPairs, g.Dice()); got != 0 {
		t.Errorf("Points(TwoPairs, %v) = %d, want 0", g.Dice(), got)
	}
}

// TestArgmaxConsistency is invariant 6: the solver's reported expected value
// must equal the value of its reported choice recomputed from first
// principles. Scenario S5 exercises this with rerollsLeft=2 against a fully
// computed EV table (see the gated, full-table TestExpectedValueOfInitialState);
// this keeps the same check tractable by using rerollsLeft=0, where no reroll
// candidates (and hence no deep recursive EV dependency) are involved.
func TestArgmaxConsistency(t *testing.T) {
	g, err := NewGameFromScorecard(Dice{6, 6, 5, 1, 1}, 0, [NumCombos]*uint8{})
	if err != nil {
		t.Fatalf("NewGameFromScorecard: %v", err)
	}

	ev := make(map[GameState]float64)
	for _, c := range AllCombos {
		points := Points(c, g.Dice())
		filled := g.WithCombo(c, points)
		if !filled.Ended() {
			ev[StateFromGame(filled)] = 0
		}
	}

	choices, value := BestChoices(g, ev, FloatArith{})
	if len(choices) == 0 {
		t.Fatal("BestChoices returned no choices")
	}

	for _, c := range choices {
		if c.Kind == ChoiceSelectCombo {
			points := Points(c.Combo, g.Dice())
			filled := g.WithCombo(c.Combo, points)
			got := float64(points) + bonusOrEV(filled, ev, FloatArith{})
			if got != value {
				t.Errorf("recomputed value for %+v = %v, want %v", c, got, value)
			}
		}
	}
}

// referenceValue independently re-derives the optimal expected value of a
// game where every combo but keep is already filled, by directly
// enumerating reroll subsets and outcomes (Points/RollProb/combineDice/
// retainedAfter) rather than calling candidates/rerollCandidates/
// valueOfReroll/value. Because bonusOrEV is always a deterministic zero in
// this construction (filling keep always ends the game, and the upper
// section can't reach 63 with every other upper combo scored 0), this recursion
// needs no EV table and is a genuine cross-check of solver.go's own
// recursive descent, not a restatement of it.
func referenceValue(keep Combo, dice Dice, rerollsLeft uint8, memo map[uint8]map[Dice]float64) float64 {
	if m, ok := memo[rerollsLeft]; ok {
		if v, ok := m[dice]; ok {
			return v
		}
	} else {
		memo[rerollsLeft] = make(map[Dice]float64)
	}

	best := float64(Points(keep, dice))
	if rerollsLeft > 0 {
		seen := make(map[Dice]bool)
		for mask := 1; mask < (1 << NumDice); mask++ {
			var rerolled []Die
			for i := 0; i < NumDice; i++ {
				if mask&(1<<i) != 0 {
					rerolled = append(rerolled, dice[i])
				}
			}
			retained := dice.retainedAfter(rerolled)
			if seen[retained] {
				continue
			}
			seen[retained] = true

			k := len(rerolled)
			var total float64
			for _, outcome := range RollProb(k) {
				combined := combineDice(retained, k, outcome.Dice)
				total += outcome.Prob * referenceValue(keep, combined, rerollsLeft-1, memo)
			}
			if total > best {
				best = total
			}
		}
	}

	memo[rerollsLeft][dice] = best
	return best
}

// TestRerollPathMatchesIndependentReferenceS5 is scenario S5: with dice
// [6,6,5,1,1], rerolls_left=2, and every combo but Yatzy already filled,
// the solver's reported expected value must equal one computed by an
// independent reimplementation of the reroll recursion. This exercises
// rerollCandidates/valueOfReroll and the retained-multiset dedup in
// solver.go at both rerollsLeft levels, which TestArgmaxConsistency's
// rerollsLeft=0 construction never reaches.
func TestRerollPathMatchesIndependentReferenceS5(t *testing.T) {
	dice := Dice{6, 6, 5, 1, 1}
	g, err := NewGameFromScorecard(dice, 2, scorecardFillingAllBut(Yatzy))
	if err != nil {
		t.Fatalf("NewGameFromScorecard: %v", err)
	}

	_, got := BestChoices(g, map[GameState]float64{}, FloatArith{})

	memo := map[uint8]map[Dice]float64{}
	want := referenceValue(Yatzy, dice, 2, memo)

	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("solver EV = %v, independent reference = %v", got, want)
	}
}

func TestTiedChoicesAllAchieveTheSameValue(t *testing.T) {
	g, err := NewGameFromScorecard(Dice{1, 1, 2, 2, 3}, 0, [NumCombos]*uint8{})
	if err != nil {
		t.Fatalf("NewGameFromScorecard: %v", err)
	}

	ev := make(map[GameState]float64)
	for _, c := range AllCombos {
		points := Points(c, g.Dice())
		filled := g.WithCombo(c, points)
		if !filled.Ended() {
			ev[StateFromGame(filled)] = 0
		}
	}

	choices, value := BestChoices(g, ev, FloatArith{})
	for _, c := range choices {
		if c.Kind != ChoiceSelectCombo {
			continue
		}
		points := Points(c.Combo, g.Dice())
		filled := g.WithCombo(c.Combo, points)
		got := float64(points) + bonusOrEV(filled, ev, FloatArith{})
		if got != value {
			t.Errorf("tied choice %+v has value %v, want %v", c, got, value)
		}
	}
}
