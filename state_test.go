package yatzy

import "testing"

func TestGameStateByteRoundTrip(t *testing.T) {
	tests := []GameState{
		{NumbersTotal: 0, Filled: 0},
		{NumbersTotal: 63, Filled: 0x7FFF},
		{NumbersTotal: 42, Filled: comboFlags(1).Set(OnePair).Set(Yatzy)},
	}

	for _, s := range tests {
		buf := s.ToBytes()
		if len(buf) != sizeOfGameState {
			t.Fatalf("ToBytes(%v) has length %d, want %d", s, len(buf), sizeOfGameState)
		}
		got := GameStateFromBytes(buf)
		if got != s {
			t.Errorf("round trip of %v produced %v", s, got)
		}
	}
}

func TestStateFromGameClampsAndCollapsesBonus(t *testing.T) {
	// Sixes=30, Fives=25, Twos=8 (all legal scores): recorded upper total is
	// exactly 63 with Ones/Threes/Fours still empty. The bonus is attainable
	// (indeed already met), so NumbersTotal must be preserved, not collapsed.
	g63, err := NewGameFromScorecard(Dice{1, 2, 3, 4, 5}, 0, partialScorecard(map[Combo]uint8{
		Twos: 8, Fives: 25, Sixes: 30,
	}))
	if err != nil {
		t.Fatalf("NewGameFromScorecard: %v", err)
	}
	s63 := StateFromGame(g63)
	if s63.NumbersTotal != 63 {
		t.Errorf("upper total 63: got NumbersTotal %d, want 63", s63.NumbersTotal)
	}

	// All six number combos filled, summing to 62 (2+10+0+20+0+30): the
	// bonus is now permanently unreachable, so NumbersTotal collapses to 0.
	g62, err := NewGameFromScorecard(Dice{1, 2, 3, 4, 5}, 0, partialScorecard(map[Combo]uint8{
		Ones: 2, Twos: 10, Threes: 0, Fours: 20, Fives: 0, Sixes: 30,
	}))
	if err != nil {
		t.Fatalf("NewGameFromScorecard: %v", err)
	}
	s62 := StateFromGame(g62)
	if s62.NumbersTotal != 0 {
		t.Errorf("unreachable bonus: got NumbersTotal %d, want 0", s62.NumbersTotal)
	}
}

func partialScorecard(scores map[Combo]uint8) [NumCombos]*uint8 {
	var combos [NumCombos]*uint8
	for c, v := range scores {
		v := v
		combos[c] = &v
	}
	return combos
}

func TestEnumerateStatesByEmptyCountCounts(t *testing.T) {
	byEmpty := EnumerateStatesByEmptyCount()

	total := 0
	for n := 1; n <= NumCombos; n++ {
		for _, s := range byEmpty[n] {
			if s.EmptyCount() != n {
				t.Errorf("state %v filed under empty count %d, but EmptyCount() = %d", s, n, s.EmptyCount())
			}
		}
		total += len(byEmpty[n])
	}

	if byEmpty[0] != nil {
		t.Error("the terminal all-filled state (empty count 0) must not be enumerated")
	}

	// The bottom-up DP state space has ~958,974 distinct reachable states.
	if total < 900000 || total > 1000000 {
		t.Errorf("enumerated %d states, want roughly 958,974", total)
	}
}

func TestGameFromStateRoundTripsThroughStateFromGame(t *testing.T) {
	byEmpty := EnumerateStatesByEmptyCount()
	dice := Dice{1, 2, 3, 4, 5}

	checked := 0
	for n := 1; n <= NumCombos && checked < 2000; n++ {
		for _, s := range byEmpty[n] {
			g := GameFromState(s, dice)
			got := StateFromGame(g)
			if got != s {
				t.Fatalf("GameFromState(%v) -> StateFromGame round trip produced %v", s, got)
			}
			checked++
			if checked >= 2000 {
				break
			}
		}
	}
}
