package yatzy

import "encoding/binary"

// GameState is the lossy, dice-independent projection of a Game used as
// the dynamic-programming key: which combos remain, and how close the
// upper-section bonus is (collapsed to 0 once it is no longer attainable).
type GameState struct {
	NumbersTotal uint8 // in [0, 63], or 0 if the bonus is already unattainable
	Filled       comboFlags
}

// EmptyCount returns how many combos are still unfilled in this state.
func (s GameState) EmptyCount() int {
	return s.Filled.EmptyCount()
}

// sizeOfGameState is the encoded size in bytes: 1 byte for NumbersTotal
// plus 2 bytes for the 15-bit Filled field.
const sizeOfGameState = 3

// ToBytes serializes the state into the persisted EV table's fixed-width
// key encoding.
func (s GameState) ToBytes() []byte {
	buf := make([]byte, sizeOfGameState)
	s.SerializeTo(buf)
	return buf
}

// SerializeTo writes the state into buf, which must have at least
// sizeOfGameState bytes, and returns the number of bytes written.
func (s GameState) SerializeTo(buf []byte) int {
	buf[0] = s.NumbersTotal
	binary.LittleEndian.PutUint16(buf[1:3], uint16(s.Filled))
	return sizeOfGameState
}

// GameStateFromBytes is the inverse of ToBytes/SerializeTo.
func GameStateFromBytes(buf []byte) GameState {
	return GameState{
		NumbersTotal: buf[0],
		Filled:       comboFlags(binary.LittleEndian.Uint16(buf[1:3])),
	}
}

// StateFromGame projects a Game down to its DP-relevant GameState,
// discarding the dice and rerollsLeft. The upper-section running total is
// clamped to 63 and zeroed out entirely once the bonus can no longer be
// reached, since at that point its exact value no longer affects optimal
// play.
func StateFromGame(g Game) GameState {
	var numbersTotal, possibleRemaining int
	var filled comboFlags

	for face := Ones; face <= Sixes; face++ {
		if v, ok := g.Combo(face); ok {
			numbersTotal += int(v)
			filled = filled.Set(face)
		} else {
			possibleRemaining += 5 * (int(face) + 1)
		}
	}

	for c := OnePair; c <= Yatzy; c++ {
		if _, ok := g.Combo(c); ok {
			filled = filled.Set(c)
		}
	}

	if numbersTotal > 63 {
		numbersTotal = 63
	}
	if numbersTotal+possibleRemaining < 63 {
		numbersTotal = 0
	}

	return GameState{NumbersTotal: uint8(numbersTotal), Filled: filled}
}

// GameFromState reconstructs a representative Game for the given state and
// dice, with rerollsLeft set to 2. It is not a faithful inverse of
// StateFromGame: the state's NumbersTotal has lost which specific number
// combos contributed to it, so the first Filled number combo (in Ones..
// Sixes order) is assigned the entire NumbersTotal and every other Filled
// number combo is assigned 0; every Filled non-number combo is assigned 0.
// The result round-trips through StateFromGame to the same GameState, which
// is all the EV engine requires.
func GameFromState(state GameState, dice Dice) Game {
	var g Game
	g.dice = dice
	g.rerollsLeft = 2
	for i := range g.combos {
		g.combos[i] = unfilled
	}

	numbersAssigned := false
	for face := Ones; face <= Sixes; face++ {
		if !state.Filled.IsSet(face) {
			continue
		}
		if numbersAssigned {
			g.combos[face] = 0
		} else {
			g.combos[face] = int16(state.NumbersTotal)
			numbersAssigned = true
		}
	}

	for c := OnePair; c <= Yatzy; c++ {
		if state.Filled.IsSet(c) {
			g.combos[c] = 0
		}
	}

	return g
}

// EnumerateStatesByEmptyCount generates every GameState reachable under
// the rules, keyed by how many combos are empty (1..15; the terminal
// all-filled state, empty count 0, is never stored). It generates states
// directly by combinatorial construction rather than by walking the game
// tree: each of the six number combos can be Empty or Filled with a
// recorded count of 0..5 matching dice of that face, and each of the nine
// remaining combos can be Empty or Filled, with NumbersTotal derived and
// clamped/zero-collapsed exactly as in StateFromGame.
func EnumerateStatesByEmptyCount() map[int][]GameState {
	// numberOption encodes one of the six number combos' sub-state: empty
	// means Empty; otherwise the combo is Filled with count (0..5) matching
	// dice.
	type numberOption struct {
		empty bool
		count int
	}
	options := []numberOption{
		{empty: true},
		{count: 0}, {count: 1}, {count: 2}, {count: 3}, {count: 4}, {count: 5},
	}

	seen := make(map[GameState]struct{}, 958974)
	byEmpty := make(map[int][]GameState, 15)

	var numberFilled [6]bool
	var numberTotal [6]int
	var rec func(face int)
	rec = func(face int) {
		if face == 6 {
			numbersTotal := 0
			possibleRemaining := 0
			var filled comboFlags
			for i := 0; i < 6; i++ {
				faceValue := i + 1
				if numberFilled[i] {
					numbersTotal += numberTotal[i]
					filled = filled.Set(AllCombos[i])
				} else {
					possibleRemaining += 5 * faceValue
				}
			}
			if numbersTotal > 63 {
				numbersTotal = 63
			}
			if numbersTotal+possibleRemaining < 63 {
				numbersTotal = 0
			}

			for mask := 0; mask < 1<<9; mask++ {
				f := filled
				empty := 0
				for i := 0; i < 6; i++ {
					if !numberFilled[i] {
						empty++
					}
				}
				for i := 0; i < 9; i++ {
					c := AllCombos[6+i]
					if mask&(1<<i) != 0 {
						f = f.Set(c)
					} else {
						empty++
					}
				}
				if empty == 0 {
					continue
				}

				state := GameState{NumbersTotal: uint8(numbersTotal), Filled: f}
				if _, dup := seen[state]; dup {
					continue
				}
				seen[state] = struct{}{}
				byEmpty[empty] = append(byEmpty[empty], state)
			}
			return
		}

		for _, opt := range options {
			if opt.empty {
				numberFilled[face] = false
			} else {
				numberFilled[face] = true
				numberTotal[face] = opt.count * (face + 1)
			}
			rec(face + 1)
		}
	}
	rec(0)

	return byEmpty
}
