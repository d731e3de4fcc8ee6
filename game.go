package yatzy

import (
	"fmt"
	"math/rand/v2"
)

const unfilled = -1

// Game is a concrete in-play Yatzy position: the current dice, the number
// of rerolls left this turn, and the scorecard recorded so far.
type Game struct {
	dice        Dice
	rerollsLeft uint8
	combos      [NumCombos]int16 // unfilled, or the recorded score
}

// NewGame constructs a fresh game with random dice and an empty scorecard.
func NewGame(rng *rand.Rand) Game {
	var g Game
	g.dice = NewRandomDice(rng)
	g.rerollsLeft = 2
	for i := range g.combos {
		g.combos[i] = unfilled
	}
	return g
}

// NewGameFromScorecard reconstructs a Game from dice, rerolls left, and a
// recorded score per combo (nil entries meaning unfilled), validating every
// recorded score against that combo's legal set.
func NewGameFromScorecard(dice Dice, rerollsLeft uint8, combos [NumCombos]*uint8) (Game, error) {
	if rerollsLeft > 2 {
		return Game{}, ErrInvalidRerollsLeft
	}

	var g Game
	g.dice = dice
	g.rerollsLeft = rerollsLeft
	for i, c := range combos {
		if c == nil {
			g.combos[i] = unfilled
			continue
		}
		if !IsLegalScore(Combo(i), *c) {
			return Game{}, &InvalidComboError{Combo: Combo(i), Points: *c}
		}
		g.combos[i] = int16(*c)
	}
	return g, nil
}

// Dice returns the current dice.
func (g Game) Dice() Dice { return g.dice }

// RerollsLeft returns the number of rerolls remaining this turn (0, 1, or 2).
func (g Game) RerollsLeft() uint8 { return g.rerollsLeft }

// Combo returns the recorded score for c and whether it has been filled.
func (g Game) Combo(c Combo) (points uint8, filled bool) {
	v := g.combos[c]
	if v == unfilled {
		return 0, false
	}
	return uint8(v), true
}

// Round returns the number of combos filled so far, in [0, 15].
func (g Game) Round() int {
	n := 0
	for _, v := range g.combos {
		if v != unfilled {
			n++
		}
	}
	return n
}

// Ended reports whether every combo has been filled.
func (g Game) Ended() bool {
	return g.Round() == NumCombos
}

// HasBonus reports whether the upper section (Ones..Sixes) sums to at
// least 63, the threshold for the 50-point bonus.
func (g Game) HasBonus() bool {
	var sum uint8
	for c := Ones; c <= Sixes; c++ {
		if v, filled := g.Combo(c); filled {
			sum += v
		}
	}
	return sum >= 63
}

// Score returns the total score including the upper-section bonus.
func (g Game) Score() int {
	total := 0
	for _, v := range g.combos {
		if v != unfilled {
			total += int(v)
		}
	}
	if g.HasBonus() {
		total += 50
	}
	return total
}

// SelectCombo fills the given combo with the score it earns on the current
// dice. If the game is not yet over, all five dice are rerolled and
// rerollsLeft resets to 2; otherwise rerollsLeft becomes 0. g is left
// unmodified on error.
func (g Game) SelectCombo(combo Combo, rng *rand.Rand) (Game, error) {
	if g.Ended() {
		return g, ErrGameEnded
	}
	if _, filled := g.Combo(combo); filled {
		return g, ErrComboAlreadyFilled
	}

	next := g
	next.combos[combo] = int16(Points(combo, g.dice))
	if next.Ended() {
		next.rerollsLeft = 0
	} else {
		next.dice = NewRandomDice(rng)
		next.rerollsLeft = 2
	}
	return next, nil
}

// Reroll replaces the given held die values with fresh rolls and consumes
// one reroll. g is left unmodified on error.
func (g Game) Reroll(toReroll []Die, rng *rand.Rand) (Game, error) {
	if g.Ended() {
		return g, ErrGameEnded
	}
	if g.rerollsLeft == 0 {
		return g, ErrNoRerollsLeft
	}

	dice, err := g.dice.Reroll(toReroll, rng)
	if err != nil {
		return g, err
	}

	next := g
	next.dice = dice
	next.rerollsLeft--
	return next, nil
}

// WithCombo sets combo's recorded score directly, bypassing dice/turn
// validation. Used only by the EV engine, which constructs synthetic Games
// from a GameState plus a candidate dice roll and never plays them forward
// through the normal state machine.
func (g Game) WithCombo(combo Combo, points uint8) Game {
	next := g
	next.combos[combo] = int16(points)
	return next
}

// WithRerollsLeft sets rerollsLeft directly, bypassing the turn state
// machine. Used only by the EV engine.
func (g Game) WithRerollsLeft(rerollsLeft uint8) Game {
	next := g
	next.rerollsLeft = rerollsLeft
	return next
}

// WithDice replaces the dice directly, bypassing Reroll's validation.
// Used only by the EV engine, which evaluates every possible post-reroll
// dice outcome rather than sampling one at random.
func (g Game) WithDice(dice Dice) Game {
	next := g
	next.dice = dice
	return next
}

func (g Game) String() string {
	return fmt.Sprintf("Game{dice=%s, rerollsLeft=%d, round=%d, score=%d}",
		g.dice, g.rerollsLeft, g.Round(), g.Score())
}
