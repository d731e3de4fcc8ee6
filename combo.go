package yatzy

import "fmt"

// Combo identifies one of the 15 Yatzy scoring categories.
type Combo int

const (
	Ones Combo = iota
	Twos
	Threes
	Fours
	Fives
	Sixes
	OnePair
	TwoPairs
	ThreeOfAKind
	FourOfAKind
	SmallStraight
	LargeStraight
	FullHouse
	Chance
	Yatzy

	NumCombos = int(Yatzy) + 1
)

// AllCombos lists every combo in the canonical scorecard order.
var AllCombos = [NumCombos]Combo{
	Ones, Twos, Threes, Fours, Fives, Sixes,
	OnePair, TwoPairs, ThreeOfAKind, FourOfAKind,
	SmallStraight, LargeStraight, FullHouse, Chance, Yatzy,
}

var comboNames = [NumCombos]string{
	"ones", "twos", "threes", "fours", "fives", "sixes",
	"one_pair", "two_pairs", "three_of_a_kind", "four_of_a_kind",
	"small_straight", "large_straight", "full_house", "chance", "yatzy",
}

func (c Combo) String() string {
	if c < 0 || int(c) >= NumCombos {
		return fmt.Sprintf("Combo(%d)", int(c))
	}
	return comboNames[c]
}

// IsUpperSection reports whether c counts toward the 63-point bonus.
func (c Combo) IsUpperSection() bool {
	return c >= Ones && c <= Sixes
}

// Points computes the score combo c earns on the given (sorted) dice,
// following the standard Scandinavian Yatzy rules.
func Points(combo Combo, dice Dice) uint8 {
	d := dice
	switch combo {
	case Ones, Twos, Threes, Fours, Fives, Sixes:
		face := Die(combo) + 1
		var n uint8
		for _, v := range d {
			if v == face {
				n++
			}
		}
		return n * face
	case OnePair:
		switch {
		case d[3] == d[4]:
			return 2 * d[3]
		case d[2] == d[3]:
			return 2 * d[2]
		case d[1] == d[2]:
			return 2 * d[1]
		case d[0] == d[1]:
			return 2 * d[0]
		default:
			return 0
		}
	case TwoPairs:
		switch {
		// The fifth die must differ from both pairs: a triple plus a pair
		// (a full house) does not count as two pairs.
		case d[0] == d[1] && d[1] != d[2] && d[2] == d[3] && d[3] != d[4]:
			return 2*d[0] + 2*d[2]
		case d[0] == d[1] && d[1] != d[2] && d[2] != d[3] && d[3] == d[4]:
			return 2*d[0] + 2*d[3]
		case d[0] != d[1] && d[1] == d[2] && d[2] != d[3] && d[3] == d[4]:
			return 2*d[1] + 2*d[3]
		default:
			return 0
		}
	case ThreeOfAKind:
		switch {
		case d[2] == d[3] && d[3] == d[4]:
			return 3 * d[2]
		case d[1] == d[2] && d[2] == d[3]:
			return 3 * d[1]
		case d[0] == d[1] && d[1] == d[2]:
			return 3 * d[0]
		default:
			return 0
		}
	case FourOfAKind:
		switch {
		case d[0] == d[1] && d[1] == d[2] && d[2] == d[3]:
			return 4 * d[0]
		case d[1] == d[2] && d[2] == d[3] && d[3] == d[4]:
			return 4 * d[1]
		default:
			return 0
		}
	case SmallStraight:
		if d == (Dice{1, 2, 3, 4, 5}) {
			return 15
		}
		return 0
	case LargeStraight:
		if d == (Dice{2, 3, 4, 5, 6}) {
			return 20
		}
		return 0
	case FullHouse:
		switch {
		case d[0] == d[1] && d[1] == d[2] && d[2] != d[3] && d[3] == d[4]:
			return 3*d[0] + 2*d[3]
		case d[0] == d[1] && d[1] != d[2] && d[2] == d[3] && d[3] == d[4]:
			return 2*d[0] + 3*d[2]
		default:
			return 0
		}
	case Chance:
		var sum uint8
		for _, v := range d {
			sum += v
		}
		return sum
	case Yatzy:
		if d[0] == d[1] && d[1] == d[2] && d[2] == d[3] && d[3] == d[4] {
			return 50
		}
		return 0
	default:
		panic(fmt.Errorf("unknown combo %d", int(combo)))
	}
}

// LegalScores returns the finite set of scores a freshly-filled combo c may
// record, used to validate Game construction from raw, untrusted input.
func LegalScores(c Combo) []uint8 {
	switch c {
	case Ones:
		return []uint8{0, 1, 2, 3, 4, 5}
	case Twos:
		return []uint8{0, 2, 4, 6, 8, 10}
	case Threes:
		return []uint8{0, 3, 6, 9, 12, 15}
	case Fours:
		return []uint8{0, 4, 8, 12, 16, 20}
	case Fives:
		return []uint8{0, 5, 10, 15, 20, 25}
	case Sixes:
		return []uint8{0, 6, 12, 18, 24, 30}
	case OnePair:
		return []uint8{0, 2, 4, 6, 8, 10, 12}
	case TwoPairs:
		return []uint8{0, 6, 8, 10, 12, 14, 16, 18, 20, 22}
	case ThreeOfAKind:
		return []uint8{0, 3, 6, 9, 12, 15, 18}
	case FourOfAKind:
		return []uint8{0, 4, 8, 12, 16, 20, 24}
	case SmallStraight:
		return []uint8{0, 15}
	case LargeStraight:
		return []uint8{0, 20}
	case FullHouse:
		return []uint8{0, 7, 8, 9, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 26, 27, 28}
	case Chance:
		return []uint8{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30}
	case Yatzy:
		return []uint8{0, 50}
	default:
		panic(fmt.Errorf("unknown combo %d", int(c)))
	}
}

// IsLegalScore reports whether points is one of combo c's legal scores.
func IsLegalScore(c Combo, points uint8) bool {
	for _, v := range LegalScores(c) {
		if v == points {
			return true
		}
	}
	return false
}
