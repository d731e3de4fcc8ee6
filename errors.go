package yatzy

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the validated mutation APIs in game.go and
// dice.go. None of these are ever panicked; they indicate a caller mistake
// or an out-of-range input, and the receiver is left unmodified.
var (
	ErrInvalidDieValue   = errors.New("die value must be between 1 and 6")
	ErrInvalidDice       = errors.New("dice do not match the requested replacement")
	ErrInvalidRerollsLeft = errors.New("rerolls_left must be between 0 and 2")
	ErrComboAlreadyFilled = errors.New("combo is already filled")
	ErrGameEnded          = errors.New("game has ended")
	ErrNoRerollsLeft      = errors.New("no rerolls left")
)

// InvalidComboError reports that a combo's recorded (or requested) points
// value does not belong to that combo's finite set of legal scores.
type InvalidComboError struct {
	Combo  Combo
	Points uint8
}

func (e *InvalidComboError) Error() string {
	return fmt.Sprintf("invalid score %d for combo %s", e.Points, e.Combo)
}

// Is allows errors.Is(err, new(InvalidComboError)) style matching on the
// sentinel shape, ignoring the specific combo/points payload.
func (e *InvalidComboError) Is(target error) bool {
	_, ok := target.(*InvalidComboError)
	return ok
}
