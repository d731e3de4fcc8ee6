package yatzy

import "sort"

// ChoiceKind discriminates the two shapes a Choice can take.
type ChoiceKind int

const (
	ChoiceSelectCombo ChoiceKind = iota
	ChoiceReroll
)

// Choice is one action available to a player: fill a specific combo with
// its current value, or reroll a subset of the current dice.
type Choice struct {
	Kind   ChoiceKind
	Combo  Combo // valid when Kind == ChoiceSelectCombo
	Reroll []Die // sorted values to reroll, valid when Kind == ChoiceReroll
}

func selectComboChoice(c Combo) Choice { return Choice{Kind: ChoiceSelectCombo, Combo: c} }
func rerollChoice(values []Die) Choice { return Choice{Kind: ChoiceReroll, Reroll: values} }

// choiceLess gives a fixed, deterministic ordering over choices so that
// float-mode ties resolve to one canonical winner: SelectCombo choices
// (ordered by scorecard position) sort before Reroll choices (ordered by
// the lexicographic order of the dice retained after rerolling).
func choiceLess(dice Dice, a, b Choice) bool {
	if a.Kind != b.Kind {
		return a.Kind == ChoiceSelectCombo
	}
	if a.Kind == ChoiceSelectCombo {
		return a.Combo < b.Combo
	}

	ra := dice.retainedAfter(a.Reroll)
	rb := dice.retainedAfter(b.Reroll)
	for i := range ra {
		if ra[i] != rb[i] {
			return ra[i] < rb[i]
		}
	}
	return false
}

type cacheKey struct {
	dice        Dice
	rerollsLeft uint8
}

type candidate[T any] struct {
	choice Choice
	value  T
}

// candidates enumerates every legal action from g together with its
// expected value, memoizing reroll sub-values in cache. The scorecard
// (which combos are filled) never changes across one outer call, so the
// only thing distinguishing a sub-problem is its dice and rerollsLeft,
// which is exactly what cacheKey captures.
func candidates[T any](g Game, ev map[GameState]T, ops Arith[T], cache map[cacheKey]T) []candidate[T] {
	var result []candidate[T]

	for _, c := range AllCombos {
		if _, filled := g.Combo(c); filled {
			continue
		}
		points := Points(c, g.Dice())
		filledGame := g.WithCombo(c, points)
		v := ops.Add(ops.FromPoints(points), bonusOrEV(filledGame, ev, ops))
		result = append(result, candidate[T]{choice: selectComboChoice(c), value: v})
	}

	if g.RerollsLeft() > 0 {
		result = append(result, rerollCandidates(g, ev, ops, cache)...)
	}

	return result
}

// rerollCandidates enumerates every distinct retained-multiset reachable
// by rerolling 1..5 of the current dice, deduplicating subsets that leave
// the same retained dice (which differ only in which indices of equal-
// valued dice were chosen).
func rerollCandidates[T any](g Game, ev map[GameState]T, ops Arith[T], cache map[cacheKey]T) []candidate[T] {
	dice := g.Dice()
	seen := make(map[Dice]struct{})
	var result []candidate[T]

	for mask := 1; mask < (1 << NumDice); mask++ {
		var rerolled []Die
		for i := 0; i < NumDice; i++ {
			if mask&(1<<i) != 0 {
				rerolled = append(rerolled, dice[i])
			}
		}
		retained := dice.retainedAfter(rerolled)
		if _, dup := seen[retained]; dup {
			continue
		}
		seen[retained] = struct{}{}

		k := len(rerolled)
		value := valueOfReroll(g, retained, k, ev, ops, cache)
		result = append(result, candidate[T]{choice: rerollChoice(rerolled), value: value})
	}

	return result
}

// valueOfReroll computes the expected value of keeping `retained` and
// rerolling the other k dice: a weighted sum over every possible outcome
// of those k fresh dice, recursing one rerollsLeft level down.
func valueOfReroll[T any](g Game, retained Dice, k int, ev map[GameState]T, ops Arith[T], cache map[cacheKey]T) T {
	total := ops.Zero()
	for _, outcome := range RollProb(k) {
		combined := combineDice(retained, k, outcome.Dice)
		child := g.WithDice(combined).WithRerollsLeft(g.RerollsLeft() - 1)
		childValue := value(child, ev, ops, cache)
		total = ops.Add(total, ops.Scale(outcome, childValue))
	}
	return total
}

// combineDice merges the first (NumDice-k) entries of retained (the kept
// dice) with the k freshly rolled values into a sorted full hand.
func combineDice(retained Dice, k int, rolled []Die) Dice {
	values := make([]Die, 0, NumDice)
	values = append(values, retained[:NumDice-k]...)
	values = append(values, rolled...)
	var d Dice
	copy(d[:], values)
	sortDice(&d)
	return d
}

// value returns the expected value of game g under optimal play, i.e.
// V0/V1/V2(g) depending on g.RerollsLeft(), memoized in cache.
func value[T any](g Game, ev map[GameState]T, ops Arith[T], cache map[cacheKey]T) T {
	key := cacheKey{dice: g.Dice(), rerollsLeft: g.RerollsLeft()}
	if v, ok := cache[key]; ok {
		return v
	}

	best := ops.Zero()
	first := true
	for _, cand := range candidates(g, ev, ops, cache) {
		if first || ops.Less(best, cand.value) {
			best = cand.value
			first = false
		}
	}

	cache[key] = best
	return best
}

// BestChoices returns every action tied for the highest expected value
// from g, together with that value. Ties are possible and meaningful: the
// caller (e.g. the HTTP collaborator) may want to present all of them.
func BestChoices[T any](g Game, ev map[GameState]T, ops Arith[T]) ([]Choice, T) {
	cache := make(map[cacheKey]T)
	cands := candidates(g, ev, ops, cache)

	best := ops.Zero()
	for i, cand := range cands {
		if i == 0 || ops.Less(best, cand.value) {
			best = cand.value
		}
	}

	var tied []Choice
	for _, cand := range cands {
		if !ops.Less(cand.value, best) && !ops.Less(best, cand.value) {
			tied = append(tied, cand.choice)
		}
	}

	sort.Slice(tied, func(i, j int) bool { return choiceLess(g.Dice(), tied[i], tied[j]) })
	return tied, best
}

// ExpectedValueOfState computes EV(state) = Σ over initial 5-dice rolls of
// P(roll) * V2(GameFromState(state, roll)), the defining recurrence of the
// bottom-up table built in ev.go.
func ExpectedValueOfState[T any](state GameState, ev map[GameState]T, ops Arith[T]) T {
	total := ops.Zero()
	cache := make(map[cacheKey]T)
	for _, outcome := range RollProb(NumDice) {
		var dice Dice
		copy(dice[:], outcome.Dice)
		g := GameFromState(state, dice)
		v := value(g, ev, ops, cache)
		total = ops.Add(total, ops.Scale(outcome, v))
	}
	return total
}
