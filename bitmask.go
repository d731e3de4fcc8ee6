package yatzy

// comboFlags packs the Empty/Filled status of all 15 combos into a single
// uint16, one bit per combo in scorecard order. This is the bitpacked form
// stored inside a GameState and on disk in the persisted EV table.
type comboFlags uint16

func (f comboFlags) Set(c Combo) comboFlags {
	return f | (1 << uint(c))
}

func (f comboFlags) Clear(c Combo) comboFlags {
	return f &^ (1 << uint(c))
}

func (f comboFlags) IsSet(c Combo) bool {
	return f&(1<<uint(c)) != 0
}

// EmptyCount returns how many of the 15 combos are still unset.
func (f comboFlags) EmptyCount() int {
	n := 0
	for _, c := range AllCombos {
		if !f.IsSet(c) {
			n++
		}
	}
	return n
}
