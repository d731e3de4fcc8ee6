package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/golang-yatzy/yatzy"
)

type Params struct {
	DBPath    string
	Benchmark int
	DebugAddr string
}

func main() {
	var params Params
	flag.StringVar(&params.DBPath, "db", "", "Path to a solved EV checkpoint file")
	flag.IntVar(&params.Benchmark, "benchmark", 0, "If > 0, play this many games under the optimal policy instead of prompting interactively, and report score statistics")
	flag.StringVar(&params.DebugAddr, "debug_addr", ":6069", "pprof debug listen address")
	flag.Parse()

	go func() {
		glog.Infof("pprof listening on %s", params.DebugAddr)
		glog.Error(http.ListenAndServe(params.DebugAddr, nil))
	}()

	if params.DBPath == "" {
		glog.Errorf("-db is required")
		os.Exit(1)
	}

	ev, err := loadEV(params.DBPath)
	if err != nil {
		glog.Errorf("unable to load EV table: %v", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	if params.Benchmark > 0 {
		runBenchmark(ev, params.Benchmark, rng)
	} else {
		playInteractive(ev, rng)
	}
}

func loadEV(path string) (map[yatzy.GameState]float64, error) {
	statesByEmpty := yatzy.EnumerateStatesByEmptyCount()
	index := yatzy.NewStateIndex(statesByEmpty)

	db, err := yatzy.NewFileDB(path, index)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return yatzy.LoadFloatTable(db), nil
}

func runBenchmark(ev map[yatzy.GameState]float64, n int, rng *rand.Rand) {
	ops := yatzy.FloatArith{}
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		score := float64(playOneGame(ev, ops, rng, false))
		sum += score
		sumSq += score * score
	}

	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	fmt.Printf("played %d games: mean score %.2f, stddev %.2f\n", n, mean, math.Sqrt(variance))
}

func playInteractive(ev map[yatzy.GameState]float64, rng *rand.Rand) {
	ops := yatzy.FloatArith{}
	score := playOneGame(ev, ops, rng, true)
	fmt.Printf("final score: %d\n", score)
}

// playOneGame plays a single game to completion. When interactive is true,
// the player is prompted for each decision and shown how it compares to the
// solver's optimum; otherwise the solver's own top choice is played, which
// is how runBenchmark samples games under the optimal policy.
func playOneGame(ev map[yatzy.GameState]float64, ops yatzy.FloatArith, rng *rand.Rand, interactive bool) int {
	g := yatzy.NewGame(rng)

	for !g.Ended() {
		fmt.Printf("dice: %s, rerolls left: %d, round %d/15\n", g.Dice(), g.RerollsLeft(), g.Round())

		choices, value := yatzy.BestChoices(g, ev, ops)
		best := choices[0]

		var chosen yatzy.Choice
		if interactive {
			chosen = promptForChoice(g)
			if choiceIn(chosen, choices) {
				fmt.Println("...selected action is optimal!")
			} else {
				fmt.Printf("...optimal action was %s (EV %.3f)\n", describeChoice(best), value)
			}
		} else {
			chosen = best
		}

		var err error
		switch chosen.Kind {
		case yatzy.ChoiceSelectCombo:
			g, err = g.SelectCombo(chosen.Combo, rng)
		case yatzy.ChoiceReroll:
			g, err = g.Reroll(chosen.Reroll, rng)
		}
		if err != nil {
			glog.Errorf("invalid move: %v", err)
			os.Exit(1)
		}
	}

	return g.Score()
}

func choiceIn(c yatzy.Choice, choices []yatzy.Choice) bool {
	for _, other := range choices {
		if c.Kind != other.Kind {
			continue
		}
		if c.Kind == yatzy.ChoiceSelectCombo {
			if c.Combo == other.Combo {
				return true
			}
			continue
		}
		// Rerolls match when they reroll the same multiset of values.
		var diff [yatzy.NumSides + 1]int
		for _, d := range c.Reroll {
			diff[d]++
		}
		for _, d := range other.Reroll {
			diff[d]--
		}
		if diff == [yatzy.NumSides + 1]int{} {
			return true
		}
	}
	return false
}

func describeChoice(c yatzy.Choice) string {
	if c.Kind == yatzy.ChoiceSelectCombo {
		return fmt.Sprintf("select %s", c.Combo)
	}
	return fmt.Sprintf("reroll %v", c.Reroll)
}

func promptForChoice(g yatzy.Game) yatzy.Choice {
	for {
		if g.RerollsLeft() > 0 {
			fmt.Printf("...select a combo to fill, or dice to reroll (e.g. '%s' or 'full_house'): ", "1,3")
		} else {
			fmt.Printf("...select a combo to fill: ")
		}

		var line string
		fmt.Scanln(&line)
		line = strings.TrimSpace(line)

		if combo, ok := parseCombo(line); ok {
			if _, filled := g.Combo(combo); filled {
				fmt.Printf("......%s is already filled\n", combo)
				continue
			}
			return yatzy.Choice{Kind: yatzy.ChoiceSelectCombo, Combo: combo}
		}

		if g.RerollsLeft() == 0 {
			fmt.Println("......no rerolls left, you must select a combo")
			continue
		}

		dice, err := parseDiceToReroll(line, g.Dice())
		if err != nil {
			fmt.Printf("......%v\n", err)
			continue
		}
		return yatzy.Choice{Kind: yatzy.ChoiceReroll, Reroll: dice}
	}
}

var comboByName = func() map[string]yatzy.Combo {
	m := make(map[string]yatzy.Combo, yatzy.NumCombos)
	for _, c := range yatzy.AllCombos {
		m[c.String()] = c
	}
	return m
}()

func parseCombo(s string) (yatzy.Combo, bool) {
	c, ok := comboByName[strings.ToLower(s)]
	return c, ok
}

func parseDiceToReroll(s string, dice yatzy.Dice) ([]yatzy.Die, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, nil
	}

	available := dice
	var result []yatzy.Die
	for _, part := range strings.Split(s, ",") {
		var v int
		if _, err := fmt.Sscanf(part, "%d", &v); err != nil || v < 1 || v > 6 {
			return nil, fmt.Errorf("not a valid die value: %q", part)
		}

		found := false
		for i, d := range available {
			if int(d) == v {
				available[i] = 0
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("die %d is not available to reroll", v)
		}
		result = append(result, yatzy.Die(v))
	}
	return result, nil
}
