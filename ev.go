package yatzy

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/golang/glog"
)

// ComputeLevelFloat computes EV(state) for every state in one empty-count
// level, using the already-finished table ev for all smaller levels. States
// in a level are mutually independent, so they are fanned out across a
// worker pool, with each worker's results staged into an mmap-backed
// levelBuffer and merged into the returned map only once the whole level
// is done.
func ComputeLevelFloat(states []GameState, ev map[GameState]float64, workDir string) (map[GameState]float64, error) {
	buf, err := os.CreateTemp(workDir, "yatzy-level-*.mmap")
	if err != nil {
		return nil, fmt.Errorf("creating level buffer: %w", err)
	}
	path := buf.Name()
	buf.Close()
	defer os.Remove(path)

	lb, err := newLevelBuffer(path, len(states))
	if err != nil {
		return nil, fmt.Errorf("mapping level buffer: %w", err)
	}
	defer lb.Close()

	numWorkers := runtime.NumCPU()
	workCh := make(chan int, numWorkers)
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			ops := FloatArith{}
			for i := range workCh {
				lb.Set(i, ExpectedValueOfState(states[i], ev, ops))
			}
		}()
	}

	for i := range states {
		workCh <- i
		if (i+1)%100000 == 0 {
			glog.Infof("...queued %d/%d states", i+1, len(states))
		}
	}
	close(workCh)
	wg.Wait()

	result := make(map[GameState]float64, len(states))
	for i, s := range states {
		result[s] = lb.Get(i)
	}
	return result, nil
}

// SolveFloat computes the full float64 EV table bottom-up, one empty-count
// level at a time from 1 (fewest empty combos) up to 15 (the initial
// state), merging each level's result into the running table before
// starting the next.
func SolveFloat(statesByEmpty map[int][]GameState, workDir string) (map[GameState]float64, error) {
	ev := make(map[GameState]float64, 958974)
	for n := 1; n <= NumCombos; n++ {
		states := statesByEmpty[n]
		glog.Infof("computing expected values for %d states with %d empty combo(s)", len(states), n)

		level, err := ComputeLevelFloat(states, ev, workDir)
		if err != nil {
			return nil, err
		}
		for s, v := range level {
			ev[s] = v
		}
	}
	return ev, nil
}

// InitialStateExpectedValue is a convenience wrapper returning EV of the
// game's very first turn (all 15 combos empty), scenario S6 of the
// testable properties.
func InitialStateExpectedValue(ev map[GameState]float64) float64 {
	initial := GameState{NumbersTotal: 0}
	return ev[initial]
}
