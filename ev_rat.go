package yatzy

import (
	"math/big"
	"runtime"
	"sync"

	"github.com/golang/glog"
)

// ComputeLevelRat is the exact-rational analogue of ComputeLevelFloat.
// *big.Rat values are not fixed-width, so unlike the float path they
// cannot be staged into an mmap buffer; workers instead batch their
// results (batch size 1024) and merge them into the returned map under a
// mutex, to keep lock contention low without requiring fixed-size storage.
func ComputeLevelRat(states []GameState, ev map[GameState]*big.Rat) map[GameState]*big.Rat {
	result := make(map[GameState]*big.Rat, len(states))
	var mu sync.Mutex

	numWorkers := runtime.NumCPU()
	workCh := make(chan GameState, numWorkers)
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			ratWorker(workCh, ev, result, &mu)
		}()
	}

	for i, s := range states {
		workCh <- s
		if (i+1)%10000 == 0 {
			glog.Infof("...queued %d/%d states", i+1, len(states))
		}
	}
	close(workCh)
	wg.Wait()

	return result
}

const ratBatchSize = 1024

func ratWorker(workCh <-chan GameState, ev map[GameState]*big.Rat, result map[GameState]*big.Rat, mu *sync.Mutex) {
	ops := RatArith{}
	batchStates := make([]GameState, 0, ratBatchSize)
	batchValues := make([]*big.Rat, 0, ratBatchSize)

	flush := func() {
		mu.Lock()
		for i, s := range batchStates {
			result[s] = batchValues[i]
		}
		mu.Unlock()
		batchStates = batchStates[:0]
		batchValues = batchValues[:0]
	}

	for s := range workCh {
		v := ExpectedValueOfState(s, ev, ops)
		batchStates = append(batchStates, s)
		batchValues = append(batchValues, v)
		if len(batchStates) == ratBatchSize {
			flush()
		}
	}
	flush()
}

// SolveRat computes the full exact EV table bottom-up, one empty-count
// level at a time. This is the authoritative precomputation used to
// produce a checkpoint file; ToFloatTable converts its result into the
// float64 table used for serving. SolveFloat is a faster, lower-fidelity
// alternative that computes a float64 table directly.
func SolveRat(statesByEmpty map[int][]GameState) map[GameState]*big.Rat {
	ev := make(map[GameState]*big.Rat, 958974)
	for n := 1; n <= NumCombos; n++ {
		states := statesByEmpty[n]
		glog.Infof("computing expected values for %d states with %d empty combo(s)", len(states), n)

		level := ComputeLevelRat(states, ev)
		for s, v := range level {
			ev[s] = v
		}
	}
	return ev
}

// ToFloatTable converts an exact rational EV table into the float64 table
// used for fast serving.
func ToFloatTable(ev map[GameState]*big.Rat) map[GameState]float64 {
	result := make(map[GameState]float64, len(ev))
	for s, v := range ev {
		f, _ := v.Float64()
		result[s] = f
	}
	return result
}
