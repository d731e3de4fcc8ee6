package yatzy

import (
	"math"
	"os"
	"testing"
)

// TestExpectedValueOfInitialState is scenario S6: the expected value of the
// entire game under optimal play, computed from scratch over the full
// ~958,974-state table. This is the expensive, full-table test the testable
// properties call out as long-running, so it only runs when explicitly
// requested via YATZY_RUN_FULL_SOLVE=1.
func TestExpectedValueOfInitialState(t *testing.T) {
	if os.Getenv("YATZY_RUN_FULL_SOLVE") == "" {
		t.Skip("skipping full ~958,974-state solve; set YATZY_RUN_FULL_SOLVE=1 to run")
	}

	statesByEmpty := EnumerateStatesByEmptyCount()

	ev, err := SolveFloat(statesByEmpty, os.TempDir())
	if err != nil {
		t.Fatalf("SolveFloat: %v", err)
	}

	got := InitialStateExpectedValue(ev)
	const want = 253.5
	if math.Abs(got-want) > 1.0 {
		t.Errorf("expected value of the initial state = %v, want approximately 253-254", got)
	}
}
