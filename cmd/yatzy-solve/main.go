package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/golang-yatzy/yatzy"
)

type Params struct {
	WorkDir   string
	OutDir    string
	Float     bool
	DebugAddr string
}

func main() {
	var params Params
	flag.StringVar(&params.WorkDir, "work_dir", os.TempDir(), "Scratch directory for the float solve's per-level buffers")
	flag.StringVar(&params.OutDir, "out_dir", "checkpoints", "Directory to write checkpoint files to")
	flag.BoolVar(&params.Float, "float", false, "Solve with float64 arithmetic instead of exact rationals")
	flag.StringVar(&params.DebugAddr, "debug_addr", ":6069", "pprof debug listen address")
	flag.Parse()

	go func() {
		glog.Infof("pprof listening on %s", params.DebugAddr)
		glog.Error(http.ListenAndServe(params.DebugAddr, nil))
	}()

	if err := os.MkdirAll(params.OutDir, 0755); err != nil {
		glog.Errorf("unable to create output directory: %v", err)
		os.Exit(1)
	}

	glog.Info("enumerating reachable game states")
	statesByEmpty := yatzy.EnumerateStatesByEmptyCount()
	total := 0
	for _, states := range statesByEmpty {
		total += len(states)
	}
	glog.Infof("enumerated %d reachable game states", total)

	if params.Float {
		solveFloat(statesByEmpty, params)
	} else {
		solveRat(statesByEmpty, params)
	}
}

func solveFloat(statesByEmpty map[int][]yatzy.GameState, params Params) {
	ev, err := yatzy.SolveFloat(statesByEmpty, params.WorkDir)
	if err != nil {
		glog.Errorf("error solving for expected values: %v", err)
		os.Exit(1)
	}

	glog.Infof("initial state expected value: %v", yatzy.InitialStateExpectedValue(ev))

	index := yatzy.NewStateIndex(statesByEmpty)
	path := resumeOrNewCheckpointPath(params.OutDir, "float", index)
	db, err := yatzy.NewFileDB(path, index)
	if err != nil {
		glog.Errorf("error opening checkpoint database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	for s, v := range ev {
		db.Put(s, v)
	}
	glog.Infof("wrote checkpoint to %s", path)
}

func solveRat(statesByEmpty map[int][]yatzy.GameState, params Params) {
	ev := yatzy.SolveRat(statesByEmpty)

	// Persist the authoritative exact table first: this is the only place
	// the rational on-disk format SPEC_FULL.md documents is ever written.
	ratPath := resumeOrNewRatCheckpointPath(params.OutDir)
	ratDB, err := yatzy.NewRatFileDB(ratPath)
	if err != nil {
		glog.Errorf("error opening rational checkpoint database: %v", err)
		os.Exit(1)
	}
	for s, v := range ev {
		ratDB.Put(s, v)
	}
	if err := ratDB.Close(); err != nil {
		glog.Errorf("error closing rational checkpoint database: %v", err)
		os.Exit(1)
	}
	glog.Infof("wrote exact rational checkpoint to %s", ratPath)

	// Derive the float64 checkpoint cmd/yatzy-serve loads from the exact
	// table, rather than recomputing it with FloatArith.
	floatEV := yatzy.ToFloatTable(ev)
	glog.Infof("initial state expected value: %v", yatzy.InitialStateExpectedValue(floatEV))

	index := yatzy.NewStateIndex(statesByEmpty)
	path := resumeOrNewCheckpointPath(params.OutDir, "float-from-rat", index)
	db, err := yatzy.NewFileDB(path, index)
	if err != nil {
		glog.Errorf("error opening checkpoint database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	for s, v := range floatEV {
		db.Put(s, v)
	}
	glog.Infof("wrote float checkpoint to %s", path)
}

func checkpointPath(dir, kind string) string {
	name := fmt.Sprintf("checkpoint-%s-%s", kind, time.Now().UTC().Format(time.RFC3339))
	return filepath.Join(dir, name)
}

// resumeOrNewCheckpointPath looks for the most recent checkpoint-<kind>-*
// file in dir whose size matches the current state index, so an interrupted
// run can resume writing into it (NewFileDB reopens a same-sized file
// in place rather than re-initializing it). If none is found, a fresh
// timestamped checkpoint path is returned.
func resumeOrNewCheckpointPath(dir, kind string, index *yatzy.StateIndex) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return checkpointPath(dir, kind)
	}

	prefix := fmt.Sprintf("checkpoint-%s-", kind)
	wantSize := int64(8 * index.Len())
	var candidates []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Size() != wantSize {
			continue
		}
		candidates = append(candidates, e.Name())
	}
	if len(candidates) == 0 {
		return checkpointPath(dir, kind)
	}

	sort.Strings(candidates)
	latest := candidates[len(candidates)-1]
	glog.Infof("resuming checkpoint %s", latest)
	return filepath.Join(dir, latest)
}

// resumeOrNewRatCheckpointPath is resumeOrNewCheckpointPath's counterpart
// for the variable-width rational checkpoint format: RatFileDB's records
// are self-delimiting, so resuming only requires finding the most recent
// checkpoint-rat-* file, with no fixed expected size to validate against.
func resumeOrNewRatCheckpointPath(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return checkpointPath(dir, "rat")
	}

	prefix := "checkpoint-rat-"
	var candidates []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		candidates = append(candidates, e.Name())
	}
	if len(candidates) == 0 {
		return checkpointPath(dir, "rat")
	}

	sort.Strings(candidates)
	latest := candidates[len(candidates)-1]
	glog.Infof("resuming rational checkpoint %s", latest)
	return filepath.Join(dir, latest)
}
