package yatzy

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/golang/glog"
)

// DB is the persistence interface for a float64 EV table. Implementations
// must tolerate concurrent Get calls; Put is only ever used by the
// single-writer precompute driver.
type DB interface {
	Put(state GameState, value float64)
	Get(state GameState) (float64, bool)
	io.Closer
}

// StateIndex assigns each reachable GameState a dense, sequential integer
// id, so that a fixed-width flat file can address an entry by simple
// offset instead of a hash lookup.
type StateIndex struct {
	states []GameState
	ids    map[GameState]int
}

// NewStateIndex builds an index over every state produced by
// EnumerateStatesByEmptyCount, ordered by increasing empty-count.
func NewStateIndex(statesByEmpty map[int][]GameState) *StateIndex {
	idx := &StateIndex{ids: make(map[GameState]int, 958974)}
	for n := 1; n <= NumCombos; n++ {
		for _, s := range statesByEmpty[n] {
			idx.ids[s] = len(idx.states)
			idx.states = append(idx.states, s)
		}
	}
	return idx
}

func (idx *StateIndex) ID(s GameState) (int, bool) {
	id, ok := idx.ids[s]
	return id, ok
}

func (idx *StateIndex) State(id int) GameState { return idx.states[id] }

func (idx *StateIndex) Len() int { return len(idx.states) }

// FileDB stores a float64 EV table in a memory-mapped flat file, one
// 8-byte entry per state, addressed by the dense id a StateIndex assigns
// it.
type FileDB struct {
	f     *os.File
	mmap  mmap.MMap
	index *StateIndex

	nPuts int
}

// NewFileDB opens (or initializes, NaN-filled) a flat file sized for
// index.Len() entries.
func NewFileDB(path string, index *StateIndex) (*FileDB, error) {
	fileSize := int64(8 * index.Len())

	var f *os.File
	stat, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		f, err = os.Create(path)
		if err != nil {
			return nil, err
		}
		glog.Infof("initializing new EV database at %s with %d entries", path, index.Len())
		w := bufio.NewWriterSize(f, 4*1024*1024)
		nanBits := make([]byte, 8)
		binary.LittleEndian.PutUint64(nanBits, math.Float64bits(math.NaN()))
		for i := 0; i < index.Len(); i++ {
			w.Write(nanBits)
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case stat.Size() != fileSize:
		return nil, fmt.Errorf(
			"%s is not the correct size for this state index: got %d, expected %d",
			path, stat.Size(), fileSize)
	default:
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0755)
		if err != nil {
			return nil, err
		}
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &FileDB{f: f, mmap: m, index: index}, nil
}

func (db *FileDB) Put(gs GameState, value float64) {
	id, ok := db.index.ID(gs)
	if !ok {
		panic(fmt.Errorf("state %s is not present in the state index", gs))
	}

	offset := 8 * id
	binary.LittleEndian.PutUint64(db.mmap[offset:offset+8], math.Float64bits(value))

	db.nPuts++
	if db.nPuts%100000 == 0 {
		glog.Infof("database has %d entries. last put: %s -> %v", db.nPuts, gs, value)
	}
}

func (db *FileDB) Get(gs GameState) (float64, bool) {
	id, ok := db.index.ID(gs)
	if !ok {
		return 0, false
	}

	offset := 8 * id
	value := math.Float64frombits(binary.LittleEndian.Uint64(db.mmap[offset : offset+8]))
	return value, !math.IsNaN(value)
}

func (db *FileDB) Close() error {
	defer db.f.Close()

	if err := db.mmap.Unmap(); err != nil {
		return err
	}
	return db.f.Close()
}

// LoadFloatTable reads every entry out of a FileDB into a plain map, the
// form the solver's BestChoices expects.
func LoadFloatTable(db *FileDB) map[GameState]float64 {
	result := make(map[GameState]float64, db.index.Len())
	for id := 0; id < db.index.Len(); id++ {
		state := db.index.State(id)
		if v, ok := db.Get(state); ok {
			result[state] = v
		}
	}
	return result
}
