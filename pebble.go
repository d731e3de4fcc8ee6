package yatzy

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/pebble"
)

// PebbleDB is an alternative DB backend built on a Pebble LSM tree instead
// of a fixed-width mmap file. Unlike FileDB it does not require a
// precomputed StateIndex: GameState's own byte encoding is used directly
// as the key, which makes it the simpler choice for checkpointing a table
// that is still being built level by level (new keys arrive in whatever
// order the bottom-up sweep produces them, not in index order).
type PebbleDB struct {
	db *pebble.DB
}

// NewPebbleDB opens (creating if necessary) a Pebble store at path.
func NewPebbleDB(path string) (*PebbleDB, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleDB{db: db}, nil
}

func (p *PebbleDB) Put(state GameState, value float64) {
	key := state.ToBytes()
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(value))
	if err := p.db.Set(key, buf, pebble.NoSync); err != nil {
		panic(err)
	}
}

func (p *PebbleDB) Get(state GameState) (float64, bool) {
	key := state.ToBytes()
	value, closer, err := p.db.Get(key)
	if err == pebble.ErrNotFound {
		return 0, false
	} else if err != nil {
		panic(err)
	}
	defer closer.Close()

	return math.Float64frombits(binary.LittleEndian.Uint64(value)), true
}

// LoadAll drains the entire store into a plain map, the form the solver's
// BestChoices expects.
func (p *PebbleDB) LoadAll() (map[GameState]float64, error) {
	result := make(map[GameState]float64)
	iter, err := p.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		state := GameStateFromBytes(iter.Key())
		value := math.Float64frombits(binary.LittleEndian.Uint64(iter.Value()))
		result[state] = value
	}
	return result, iter.Error()
}

func (p *PebbleDB) Close() error {
	return p.db.Close()
}
