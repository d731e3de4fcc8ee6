package yatzy

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/bsm/extsort"
	"github.com/golang/glog"
)

const sizeOfIndexedState = 1 + sizeOfGameState // 1 byte empty-count + 3 byte state

// SaveStates writes every state from EnumerateStatesByEmptyCount to path,
// in increasing empty-count order, as a flat sequence of
// (emptyCount byte, GameState bytes) records.
func SaveStates(statesByEmpty map[int][]GameState, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, 4*1024*1024)
	buf := make([]byte, sizeOfIndexedState)
	total := 0
	for n := 1; n <= NumCombos; n++ {
		for _, s := range statesByEmpty[n] {
			buf[0] = byte(n)
			s.SerializeTo(buf[1:])
			if _, err := w.Write(buf); err != nil {
				return err
			}
			total++
		}
	}

	glog.Infof("saved %d game states to %s", total, path)
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// IterStates streams the (emptyCount, GameState) records written by
// SaveStates back out of path without loading them all into memory.
func IterStates(path string) (iter.Seq2[int, GameState], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return func(yield func(int, GameState) bool) {
		defer f.Close()
		r := bufio.NewReaderSize(f, 4*1024*1024)

		buf := make([]byte, sizeOfIndexedState)
		for {
			_, err := io.ReadFull(r, buf)
			if err == io.EOF {
				break
			} else if err != nil {
				panic(fmt.Errorf("error reading game states: %w", err))
			}

			n := int(buf[0])
			state := GameStateFromBytes(buf[1:])
			if !yield(n, state) {
				break
			}
		}
	}, nil
}

// SortedStates takes the enumerated state space and streams it back out
// through an external merge sort (github.com/bsm/extsort), ordered by
// increasing empty-count, for drivers that want to process the bottom-up
// sweep off of disk rather than holding all ~958,974 states in memory at
// once.
func SortedStates(statesByEmpty map[int][]GameState, workDir string) iter.Seq2[int, GameState] {
	sorter := extsort.New(&extsort.Options{
		WorkDir:    workDir,
		Compare:    compareIndexedStateByEmptyCount,
		BufferSize: 16 * 1024 * 1024,
	})

	total := 0
	for n := 1; n <= NumCombos; n++ {
		for _, s := range statesByEmpty[n] {
			data := make([]byte, sizeOfIndexedState)
			data[0] = byte(n)
			s.SerializeTo(data[1:])
			if err := sorter.Append(data); err != nil {
				panic(fmt.Errorf("error sorting states: %w", err))
			}
			total++
		}
	}
	glog.Infof("sorting %d game states by empty-count", total)

	it, err := sorter.Sort()
	if err != nil {
		panic(fmt.Errorf("error sorting game states: %w", err))
	}

	return func(yield func(int, GameState) bool) {
		for it.Next() {
			data := it.Data()
			n := int(data[0])
			state := GameStateFromBytes(data[1:])
			if !yield(n, state) {
				break
			}
		}

		if err := it.Err(); err != nil {
			panic(fmt.Errorf("error sorting game states: %w", err))
		}
		if err := it.Close(); err != nil {
			panic(fmt.Errorf("error sorting game states: %w", err))
		}
	}
}

func compareIndexedStateByEmptyCount(a, b []byte) int {
	if a[0] < b[0] {
		return -1
	} else if a[0] == b[0] {
		return 0
	}
	return 1
}
