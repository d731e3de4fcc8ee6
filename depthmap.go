package yatzy

import (
	"encoding/binary"
	"math"
	"os"

	"golang.org/x/sys/unix"
)

// levelBuffer is an mmap-backed scratch file holding one float64 per state
// in the level currently being computed, indexed by position in that
// level's state slice. Workers write their computed EV directly into the
// mapping (no per-write syscall); the caller merges the whole buffer into
// the shared EV map once every worker in the level has finished.
type levelBuffer struct {
	f    *os.File
	mmap []byte
}

func newLevelBuffer(path string, numStates int) (*levelBuffer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	fileSize := 8 * numStates
	if err := f.Truncate(int64(fileSize)); err != nil {
		_ = f.Close()
		return nil, err
	}

	flags := unix.MAP_SHARED
	prot := unix.PROT_READ | unix.PROT_WRITE
	mmap, err := unix.Mmap(int(f.Fd()), 0, fileSize, prot, flags)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &levelBuffer{f: f, mmap: mmap}, nil
}

func (lb *levelBuffer) Set(i int, v float64) {
	idx := 8 * i
	binary.LittleEndian.PutUint64(lb.mmap[idx:idx+8], math.Float64bits(v))
}

func (lb *levelBuffer) Get(i int) float64 {
	idx := 8 * i
	return math.Float64frombits(binary.LittleEndian.Uint64(lb.mmap[idx : idx+8]))
}

func (lb *levelBuffer) Close() error {
	defer lb.f.Close()

	if err := unix.Msync(lb.mmap, unix.MS_SYNC); err != nil {
		return err
	}
	if err := unix.Munmap(lb.mmap); err != nil {
		return err
	}

	return lb.f.Close()
}
