package yatzy

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
	"math/big"
	"os"

	"github.com/golang/glog"
)

// RatDB is the exact-rational analogue of DB: *big.Rat values are not
// fixed-width, so unlike FileDB's mmap'd flat file this persists as a
// sequential record log, matching the SPEC_FULL.md "Persisted EV table
// format" encoding of length-prefixed big.Int.Bytes() numer/denom pairs.
type RatDB interface {
	Put(state GameState, value *big.Rat)
	Get(state GameState) (*big.Rat, bool)
	io.Closer
}

// encodeRat writes v's numerator and denominator as length-prefixed
// big-endian byte strings (big.Int.Bytes()). Expected values are never
// negative, so no sign bit is carried.
func encodeRat(v *big.Rat) []byte {
	numBytes := v.Num().Bytes()
	denBytes := v.Denom().Bytes()

	buf := make([]byte, 0, 8+len(numBytes)+len(denBytes))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(numBytes)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, numBytes...)
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(denBytes)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, denBytes...)
	return buf
}

// decodeRat is the inverse of encodeRat.
func decodeRat(buf []byte) *big.Rat {
	numLen := binary.BigEndian.Uint32(buf[0:4])
	off := 4
	num := new(big.Int).SetBytes(buf[off : off+int(numLen)])
	off += int(numLen)

	denLen := binary.BigEndian.Uint32(buf[off : off+4])
	off += 4
	den := new(big.Int).SetBytes(buf[off : off+int(denLen)])

	return new(big.Rat).SetFrac(num, den)
}

// RatFileDB stores an exact rational EV table as a flat sequence of
// (GameState, ExpectedValue) records: a 3-byte GameState key, a 4-byte
// record length, and encodeRat's variable-width payload. The full table
// is read into an in-memory index on open (the file's own length prefixes
// make that a single sequential pass) so Get is a plain map lookup; Put
// both updates that index and appends a new record, matching checkpointed,
// append-friendly precompute the way FileDB does for float64.
type RatFileDB struct {
	f      *os.File
	w      *bufio.Writer
	values map[GameState]*big.Rat
}

// NewRatFileDB opens path, loading any existing records, and prepares it
// for further appends.
func NewRatFileDB(path string) (*RatFileDB, error) {
	values := make(map[GameState]*big.Rat)

	if f, err := os.Open(path); err == nil {
		r := bufio.NewReaderSize(f, 4*1024*1024)
		var lenBuf [4]byte
		var stateBuf [sizeOfGameState]byte
		for {
			if _, err := io.ReadFull(r, stateBuf[:]); err != nil {
				if err == io.EOF {
					break
				}
				f.Close()
				return nil, err
			}
			if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
				f.Close()
				return nil, err
			}
			payload := make([]byte, binary.BigEndian.Uint32(lenBuf[:]))
			if _, err := io.ReadFull(r, payload); err != nil {
				f.Close()
				return nil, err
			}

			state := GameStateFromBytes(stateBuf[:])
			values[state] = decodeRat(payload)
		}
		f.Close()
		glog.Infof("loaded %d entries from existing rational checkpoint %s", len(values), path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	out, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &RatFileDB{f: out, w: bufio.NewWriterSize(out, 4*1024*1024), values: values}, nil
}

func (db *RatFileDB) Put(state GameState, value *big.Rat) {
	db.values[state] = value

	payload := encodeRat(value)
	var stateBuf [sizeOfGameState]byte
	state.SerializeTo(stateBuf[:])
	db.w.Write(stateBuf[:])

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	db.w.Write(lenBuf[:])
	db.w.Write(payload)
}

func (db *RatFileDB) Get(state GameState) (*big.Rat, bool) {
	v, ok := db.values[state]
	return v, ok
}

func (db *RatFileDB) Close() error {
	if err := db.w.Flush(); err != nil {
		return err
	}
	return db.f.Close()
}

// LoadRatTable reads every entry already held by db into a plain map.
func LoadRatTable(db *RatFileDB) map[GameState]*big.Rat {
	result := make(map[GameState]*big.Rat, len(db.values))
	for s, v := range db.values {
		result[s] = v
	}
	return result
}
