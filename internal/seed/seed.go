package seed

import (
	"crypto/md5"
	"encoding/binary"
	"math/rand/v2"
	"strconv"
)

// Derive hashes master through each label in turn. Every step rehashes the
// previous value as md5("<prev>:<label>") truncated to 64 bits, so the same
// master and labels always give the same seed.
func Derive(master uint64, labels ...string) uint64 {
	h := master
	for _, label := range labels {
		sum := md5.Sum([]byte(strconv.FormatUint(h, 10) + ":" + label))
		h = binary.BigEndian.Uint64(sum[:8])
	}
	return h
}

// Index is shorthand for labels that carry a number (octave, variation).
func Index(i int) string { return strconv.Itoa(i) }

// NewRNG returns a generator scoped to a single seed. Callers never share one
// across synthesis calls.
func NewRNG(s uint64) *rand.Rand {
	return rand.New(rand.NewPCG(s, s^0x9E3779B97F4A7C15))
}
