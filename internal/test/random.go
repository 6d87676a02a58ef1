package test

import (
	"math/rand"
	"sync"
	"time"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random alphanumeric string whose
// length falls within the provided bounds, inclusive.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	rngMu.Lock()
	defer rngMu.Unlock()

	length := minLen + rng.Intn(maxLen-minLen+1)
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphanumeric[rng.Intn(len(alphanumeric))]
	}
	return string(buf)
}
