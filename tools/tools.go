package tools

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	randMu     sync.Mutex
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomString is safe for concurrent use; *rand.Rand alone is not.
func RandomString(length int) string {
	randMu.Lock()
	defer randMu.Unlock()
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[seededRand.Intn(len(charset))]
	}
	return string(b)
}

// ParseID parses a positive numeric id, returning 0 when the value is not one.
func ParseID(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
