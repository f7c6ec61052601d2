package utils

import (
	"crypto/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	bidEntropyMu sync.Mutex
	bidEntropy   = ulid.Monotonic(rand.Reader, 0)
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateBidID returns a ULID; IDs generated in sequence sort in acceptance order
func GenerateBidID() string {
	bidEntropyMu.Lock()
	defer bidEntropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), bidEntropy).String()
}
