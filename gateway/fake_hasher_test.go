package gateway

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// fakeHasher is a fast, deterministic stand-in for bcrypt. Digests are
// "fake$<n>$<plaintext>" so repeated hashes differ like a salted scheme.
type fakeHasher struct {
	mu       sync.Mutex
	n        int
	hashes   atomic.Int32
	verifies atomic.Int32
	hashErr  error
}

func (h *fakeHasher) Hash(plaintext string) (string, error) {
	h.hashes.Add(1)
	if h.hashErr != nil {
		return "", h.hashErr
	}
	h.mu.Lock()
	h.n++
	n := h.n
	h.mu.Unlock()
	return fmt.Sprintf("fake$%d$%s", n, plaintext), nil
}

func (h *fakeHasher) Verify(plaintext, digest string) bool {
	h.verifies.Add(1)
	parts := strings.SplitN(digest, "$", 3)
	return len(parts) == 3 && parts[0] == "fake" && parts[2] == plaintext
}
