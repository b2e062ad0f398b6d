package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// Hasher computes keyed HMAC-SHA256 digests, reusing hash instances through
// a pool. It is safe for concurrent use.
//
// The server stores refresh tokens only as Hasher digests, so a leaked
// refresh_tokens table cannot be replayed.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher keyed with hashKey.
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sum returns the raw HMAC-SHA256 digest of data.
func (h *Hasher) Sum(data []byte) []byte {
	hasher := h.pool.Get().(hash.Hash)
	hasher.Reset()

	hasher.Write(data)
	sum := hasher.Sum(nil)

	hasher.Reset()
	h.pool.Put(hasher)

	return sum
}

// HashString returns the hex-encoded digest of data.
func (h *Hasher) HashString(data string) string {
	return hex.EncodeToString(h.Sum([]byte(data)))
}

// HashString computes a one-off hex-encoded HMAC-SHA256 of data with hashKey.
//
// Example usage:
//
//	digest := utils.HashString(refreshToken, "refresh-hash-key")
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
