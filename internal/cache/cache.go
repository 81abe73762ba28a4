package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a small byte-value store with per-entry expiry
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
}

// CacheKey hashes a lookup name into a namespaced key
func CacheKey(name string) string {
	hash := sha256.Sum256([]byte(name))
	return "multisell:v1:" + hex.EncodeToString(hash[:])
}
