// Package cache stores raw model verdicts so re-running an unchanged batch
// does not re-spend model calls.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// VerdictKey generates a cache key for a pipeline stage and record title.
func VerdictKey(stage, title string) string {
	hash := sha256.Sum256([]byte(stage + "\x00" + title))
	return "leadscan:v1:" + hex.EncodeToString(hash[:])
}
