package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"time"
)

// Cache stores raw extraction responses so repeated analyses of the same
// document skip the LLM call.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from everything that shapes an extraction response:
// provider, model, the ordered system prompts, and the contract text.
func Key(provider, model string, systemPrompts []string, contractText string) string {
	h := sha256.New()
	_, _ = io.WriteString(h, provider)
	_, _ = io.WriteString(h, "\x00")
	_, _ = io.WriteString(h, model)
	for _, sp := range systemPrompts {
		_, _ = io.WriteString(h, "\x00")
		_, _ = io.WriteString(h, sp)
	}
	_, _ = io.WriteString(h, "\x00")
	_, _ = io.WriteString(h, contractText)
	return "clauseguard:v1:" + hex.EncodeToString(h.Sum(nil))
}
