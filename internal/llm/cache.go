package llm

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// replyCache stores assistant replies keyed by the exact request.
type replyCache struct {
	lru *expirable.LRU[string, string]
}

// newReplyCache creates a cache with the given capacity and TTL.
func newReplyCache(size int, ttl time.Duration) *replyCache {
	if size <= 0 {
		size = 128
	}
	if ttl == 0 {
		ttl = 15 * time.Minute // Default TTL
	}
	return &replyCache{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

// cacheKey hashes the request. Identical requests always map to the same key.
func cacheKey(req Request) string {
	data, _ := json.Marshal(struct {
		System   string    `json:"system"`
		Messages []Message `json:"messages"`
	}{req.System, req.Messages})
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c *replyCache) get(key string) (string, bool) {
	return c.lru.Get(key)
}

func (c *replyCache) set(key, reply string) {
	c.lru.Add(key, reply)
}

func (c *replyCache) size() int {
	return c.lru.Len()
}

func (c *replyCache) clear() {
	c.lru.Purge()
}
