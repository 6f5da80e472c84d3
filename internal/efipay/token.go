package efipay

import (
	"sync"
	"time"
)

// TokenCache holds one OAuth access token until shortly before it expires.
// It is safe for concurrent use.
type TokenCache struct {
	mu      sync.Mutex
	token   string
	expires time.Time
	margin  time.Duration
	now     func() time.Time
}

func NewTokenCache(margin time.Duration) *TokenCache {
	return &TokenCache{margin: margin, now: time.Now}
}

// Get returns the cached token if it is still valid for at least the margin.
func (c *TokenCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" || !c.now().Add(c.margin).Before(c.expires) {
		return "", false
	}
	return c.token, true
}

func (c *TokenCache) Set(token string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.expires = c.now().Add(ttl)
}

func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expires = time.Time{}
}
