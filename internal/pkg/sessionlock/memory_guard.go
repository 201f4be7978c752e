package sessionlock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MemoryGuard is the single-process Guard used when Redis is not configured.
type MemoryGuard struct {
	locks *cache.Cache
	ttl   time.Duration
}

func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryGuard{locks: cache.New(ttl, 2*ttl), ttl: ttl}
}

func (g *MemoryGuard) TryAcquire(ctx context.Context, key string) (func(), bool, error) {
	k := lockKey(key)
	token := uuid.NewString()

	if err := g.locks.Add(k, token, g.ttl); err != nil {
		return nil, false, nil
	}

	release := func() {
		if held, found := g.locks.Get(k); found && held == token {
			g.locks.Delete(k)
		}
	}
	return release, true, nil
}
