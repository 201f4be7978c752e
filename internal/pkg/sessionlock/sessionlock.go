// Package sessionlock serializes work on a single chat session so that two
// turns never read the same history concurrently.
package sessionlock

import (
	"context"
	"time"
)

// Guard hands out short-lived exclusive locks keyed by session.
// TryAcquire does not wait: ok is false when the key is already held.
// The returned release func is safe to call once.
type Guard interface {
	TryAcquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

const DefaultTTL = 3 * time.Minute

func lockKey(key string) string {
	return "lock:chat_session:" + key
}
