package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenBucket is a token-bucket rate limiter. Indexing uses it to throttle
// calls to the embedding service so a large corpus does not trip the
// provider's rate limits.
type TokenBucket struct {
	rate       float64 // tokens generated per second
	capacity   int64
	tokens     float64
	lastUpdate time.Time
	mutex      sync.Mutex
}

func NewTokenBucket(rate float64, capacity int64) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastUpdate: time.Now(),
	}
}

// Wait blocks until a token is available or the context is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		tb.mutex.Lock()
		tb.refill()
		if tb.tokens >= 1 {
			tb.tokens--
			tb.mutex.Unlock()
			return nil
		}
		waitTime := time.Duration((1 - tb.tokens) / tb.rate * float64(time.Second))
		tb.mutex.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

// refill adds the tokens generated since the last update. Callers hold the
// mutex.
func (tb *TokenBucket) refill() {
	now := time.Now()
	elapsed := now.Sub(tb.lastUpdate).Seconds()
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed*tb.rate)
	tb.lastUpdate = now
}
