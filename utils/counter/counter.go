package counter

import (
	"log"
	"sync"
	"time"
)

// Counter tracks progress of a batch job and logs throughput as items
// complete. The indexer feeds it one Add per embedded chunk.
type Counter struct {
	count     int
	total     int
	mutex     sync.Mutex
	desc      string
	startTime time.Time
}

func NewCounter(opts ...Option) *Counter {
	options := &Options{}

	for _, opt := range opts {
		opt(options)
	}

	return &Counter{
		total:     options.total,
		desc:      options.desc,
		startTime: time.Now(),
	}
}

func (c *Counter) Add() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.count++
	elapsed := time.Since(c.startTime).Seconds()
	speed := float64(c.count) / elapsed
	remaining := float64(c.total-c.count) / speed
	log.Printf("%s: %d/%d, %.2f/s, ~%.1fs left",
		c.desc, c.count, c.total, speed, remaining)
}
