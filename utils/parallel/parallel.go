package parallel

import (
	"sync"
)

// Run invokes fn for every index in [0, times) with at most concurrency
// goroutines in flight and returns the per-index results in order.
func Run(fn func(int) error, times, concurrency int) []error {
	var wg sync.WaitGroup
	var results = make([]error, times)
	c := make(chan struct{}, concurrency)
	for i := 0; i < times; i++ {
		wg.Add(1)
		c <- struct{}{}
		go func(index int) {
			defer wg.Done()
			results[index] = fn(index)
			<-c
		}(i)
	}

	wg.Wait()
	close(c)
	return results
}

// First returns the first non-nil error, or nil.
func First(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
