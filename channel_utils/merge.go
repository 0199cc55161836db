package channel_utils

import (
	"sync"
)

// MergeChannels fans the inputs into one channel. The merged channel
// closes once every input closed. Drain goroutines live as long as
// their inputs, so callers with unbounded streams must not run this on
// a bounded worker pool.
func MergeChannels[T any](channels ...<-chan T) <-chan T {
	var wg sync.WaitGroup
	merged := make(chan T)

	output := func(c <-chan T) {
		for val := range c {
			merged <- val
		}
		wg.Done()
	}

	wg.Add(len(channels))
	for _, c := range channels {
		go output(c)
	}

	go func() {
		wg.Wait()
		close(merged)
	}()

	return merged
}
