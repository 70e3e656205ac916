// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package status

// DefaultRateWindow is the sample capacity used before the build
// announces its parallelism.
const DefaultRateWindow = 32

// SlidingRate estimates the current edge completion rate from the
// timestamps of the most recent completions. It holds at most one
// sample per distinct update hint (the finished-edge count), so
// rendering the status line twice without a completion in between
// does not skew the estimate.
//
// The samples live in a fixed-size circular buffer; once full, each
// new sample replaces the oldest.
type SlidingRate struct {
	times []int64
	// oldest is the buffer index of the oldest sample. count is the
	// number of samples stored, at most len(times).
	oldest int
	count  int

	lastHint int
	rate     float64
	defined  bool
}

// NewSlidingRate returns an empty window holding up to capacity
// samples. Capacities below 1 are raised to 1.
func NewSlidingRate(capacity int) *SlidingRate {
	if capacity < 1 {
		capacity = 1
	}
	return &SlidingRate{
		times:    make([]int64, capacity),
		lastHint: -1,
	}
}

// Capacity returns the maximum number of samples held.
func (window *SlidingRate) Capacity() int { return len(window.times) }

// Len returns the number of samples currently held.
func (window *SlidingRate) Len() int { return window.count }

// Update records a sample taken at timeMillis unless hint matches the
// previous update's hint. The rate is recomputed when the window spans
// a positive interval; otherwise the previous rate stands.
func (window *SlidingRate) Update(hint int, timeMillis int64) {
	if hint == window.lastHint {
		return
	}
	window.lastHint = hint

	capacity := len(window.times)
	if window.count == capacity {
		window.oldest = (window.oldest + 1) % capacity
		window.count--
	}
	window.times[(window.oldest+window.count)%capacity] = timeMillis
	window.count++

	first := window.times[window.oldest]
	last := window.times[(window.oldest+window.count-1)%capacity]
	if last > first {
		window.rate = float64(window.count-1) / (float64(last-first) / 1e3)
		window.defined = true
	}
}

// Rate returns the completions per second across the window. The
// boolean is false until two samples with distinct timestamps have
// been recorded.
func (window *SlidingRate) Rate() (float64, bool) {
	return window.rate, window.defined
}
