package core

// limiter.go bounds how many datasets are loaded at once.
//
// Every load may hold up to SOURCE_MAX_BYTES in memory, so the HTTP layer
// takes a slot before loading. When all slots are busy a request waits up
// to maxWait and then fails with ErrBusy.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned when no load slot frees up within the wait time.
var ErrBusy = errors.New("too many concurrent loads")

// DefaultMaxConcurrentLoads is used when the configured limit is not positive.
const DefaultMaxConcurrentLoads = 8

// DefaultMaxWait is used when the configured wait is not positive.
const DefaultMaxWait = 10 * time.Second

// LoadLimiter caps concurrent dataset loads.
type LoadLimiter struct {
	sem     *semaphore.Weighted
	max     int
	maxWait time.Duration
	active  atomic.Int64
}

// NewLoadLimiter allows at most maxConcurrent loads at a time.
func NewLoadLimiter(maxConcurrent int, maxWait time.Duration) *LoadLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentLoads
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	return &LoadLimiter{
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		max:     maxConcurrent,
		maxWait: maxWait,
	}
}

// Acquire waits for a slot. It returns ErrBusy when maxWait expires first,
// or ctx's error when ctx ends first. Callers must Release after a nil return.
func (l *LoadLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrBusy
	}
	l.active.Add(1)
	return nil
}

// TryAcquire takes a slot without waiting.
func (l *LoadLimiter) TryAcquire() bool {
	if !l.sem.TryAcquire(1) {
		return false
	}
	l.active.Add(1)
	return true
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *LoadLimiter) Release() {
	l.active.Add(-1)
	l.sem.Release(1)
}

// LoadLimiterStatus is a snapshot of limiter usage.
type LoadLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status reports current usage.
func (l *LoadLimiter) Status() LoadLimiterStatus {
	active := int(l.active.Load())
	return LoadLimiterStatus{
		Active:        active,
		Available:     l.max - active,
		MaxConcurrent: l.max,
	}
}
