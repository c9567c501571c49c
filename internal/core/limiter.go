package core

// limiter.go bounds how many customs documents are assembled at once.
//
// Document generation reads every selected declaration plus reference data
// and builds the whole XML tree in memory, so a burst of requests can pin
// memory. The limiter is a semaphore: when all slots are taken, callers wait
// up to maxWait before failing with ErrTooManyDocuments. WaitForDrain lets
// shutdown wait for in-flight documents.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyDocuments is returned when all generation slots are occupied and
// the wait timeout expires. Clients should retry after a short delay.
var ErrTooManyDocuments = errors.New("too many document requests, please try again later")

// DefaultMaxConcurrentDocuments is the default limit for parallel generations.
const DefaultMaxConcurrentDocuments = 4

// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
const DefaultMaxWaitTime = 10 * time.Second

// DocumentLimiter controls concurrent document generation.
type DocumentLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewDocumentLimiter creates a limiter that allows at most maxConcurrent
// simultaneous generations.
func NewDocumentLimiter(maxConcurrent int, maxWait time.Duration) *DocumentLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentDocuments
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &DocumentLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire takes a slot, waiting up to maxWait.
// The caller MUST call Release when done.
func (l *DocumentLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyDocuments
	}
}

// Release returns a slot taken by Acquire.
func (l *DocumentLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of documents being generated.
func (l *DocumentLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until no document is being generated or ctx is done.
func (l *DocumentLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// DocumentLimiterStatus is a snapshot of the limiter state.
type DocumentLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for monitoring.
func (l *DocumentLimiter) Status() DocumentLimiterStatus {
	l.mu.RLock()
	active := l.active
	l.mu.RUnlock()

	return DocumentLimiterStatus{
		Active:        active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		MaxConcurrent: cap(l.semaphore),
	}
}
