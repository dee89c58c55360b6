// Package reliability implements submission tracking for asynchronous Interface5 delivery.
package reliability

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SubmissionState represents the state of a tracked submission
type SubmissionState int

const (
	StatePending   SubmissionState = iota // Submission accepted, delivery not started
	StateSending                          // Request is on the wire
	StateDelivered                        // Endpoint answered 2xx
	StateFailed                           // Transport or HTTP error
)

// String returns the state name for logs.
func (s SubmissionState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSending:
		return "sending"
	case StateDelivered:
		return "delivered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submission is a snapshot of a tracked submission
type Submission struct {
	ID          string
	State       SubmissionState
	SubmittedAt time.Time
	CompletedAt time.Time
	StatusCode  int
	Receipt     []byte
	Err         string
}

// Done reports whether the submission reached a terminal state.
func (s Submission) Done() bool {
	return s.State == StateDelivered || s.State == StateFailed
}

type entry struct {
	sub  Submission
	done chan struct{}
}

// SubmissionTracker tracks asynchronous submissions until their outcome is
// known, then retains finished entries for the configured window so
// callers can still query the result.
type SubmissionTracker struct {
	mu          sync.RWMutex
	submissions map[string]*entry
	retention   time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewSubmissionTracker creates a new submission tracker
func NewSubmissionTracker(retention time.Duration) *SubmissionTracker {
	tracker := &SubmissionTracker{
		submissions: make(map[string]*entry),
		retention:   retention,
		stop:        make(chan struct{}),
	}

	// Start cleanup goroutine
	go tracker.cleanupExpiredSubmissions()

	return tracker
}

// Close stops the retention cleanup goroutine. Tracked submissions stay
// queryable; Close only ends their eventual expiry. Safe to call more
// than once.
func (t *SubmissionTracker) Close() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})
}

// Track starts tracking a submission
func (t *SubmissionTracker) Track(submissionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.submissions[submissionID] = &entry{
		sub: Submission{
			ID:          submissionID,
			State:       StatePending,
			SubmittedAt: time.Now(),
		},
		done: make(chan struct{}),
	}
}

// MarkSending marks a submission as being sent
func (t *SubmissionTracker) MarkSending(submissionID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, exists := t.submissions[submissionID]
	if !exists {
		return fmt.Errorf("submission %s not tracked", submissionID)
	}

	e.sub.State = StateSending

	return nil
}

// RecordDelivery records a successful delivery
func (t *SubmissionTracker) RecordDelivery(submissionID string, statusCode int, receipt []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, exists := t.submissions[submissionID]
	if !exists {
		return fmt.Errorf("submission %s not tracked", submissionID)
	}

	e.sub.State = StateDelivered
	e.sub.StatusCode = statusCode
	e.sub.Receipt = receipt
	e.sub.CompletedAt = time.Now()
	close(e.done)

	return nil
}

// RecordFailure records a delivery failure
func (t *SubmissionTracker) RecordFailure(submissionID string, err error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, exists := t.submissions[submissionID]
	if !exists {
		return fmt.Errorf("submission %s not tracked", submissionID)
	}

	e.sub.State = StateFailed
	e.sub.Err = err.Error()
	e.sub.CompletedAt = time.Now()
	close(e.done)

	return nil
}

// Get retrieves a snapshot of a tracked submission
func (t *SubmissionTracker) Get(submissionID string) (Submission, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, exists := t.submissions[submissionID]
	if !exists {
		return Submission{}, false
	}
	return e.sub, true
}

// Remove removes a submission from tracking
func (t *SubmissionTracker) Remove(submissionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.submissions, submissionID)
}

// Wait blocks until the submission reaches a terminal state or the context
// is cancelled, and returns the final snapshot.
func (t *SubmissionTracker) Wait(ctx context.Context, submissionID string) (Submission, error) {
	t.mu.RLock()
	e, exists := t.submissions[submissionID]
	t.mu.RUnlock()

	if !exists {
		return Submission{}, fmt.Errorf("submission %s not tracked", submissionID)
	}

	select {
	case <-ctx.Done():
		return Submission{}, ctx.Err()
	case <-e.done:
	}

	sub, _ := t.Get(submissionID)
	return sub, nil
}

// cleanupExpiredSubmissions removes finished submissions older than the
// retention window until Close is called
func (t *SubmissionTracker) cleanupExpiredSubmissions() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			t.removeExpired()
		}
	}
}

func (t *SubmissionTracker) removeExpired() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	for id, e := range t.submissions {
		if e.sub.Done() && now.Sub(e.sub.CompletedAt) > t.retention {
			delete(t.submissions, id)
		}
	}
}
