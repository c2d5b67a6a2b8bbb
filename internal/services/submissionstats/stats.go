// Package submissionstats aggregates submission.created events for the
// worker's /stats endpoint.
package submissionstats

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BearBump/DVCPortal/internal/broker/messages"
)

type Aggregator struct {
	startedAtUnixNano int64

	totalProcessed atomic.Int64
	totalErrors    atomic.Int64
	lastEventNano  atomic.Int64

	mu        sync.Mutex
	byKind    map[string]int64
	last      *messages.SubmissionCreated
	lastError string

	now func() time.Time
}

func New() *Aggregator {
	return &Aggregator{
		startedAtUnixNano: time.Now().UTC().UnixNano(),
		byKind:            make(map[string]int64),
		now:               time.Now,
	}
}

// Handle counts one decoded event.
func (a *Aggregator) Handle(_ context.Context, m messages.SubmissionCreated) error {
	a.mu.Lock()
	a.byKind[m.Kind]++
	last := m
	a.last = &last
	a.mu.Unlock()

	a.totalProcessed.Add(1)
	a.lastEventNano.Store(a.now().UTC().UnixNano())
	return nil
}

// Skip records a payload the consumer could not decode.
func (a *Aggregator) Skip(key []byte, err error) {
	a.totalErrors.Add(1)
	a.mu.Lock()
	a.lastError = err.Error()
	a.mu.Unlock()
	slog.Warn("skip submission event", "key", string(key), "err", err)
}

type Stats struct {
	StartedAt      time.Time                   `json:"startedAt"`
	LastEventAt    *time.Time                  `json:"lastEventAt,omitempty"`
	TotalProcessed int64                       `json:"totalProcessed"`
	TotalErrors    int64                       `json:"totalErrors"`
	ByKind         map[string]int64            `json:"byKind"`
	Last           *messages.SubmissionCreated `json:"last,omitempty"`
	LastError      string                      `json:"lastError,omitempty"`
}

func (a *Aggregator) Stats() Stats {
	st := Stats{
		StartedAt:      time.Unix(0, a.startedAtUnixNano).UTC(),
		TotalProcessed: a.totalProcessed.Load(),
		TotalErrors:    a.totalErrors.Load(),
	}
	if n := a.lastEventNano.Load(); n > 0 {
		t := time.Unix(0, n).UTC()
		st.LastEventAt = &t
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	st.ByKind = make(map[string]int64, len(a.byKind))
	for k, v := range a.byKind {
		st.ByKind[k] = v
	}
	if a.last != nil {
		last := *a.last
		st.Last = &last
	}
	st.LastError = a.lastError
	return st
}

// Consumer is satisfied by kafka.SubmissionsConsumer.
type Consumer interface {
	Consume(
		ctx context.Context,
		handle func(ctx context.Context, m messages.SubmissionCreated) error,
		skip func(key []byte, err error),
	) error
}

// Run feeds events from c into the aggregator until ctx is done. A broken
// fetch is retried after retryDelay.
func (a *Aggregator) Run(ctx context.Context, c Consumer, retryDelay time.Duration) error {
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	for {
		err := c.Consume(ctx, a.Handle, a.Skip)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			a.mu.Lock()
			a.lastError = err.Error()
			a.mu.Unlock()
			slog.Error("consume submissions", "err", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
}
