package submissionstats

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/BearBump/DVCPortal/internal/broker/messages"
	"github.com/stretchr/testify/require"
)

func event(kind, code string) messages.SubmissionCreated {
	return messages.SubmissionCreated{Kind: kind, Code: code, CreatedAt: time.Now().UTC()}
}

func TestAggregator_CountsByKind(t *testing.T) {
	a := New()
	ctx := context.Background()
	require.NoError(t, a.Handle(ctx, event(messages.KindContact, "DVC1")))
	require.NoError(t, a.Handle(ctx, event(messages.KindApplication, "HS2026000001")))
	require.NoError(t, a.Handle(ctx, event(messages.KindContact, "DVC2")))

	st := a.Stats()
	require.EqualValues(t, 3, st.TotalProcessed)
	require.EqualValues(t, 0, st.TotalErrors)
	require.Equal(t, map[string]int64{"contact": 2, "application": 1}, st.ByKind)
	require.NotNil(t, st.Last)
	require.Equal(t, "DVC2", st.Last.Code)
	require.NotNil(t, st.LastEventAt)

	// снимок не разделяет карту с агрегатором
	st.ByKind["contact"] = 100
	require.EqualValues(t, 2, a.Stats().ByKind["contact"])
}

func TestAggregator_SkipCountsErrors(t *testing.T) {
	a := New()
	_, err := messages.DecodeSubmissionCreated([]byte(`{"kind":"contact"}`))
	require.Error(t, err)
	a.Skip([]byte("x"), err)

	st := a.Stats()
	require.EqualValues(t, 1, st.TotalErrors)
	require.EqualValues(t, 0, st.TotalProcessed)
	require.Contains(t, st.LastError, "without kind or code")
	require.Nil(t, st.LastEventAt)
}

type flakyConsumer struct {
	calls atomic.Int32
	ev    messages.SubmissionCreated
}

func (c *flakyConsumer) Consume(
	ctx context.Context,
	handle func(ctx context.Context, m messages.SubmissionCreated) error,
	skip func(key []byte, err error),
) error {
	if c.calls.Add(1) == 1 {
		return errors.New("broker not available")
	}
	skip([]byte("bad"), errors.New("decode submission.created: unexpected EOF"))
	if err := handle(ctx, c.ev); err != nil {
		return err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestAggregator_RunRetriesConsumer(t *testing.T) {
	a := New()
	c := &flakyConsumer{ev: event(messages.KindFeedback, "FB12345678")}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx, c, 10*time.Millisecond) }()

	require.Eventually(t, func() bool {
		return a.Stats().TotalProcessed == 1
	}, 2*time.Second, 10*time.Millisecond)
	st := a.Stats()
	require.EqualValues(t, 1, st.TotalErrors)
	require.Equal(t, "FB12345678", st.Last.Code)

	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)
	require.EqualValues(t, 2, c.calls.Load())
}
