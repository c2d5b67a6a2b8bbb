package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/BearBump/DVCPortal/internal/broker/messages"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	last []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.last = append([]kafka.Message{}, msgs...)
	return w.err
}

func TestProducer_Publish(t *testing.T) {
	fw := &fakeWriter{}
	p := newProducerWithWriter(fw)

	require.NoError(t, p.Publish(context.Background(), "t", []byte("k"), []byte("v")))
	require.Len(t, fw.last, 1)
	require.Equal(t, "t", fw.last[0].Topic)
	require.Equal(t, []byte("k"), fw.last[0].Key)
	require.Equal(t, []byte("v"), fw.last[0].Value)
}

func TestNewProducer(t *testing.T) {
	p := NewProducer([]string{"localhost:0"})
	require.NotNil(t, p)
}

func TestSubmissionsPublisher_KeyedByCode(t *testing.T) {
	fw := &fakeWriter{}
	pub := NewSubmissionsPublisher(newProducerWithWriter(fw), "portal.submissions")

	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, pub.PublishSubmission(context.Background(), messages.SubmissionCreated{
		Kind:      messages.KindApplication,
		Code:      "HS2026000042",
		ServiceID: "cccd-lan-dau",
		CreatedAt: at,
	}))

	require.Len(t, fw.last, 1)
	require.Equal(t, "portal.submissions", fw.last[0].Topic)
	require.Equal(t, []byte("HS2026000042"), fw.last[0].Key)
	require.JSONEq(t, `{"kind":"application","code":"HS2026000042","service_id":"cccd-lan-dau","created_at":"2026-03-01T08:00:00Z"}`, string(fw.last[0].Value))
}

func TestProducer_PublishJSON_MarshalError(t *testing.T) {
	p := newProducerWithWriter(&fakeWriter{})
	err := p.PublishJSON(context.Background(), "t", "k", func() {})
	require.Error(t, err)
	require.Contains(t, err.Error(), "marshal message")
}
