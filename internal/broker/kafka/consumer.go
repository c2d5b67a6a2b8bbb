package kafka

import (
	"context"
	"time"

	"github.com/BearBump/DVCPortal/internal/broker/messages"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// SubmissionsConsumer reads submission.created events of the portal
// submissions topic.
type SubmissionsConsumer struct {
	r messageReader
}

func NewSubmissionsConsumer(brokers []string, topic, groupID string) *SubmissionsConsumer {
	cfg := kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}
	if groupID != "" {
		cfg.GroupTopics = []string{topic}
	} else {
		cfg.Topic = topic
	}
	return &SubmissionsConsumer{
		r: kafka.NewReader(cfg),
	}
}

func newSubmissionsConsumerWithReader(r messageReader) *SubmissionsConsumer {
	return &SubmissionsConsumer{r: r}
}

func (c *SubmissionsConsumer) Close() error {
	return c.r.Close()
}

// Consume decodes every message and passes it to handle, committing after
// success. A payload that does not decode goes to skip and is committed
// as well: retrying it would never succeed. An error from handle stops
// the loop with the message uncommitted.
func (c *SubmissionsConsumer) Consume(
	ctx context.Context,
	handle func(ctx context.Context, m messages.SubmissionCreated) error,
	skip func(key []byte, err error),
) error {
	for {
		msg, err := c.r.FetchMessage(ctx)
		if err != nil {
			return errors.Wrap(err, "fetch message")
		}

		ev, err := messages.DecodeSubmissionCreated(msg.Value)
		if err != nil {
			if skip != nil {
				skip(msg.Key, err)
			}
		} else if err := handle(ctx, ev); err != nil {
			return errors.Wrapf(err, "handle %s %s", ev.Kind, ev.Code)
		}

		if err := c.r.CommitMessages(ctx, msg); err != nil {
			return errors.Wrap(err, "commit message")
		}
	}
}
