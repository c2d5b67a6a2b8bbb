package kafka

import (
	"context"

	"github.com/BearBump/DVCPortal/internal/broker/messages"
)

// SubmissionsPublisher binds a producer to the submissions topic.
type SubmissionsPublisher struct {
	p     *Producer
	topic string
}

func NewSubmissionsPublisher(p *Producer, topic string) *SubmissionsPublisher {
	return &SubmissionsPublisher{p: p, topic: topic}
}

func (s *SubmissionsPublisher) PublishSubmission(ctx context.Context, msg messages.SubmissionCreated) error {
	return s.p.PublishJSON(ctx, s.topic, msg.Code, msg)
}
