package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/BearBump/DVCPortal/config"
	"github.com/BearBump/DVCPortal/internal/broker/kafka"
	"github.com/BearBump/DVCPortal/internal/services/submissionstats"
)

type submissionConsumer interface {
	submissionstats.Consumer
	Close() error
}

type workerFactories struct {
	newConsumer func(cfg *config.Config, topic, group string) submissionConsumer
}

func defaultWorkerFactories() workerFactories {
	return workerFactories{
		newConsumer: func(cfg *config.Config, topic, group string) submissionConsumer {
			return kafka.NewSubmissionsConsumer(cfg.Kafka.Brokers(), topic, group)
		},
	}
}

// RunPortalWorker consumes submission events into agg until ctx is done.
func RunPortalWorker(ctx context.Context, cfg *config.Config, f workerFactories, agg *submissionstats.Aggregator) error {
	topic := cfg.Kafka.SubmissionsTopicName
	if topic == "" {
		topic = "portal.submissions"
	}
	group := cfg.Portal.KafkaConsumerGroup
	if group == "" {
		group = "portal-worker"
	}

	consumer := f.newConsumer(cfg, topic, group)
	defer func() { _ = consumer.Close() }()

	slog.Info("kafka consumer started", "topic", topic, "group", group)
	return agg.Run(ctx, consumer, 2*time.Second)
}
