package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/shop_demo/internal/logging"
)

// Publisher is satisfied by *mykafka.Producer.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, string, string, any) error { return nil }

const publishTimeout = 5 * time.Second

// publish never fails the caller; a broken broker only costs a log line.
func publish(ctx context.Context, p Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", topic, "type", event["type"], "error", err)
	}
}
