package broker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	repo "propmedia/internal/domain/repository/broker"
)

// Publisher emits collection-change events to a redis stream so other
// services can react to committed media changes. Publishing is
// best-effort; the usecases log a failed publish and move on.
type Publisher struct {
	client  *Client
	timeout time.Duration
}

func NewPublisher(client *Client, cfg PublisherConfig) *Publisher {
	return &Publisher{
		client:  client,
		timeout: time.Duration(cfg.Timeout) * time.Millisecond,
	}
}

func (p *Publisher) Publish(ctx context.Context, event repo.Event) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	return p.client.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: p.client.stream,
		Values: map[string]any{
			"event":     event.Name,
			"parent_id": event.ParentID,
			"media_id":  event.MediaID,
		},
	}).Err()
}
