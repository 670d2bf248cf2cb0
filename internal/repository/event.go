package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/amoeba-bot/internal/entity"
)

type EventRepository interface {
	Publish(ctx context.Context, event *entity.MatchEvent) error
}

type dbEvent struct {
	client  *redis.Client
	channel string
}

// NewEventRepository - publishes match events on the redis channel.
func NewEventRepository(client *redis.Client, channel string) EventRepository {
	return &dbEvent{
		client:  client,
		channel: channel,
	}
}

func (that *dbEvent) Publish(ctx context.Context, event *entity.MatchEvent) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, that.channel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

type discardEvent struct{}

// NewDiscardEventRepository - used when no feed is configured.
func NewDiscardEventRepository() EventRepository {
	return discardEvent{}
}

func (discardEvent) Publish(context.Context, *entity.MatchEvent) error {
	return nil
}
