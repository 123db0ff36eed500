package repository

import (
	"context"

	"github.com/planinfo-service/internal/domain"
)

// StreamRepository - Redis Streams access
type StreamRepository interface {
	// ConsumeBatch reads up to maxCount new messages for the consumer without blocking long
	ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error)

	// AckMessages acknowledges processed messages
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error

	// CreateConsumerGroup creates the consumer group (idempotent)
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream publishes data as JSON under the "data" field
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
