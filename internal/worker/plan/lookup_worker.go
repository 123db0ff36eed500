package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/planinfo-service/internal/domain"
	"github.com/planinfo-service/internal/domain/repository"
	apperrors "github.com/planinfo-service/internal/pkg/errors"
	"github.com/planinfo-service/internal/pkg/metrics"
	"github.com/planinfo-service/internal/usecase/dto"
	"github.com/planinfo-service/internal/worker"
)

const (
	workerName      = "plan-lookup"
	maxBatchSize    = 20
	emptyQueueSleep = 100 * time.Millisecond
	errorSleep      = time.Second
	retryDelay      = 200 * time.Millisecond
)

// Message results for metrics
const (
	resultResolved  = "resolved"
	resultFailed    = "failed"
	resultMalformed = "malformed"
)

// PlanLookuper resolves plans for points and addresses
type PlanLookuper interface {
	LookupByPoint(ctx context.Context, point domain.GeoPoint, address string) (*domain.PlanLookup, error)
	LookupByAddress(ctx context.Context, req dto.AddressSearchRequest) (*dto.AddressSearchResponse, error)
}

// LookupWorker consumes lookup requests from stream:plan:lookup and publishes
// the outcome of each to stream:plan:done.
type LookupWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	lookups      PlanLookuper
	consumerName string
	maxRetries   int
}

func NewLookupWorker(
	streamRepo repository.StreamRepository,
	lookups PlanLookuper,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *LookupWorker {
	hostname, _ := os.Hostname()
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &LookupWorker{
		BaseWorker:   worker.NewBaseWorker(workerName, consumerGroup, logger),
		streamRepo:   streamRepo,
		lookups:      lookups,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
	}
}

func (w *LookupWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting plan lookup worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlanLookup, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Sleep(ctx, errorSleep)
			continue
		}
		if processed == 0 {
			w.Sleep(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch handles one read from the stream and returns the number of messages seen.
// A message is acknowledged once its result is published or it is malformed;
// messages whose result could not be published stay pending for redelivery.
func (w *LookupWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamPlanLookup, w.ConsumerGroup(), w.consumerName, maxBatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	ack := make([]string, 0, len(messages))
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			metrics.StreamMessagesProcessed.WithLabelValues(workerName, resultMalformed).Inc()
			ack = append(ack, msg.ID)
			continue
		}

		done := w.handle(ctx, event)
		if err := w.publish(ctx, done); err != nil {
			logger.Error("Failed to publish done event, leaving message pending",
				zap.String("request_id", event.RequestID.String()),
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}

		result := resultResolved
		if done.Error != "" {
			result = resultFailed
		}
		metrics.StreamMessagesProcessed.WithLabelValues(workerName, result).Inc()
		ack = append(ack, msg.ID)
	}

	if len(ack) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamPlanLookup, w.ConsumerGroup(), ack); err != nil {
			logger.Error("Failed to ack messages", zap.Error(err))
		}
	}

	return len(messages), nil
}

func (w *LookupWorker) handle(ctx context.Context, event *domain.PlanLookupEvent) *domain.PlanLookupDoneEvent {
	done := &domain.PlanLookupDoneEvent{RequestID: event.RequestID}

	var (
		lookup *domain.PlanLookup
		err    error
	)
	if event.HasCoordinates() {
		lookup, err = w.lookups.LookupByPoint(ctx, event.Point(), event.Address)
	} else {
		var resp *dto.AddressSearchResponse
		resp, err = w.lookups.LookupByAddress(ctx, dto.AddressSearchRequest{Query: event.Address})
		if resp != nil {
			lookup = &resp.Lookup
		}
	}

	if err != nil {
		done.Error = errorCode(err)
		w.Logger().Debug("Lookup rejected",
			zap.String("request_id", event.RequestID.String()),
			zap.String("error", done.Error))
		return done
	}

	done.Lookup = lookup
	return done
}

func (w *LookupWorker) publish(ctx context.Context, done *domain.PlanLookupDoneEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.streamRepo.PublishToStream(ctx, domain.StreamPlanDone, done); err == nil {
			return nil
		}
		if attempt < w.maxRetries {
			w.Sleep(ctx, retryDelay)
		}
	}
	return err
}

func parseMessage(msg domain.StreamMessage) (*domain.PlanLookupEvent, error) {
	var event domain.PlanLookupEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	if !event.HasCoordinates() && event.Address == "" {
		return nil, errors.New("event has neither coordinates nor address")
	}
	return &event, nil
}

// errorCode exposes the application error code, or a generic one for anything else
func errorCode(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return apperrors.ErrInternalServer.Code
}
