package mqhandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"wbsplanner/internal/mq"
	"wbsplanner/pkg/util"
)

const handlerName = "project_changed"

// Evictor drops derived report caches. *cache.ReportCache implements it.
type Evictor interface {
	EvictProject(ctx context.Context, projectID int) error
	EvictStatistics(ctx context.Context) error
}

// OnceGuard is implemented by *util.Deduper.
type OnceGuard interface {
	AcquireOnce(ctx context.Context, handler, eventID string) bool
	Release(ctx context.Context, handler, eventID string)
}

// RetryCounter is implemented by *util.RetryCounter.
type RetryCounter interface {
	IncrementAndGet(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// DeadLetter is implemented by *mq.Publisher in pkg/mq.
type DeadLetter interface {
	PublishToDLQ(ctx context.Context, routingKey string, payload []byte, originalError string) error
}

type ProjectChangedHandler struct {
	cache      Evictor
	deduper    OnceGuard
	retries    RetryCounter
	dlq        DeadLetter
	maxRetries int64
	logger     *zap.Logger
}

func NewProjectChangedHandler(
	cache Evictor,
	deduper OnceGuard,
	retries RetryCounter,
	dlq DeadLetter,
	maxRetries int64,
	logger *zap.Logger,
) *ProjectChangedHandler {
	return &ProjectChangedHandler{
		cache:      cache,
		deduper:    deduper,
		retries:    retries,
		dlq:        dlq,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// Handle evicts the project's gantt payload and the global statistics.
// A returned error nacks the delivery for redelivery.
func (h *ProjectChangedHandler) Handle(ctx context.Context, evt mq.Event) error {
	var p mq.ProjectChangedPayload
	if err := json.Unmarshal(evt.Data, &p); err != nil || p.ProjectID <= 0 {
		if err == nil {
			err = fmt.Errorf("invalid project_id: %d", p.ProjectID)
		}
		h.logger.Error("Invalid ProjectChangedPayload, sending to DLQ",
			zap.String("event_id", evt.ID),
			zap.String("raw", string(evt.Data)),
			zap.Error(err),
		)
		h.deadLetter(ctx, evt, err)
		return nil
	}

	// Redis 去重（避免重复消费）
	if !h.deduper.AcquireOnce(ctx, handlerName, evt.ID) {
		return nil
	}

	h.logger.Info("Handling project.changed event",
		zap.String("event_id", evt.ID),
		zap.Int("project_id", p.ProjectID),
		zap.String("entity", p.Entity),
		zap.String("action", p.Action),
		zap.Int("entity_id", p.EntityID),
	)

	retryKey := util.FormatRetryKey(handlerName, evt.ID)
	retryCount, err := h.retries.IncrementAndGet(ctx, retryKey)
	if err != nil {
		h.logger.Warn("Retry counter unavailable", zap.String("event_id", evt.ID), zap.Error(err))
	}

	if err := h.evict(ctx, p.ProjectID); err != nil {
		h.deduper.Release(ctx, handlerName, evt.ID)
		h.logger.Warn("Cache eviction failed",
			zap.String("event_id", evt.ID),
			zap.Int("project_id", p.ProjectID),
			zap.Int64("retry", retryCount),
			zap.Error(err),
		)

		if retryCount >= h.maxRetries {
			h.logger.Error("Max retries exceeded, sending to DLQ",
				zap.String("event_id", evt.ID),
				zap.Int64("retry", retryCount),
			)
			h.deadLetter(ctx, evt, err)
			_ = h.retries.Reset(ctx, retryKey)
			return nil // ack
		}
		return err // nack → 重试
	}

	_ = h.retries.Reset(ctx, retryKey)
	h.logger.Info("Report caches evicted",
		zap.String("event_id", evt.ID),
		zap.Int("project_id", p.ProjectID),
	)
	return nil
}

func (h *ProjectChangedHandler) evict(ctx context.Context, projectID int) error {
	return errors.Join(
		h.cache.EvictProject(ctx, projectID),
		h.cache.EvictStatistics(ctx),
	)
}

func (h *ProjectChangedHandler) deadLetter(ctx context.Context, evt mq.Event, cause error) {
	if h.dlq == nil {
		return
	}
	body, err := json.Marshal(evt)
	if err == nil {
		err = h.dlq.PublishToDLQ(ctx, mq.EventProjectChanged, body, cause.Error())
	}
	if err != nil {
		h.logger.Error("Failed to publish to DLQ", zap.String("event_id", evt.ID), zap.Error(err))
	}
}
