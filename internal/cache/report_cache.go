package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
	"wbsplanner/pkg/circuitbreaker"
	"wbsplanner/pkg/metrics"
)

const (
	statisticsKey = "wbs:stats"
	ganttKeyFmt   = "wbs:gantt:%d"
)

// ReportCache stores derived read models (statistics and gantt payloads) in
// redis. Every call goes through a circuit breaker; a nil client or an open
// breaker behaves as a miss so reads fall through to postgres.
type ReportCache struct {
	rdb    redis.Cmdable
	ttl    time.Duration
	cb     *circuitbreaker.CircuitBreaker
	logger *zap.Logger
}

func NewReportCache(rdb redis.Cmdable, ttl time.Duration, logger *zap.Logger) *ReportCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ReportCache{
		rdb:    rdb,
		ttl:    ttl,
		cb:     circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger: logger,
	}
}

func GanttKey(projectID int) string {
	return fmt.Sprintf(ganttKeyFmt, projectID)
}

func (c *ReportCache) GetStatistics(ctx context.Context) (*model.Statistics, bool) {
	var s model.Statistics
	if !c.get(ctx, "statistics", statisticsKey, &s) {
		return nil, false
	}
	return &s, true
}

func (c *ReportCache) SetStatistics(ctx context.Context, s *model.Statistics) {
	c.set(ctx, statisticsKey, s)
}

func (c *ReportCache) GetGantt(ctx context.Context, projectID int) (*model.GanttData, bool) {
	var g model.GanttData
	if !c.get(ctx, "gantt", GanttKey(projectID), &g) {
		return nil, false
	}
	return &g, true
}

func (c *ReportCache) SetGantt(ctx context.Context, projectID int, g *model.GanttData) {
	c.set(ctx, GanttKey(projectID), g)
}

// EvictProject drops the project's gantt payload and the global statistics.
func (c *ReportCache) EvictProject(ctx context.Context, projectID int) error {
	return c.del(ctx, GanttKey(projectID), statisticsKey)
}

// EvictStatistics drops only the statistics entry.
func (c *ReportCache) EvictStatistics(ctx context.Context) error {
	return c.del(ctx, statisticsKey)
}

func (c *ReportCache) get(ctx context.Context, name, key string, out any) bool {
	if c.rdb == nil {
		return false
	}
	var raw []byte
	err := c.cb.Execute(func() error {
		b, err := c.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		raw = b
		return err
	})
	switch {
	case err != nil:
		c.logger.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheLookup(name, "error")
		return false
	case raw == nil:
		metrics.RecordCacheLookup(name, "miss")
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("Report cache entry corrupt", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheLookup(name, "error")
		return false
	}
	metrics.RecordCacheLookup(name, "hit")
	return true
}

func (c *ReportCache) set(ctx context.Context, key string, v any) {
	if c.rdb == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.cb.Execute(func() error {
		return c.rdb.Set(ctx, key, raw, c.ttl).Err()
	}); err != nil {
		c.logger.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *ReportCache) del(ctx context.Context, keys ...string) error {
	if c.rdb == nil {
		return nil
	}
	err := c.cb.Execute(func() error {
		return c.rdb.Del(ctx, keys...).Err()
	})
	if err != nil {
		c.logger.Warn("Report cache eviction failed", zap.Strings("keys", keys), zap.Error(err))
		return err
	}
	c.logger.Debug("Report cache evicted", zap.Strings("keys", keys))
	return nil
}
