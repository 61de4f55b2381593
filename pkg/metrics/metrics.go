package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wbs_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 数据库查询延迟（秒）
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wbs_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"result"},
	)

	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wbs_db_slow_query_total",
			Help: "Queries slower than the configured threshold",
		},
	)

	// 报表缓存命中
	ReportCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wbs_report_cache_lookups_total",
			Help: "Report cache lookups by result",
		},
		[]string{"cache", "result"}, // result: hit, miss, error
	)

	MutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wbs_mutations_total",
			Help: "Write operations by entity and outcome",
		},
		[]string{"entity", "op", "status"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wbs_mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10),
		},
		[]string{"routing_key", "queue"},
	)

	ExportCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wbs_exports_total",
			Help: "Generated exports by format",
		},
		[]string{"format"},
	)

	// 客户端查询缓存失效
	QueryCacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wbs_client_query_invalidations_total",
			Help: "Client query cache entries marked stale, by key root",
		},
		[]string{"root"},
	)

	GanttInitAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wbs_gantt_init_attempts_total",
			Help: "Gantt widget initialization attempts by result",
		},
		[]string{"result"}, // result: success, retry, failed
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func ObserveDBQuery(duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	DBQueryDuration.WithLabelValues(result).Observe(duration.Seconds())
}

// IncrementSlowQuery counts one slow statement. The SQL text is not a label.
func IncrementSlowQuery(_ string, _ time.Duration) {
	SlowQueryCount.Inc()
}

func RecordCacheLookup(cache, result string) {
	ReportCacheLookups.WithLabelValues(cache, result).Inc()
}

func RecordMutation(entity, op string, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	MutationCount.WithLabelValues(entity, op, status).Inc()
}

// RecordMQConsumeLatency 记录 MQ 消费延迟
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

func IncrementExport(format string) {
	ExportCount.WithLabelValues(format).Inc()
}

func RecordQueryInvalidation(root string, n int) {
	QueryCacheInvalidations.WithLabelValues(root).Add(float64(n))
}

func RecordGanttInit(result string) {
	GanttInitAttempts.WithLabelValues(result).Inc()
}
