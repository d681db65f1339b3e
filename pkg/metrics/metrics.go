// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - Counter（计数器）：只增不减的累计值，如结账总数、上架总数
// - Gauge（仪表盘）：可增可减的瞬时值，如正在处理的请求数
// - Histogram（直方图）：观测值的分布，自动计算分位数（P50、P90、P99）
//
// 使用示例：
//
//	metrics.InitMetrics()
//	http.Handle("/metrics", promhttp.Handler())
//
//	// 业务代码中记录指标
//	metrics.IncCounter(metrics.CheckoutsCompletedTotal)
//	metrics.ObserveHistogram(metrics.CheckoutDuration, time.Since(start).Seconds())
//
// 指标命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds），
// 避免高基数标签（不要用user_id做标签）。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initialized 标记是否已初始化（防止重复注册）
	initialized bool

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（/api/v1/books）、status（200/500）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// ListingsCreatedTotal 书籍上架总数（Counter）
	ListingsCreatedTotal prometheus.Counter

	// CheckoutsCompletedTotal 结账成功总数（Counter）
	CheckoutsCompletedTotal prometheus.Counter

	// CheckoutsFailedTotal 结账失败总数（Counter）
	CheckoutsFailedTotal prometheus.Counter

	// CheckoutDuration 结账耗时（Histogram）
	CheckoutDuration prometheus.Histogram

	// CartItemsAddedTotal 加入购物车总数（Counter）
	CartItemsAddedTotal prometheus.Counter

	// 缓存指标

	// CacheRequestsTotal 目录缓存请求总数（Counter）
	// 标签：result（hit/miss/error）
	CacheRequestsTotal *prometheus.CounterVec

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数（Counter）
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// Saga指标

	// SagaExecutionsTotal Saga执行总数（Counter）
	// 标签：result（success/failure）
	SagaExecutionsTotal *prometheus.CounterVec

	// SagaExecutionDuration Saga执行耗时（Histogram）
	SagaExecutionDuration prometheus.Histogram

	// SagaCompensationsTotal Saga补偿执行总数（Counter）
	SagaCompensationsTotal prometheus.Counter

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：exchange（交换机）、routing_key（路由键）
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数（Counter）
	// 标签：queue（队列名称）、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec

	// MessageProcessingDuration 消息处理耗时（Histogram）
	MessageProcessingDuration prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标
//
// 必须在程序启动时调用一次，用于注册所有指标到全局Registry
//
// 设计要点：
// 1. 使用promauto.New*自动注册到默认Registry
// 2. Counter使用*Vec支持标签（多维度统计）
// 3. Histogram的Buckets根据业务场景定制
func InitMetrics() {
	// 防止重复初始化
	if initialized {
		return
	}
	initialized = true

	// HTTP请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"}, // 标签：方法、路径、状态码
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"}, // 标签：方法、路径
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 业务指标
	ListingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "listings_created_total",
			Help: "书籍上架总数",
		},
	)

	CheckoutsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkouts_completed_total",
			Help: "结账成功总数",
		},
	)

	CheckoutsFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkouts_failed_total",
			Help: "结账失败总数",
		},
	)

	CheckoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "checkout_duration_seconds",
			Help: "结账耗时（秒）",
			// 结账涉及快照、扣库存、删购物车多步写入
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		},
	)

	CartItemsAddedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_items_added_total",
			Help: "加入购物车总数",
		},
	)

	// 缓存指标
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "目录缓存请求总数",
		},
		[]string{"result"}, // 标签：结果（hit/miss/error）
	)

	// 熔断器指标
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"}, // 标签：熔断器名称
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"}, // 标签：熔断器名称、结果（success/failure/rejected）
	)

	// Saga指标
	SagaExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_executions_total",
			Help: "Saga执行总数",
		},
		[]string{"result"}, // 标签：结果（success/failure）
	)

	SagaExecutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "saga_execution_duration_seconds",
			Help: "Saga执行耗时（秒）",
			// Saga执行时间较长（涉及对象存储调用）
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
	)

	SagaCompensationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "saga_compensations_total",
			Help: "Saga补偿执行总数",
		},
	)

	// 消息队列指标
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key"}, // 标签：交换机、路由键
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"}, // 标签：队列名称、结果（success/failure）
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "message_processing_duration_seconds",
			Help:    "消息处理耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
