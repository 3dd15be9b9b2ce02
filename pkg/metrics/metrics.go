package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	dbQueriesTotal      *prometheus.CounterVec
	dbQueryDuration     *prometheus.HistogramVec
	dbConnectionsOpen   *prometheus.GaugeVec
	dbConnectionsIdle   *prometheus.GaugeVec
	eventsEmittedTotal  *prometheus.CounterVec
	holdsSweptTotal     prometheus.Counter
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		dbConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"state"}),

		dbConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"state"}),

		eventsEmittedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "domain_events_emitted_total",
			Help:        "Total number of emitted domain events",
			ConstLabels: constLabels,
		}, []string{"event"}),

		holdsSweptTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "holds_swept_total",
			Help:        "Total number of expired holds removed by the sweeper",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет gauge-метрики состояния пула соединений
func (m *Metrics) SetDBPoolStats(open, idle, inUse int) {
	m.dbConnectionsOpen.WithLabelValues("open").Set(float64(open))
	m.dbConnectionsOpen.WithLabelValues("in_use").Set(float64(inUse))
	m.dbConnectionsIdle.WithLabelValues("idle").Set(float64(idle))
}

// ObserveEventEmitted фиксирует публикацию доменного события
func (m *Metrics) ObserveEventEmitted(event string) {
	m.eventsEmittedTotal.WithLabelValues(event).Inc()
}

// AddHoldsSwept фиксирует количество удаленных просроченных холдов
func (m *Metrics) AddHoldsSwept(n int) {
	m.holdsSweptTotal.Add(float64(n))
}
