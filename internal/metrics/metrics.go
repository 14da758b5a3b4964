package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "biznes"

// Metrics owns a dedicated registry so several instances can coexist in tests
type Metrics struct {
	registry *prometheus.Registry

	requestCounter   *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	statusCategories *prometheus.CounterVec

	kpiPopulations   *prometheus.CounterVec
	kpiRowsWritten   *prometheus.CounterVec
	forecasts        *prometheus.CounterVec
	usageRejections  *prometheus.CounterVec
	trendComputeTime *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		statusCategories: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_status_category_total",
				Help:      "Total number of responses by status category (2xx, 4xx, 5xx)",
			},
			[]string{"category"},
		),
		kpiPopulations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "kpi_populations_total",
				Help:      "KPI population runs by period and outcome",
			},
			[]string{"period", "result"},
		),
		kpiRowsWritten: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "kpi_rows_written_total",
				Help:      "KPI rows inserted or upserted",
			},
			[]string{"period"},
		),
		forecasts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "kpi_forecasts_total",
				Help:      "Forecast requests by outcome",
			},
			[]string{"category", "result"},
		),
		usageRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "usage_limit_rejections_total",
				Help:      "Creates rejected because the monthly quota was reached",
			},
			[]string{"resource", "tier"},
		),
		trendComputeTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "kpi_trend_duration_seconds",
				Help:      "Time spent building a KPI trend",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"category"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCounter,
		m.requestDuration,
		m.statusCategories,
		m.kpiPopulations,
		m.kpiRowsWritten,
		m.forecasts,
		m.usageRejections,
		m.trendComputeTime,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return ""
	}
}

// Middleware records request metrics. Paths are the route templates so ids do not explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		statusStr := strconv.Itoa(status)
		method := c.Request.Method

		m.requestCounter.WithLabelValues(method, path, statusStr).Inc()
		m.requestDuration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())
		if category := statusCategory(status); category != "" {
			m.statusCategories.WithLabelValues(category).Inc()
		}
	}
}

// ObservePopulation counts a population run and the rows it wrote
func (m *Metrics) ObservePopulation(period string, rows int, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.kpiPopulations.WithLabelValues(period, result).Inc()
	if err == nil && rows > 0 {
		m.kpiRowsWritten.WithLabelValues(period).Add(float64(rows))
	}
}

// ObserveForecast counts a forecast request
func (m *Metrics) ObserveForecast(category string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.forecasts.WithLabelValues(category, result).Inc()
}

// ObserveUsageRejection counts a create refused by the usage guard
func (m *Metrics) ObserveUsageRejection(resource, tier string) {
	m.usageRejections.WithLabelValues(resource, tier).Inc()
}

// ObserveTrend records how long a trend took to build
func (m *Metrics) ObserveTrend(category string, elapsed time.Duration) {
	m.trendComputeTime.WithLabelValues(category).Observe(elapsed.Seconds())
}
