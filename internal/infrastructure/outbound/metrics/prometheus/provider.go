package prometheus

import (
	"strconv"
	"time"

	ports "inkwell-blog-service/internal/domain/ports/output"
)

type PrometheusMetricsProvider struct{}

func NewPrometheusMetricsProvider() ports.MetricsProvider {
	return &PrometheusMetricsProvider{}
}

func (p *PrometheusMetricsProvider) IncrementHTTPRequests(route, status string) {
	HTTPRequestsTotal.WithLabelValues(route, status).Inc()
}

func (p *PrometheusMetricsProvider) RecordHTTPRequestDuration(route, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(route, status).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementDatabaseQueries(queryType string, success bool) {
	DatabaseQueriesTotal.WithLabelValues(queryType, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) RecordDatabaseQueryDuration(queryType string, duration time.Duration) {
	DatabaseQueryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementCacheHits() {
	CacheHitsTotal.Inc()
}

func (p *PrometheusMetricsProvider) IncrementCacheMisses() {
	CacheMissesTotal.Inc()
}

func (p *PrometheusMetricsProvider) RecordCacheOperationDuration(operation string, duration time.Duration) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementPostOperations(operation string, success bool) {
	PostOperationsTotal.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) IncrementUserLookups(success bool) {
	UserLookupsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (p *PrometheusMetricsProvider) SetServiceHealth(healthy bool) {
	if healthy {
		ServiceHealth.Set(1)
	} else {
		ServiceHealth.Set(0)
	}
}
