package ports

import "time"

type MetricsProvider interface {
	IncrementHTTPRequests(route, status string)
	RecordHTTPRequestDuration(route, status string, duration time.Duration)

	IncrementDatabaseQueries(queryType string, success bool)
	RecordDatabaseQueryDuration(queryType string, duration time.Duration)

	IncrementCacheHits()
	IncrementCacheMisses()
	RecordCacheOperationDuration(operation string, duration time.Duration)

	IncrementPostOperations(operation string, success bool)
	IncrementUserLookups(success bool)

	SetServiceHealth(healthy bool)
}
