// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedRequests counts composed feed pages by mode (global, following,
	// author, trending).
	FeedRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedflow_feed_requests_total",
		Help: "Total number of feed pages composed, by feed mode",
	}, []string{"mode"})

	// NotificationsCreated counts dispatched notifications by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedflow_notifications_created_total",
		Help: "Total number of notifications created, by type",
	}, []string{"type"})

	// EngagementEvents counts like toggles, comments and shares.
	EngagementEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedflow_engagement_events_total",
		Help: "Total number of engagement events, by kind",
	}, []string{"kind"})

	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedflow_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// InitMetrics creates the fiberprometheus middleware serving HTTP-level
// request metrics for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}
