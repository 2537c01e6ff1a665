// metrics/metrics.go
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics uygulamanın Prometheus toplayıcılarını tutar.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Öğrenme
	LessonsCompleted     prometheus.Counter
	XPCredited           prometheus.Counter
	LevelUps             prometheus.Counter
	AchievementsUnlocked prometheus.Counter

	// Kullanıcı önbelleği
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

// NewMetrics toplayıcıları bir kez kaydeder ve her çağrıda aynı örneği döner.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "hausa_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "route", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "hausa_http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "route"},
			),

			LessonsCompleted: promauto.NewCounter(prometheus.CounterOpts{
				Name: "hausa_lessons_completed_total",
				Help: "Total number of recorded lesson completions",
			}),
			XPCredited: promauto.NewCounter(prometheus.CounterOpts{
				Name: "hausa_xp_credited_total",
				Help: "Total XP credited to users",
			}),
			LevelUps: promauto.NewCounter(prometheus.CounterOpts{
				Name: "hausa_level_ups_total",
				Help: "Total number of level ups",
			}),
			AchievementsUnlocked: promauto.NewCounter(prometheus.CounterOpts{
				Name: "hausa_achievements_unlocked_total",
				Help: "Total number of achievements unlocked",
			}),

			CacheHits: promauto.NewCounter(prometheus.CounterOpts{
				Name: "hausa_user_cache_hits_total",
				Help: "User cache hits",
			}),
			CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
				Name: "hausa_user_cache_misses_total",
				Help: "User cache misses",
			}),
		}
	})
	return sharedMetrics
}
