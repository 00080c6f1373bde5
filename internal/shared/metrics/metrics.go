package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	UploadsRequested = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "waitlist", Name: "uploads_requested_total", Help: "Number of upload slots issued."},
	)
	UploadsConfirmed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "waitlist", Name: "uploads_confirmed_total", Help: "Number of confirmed uploads by terminal status."},
		[]string{"status"},
	)
	WaitlistSignups = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "waitlist", Name: "signups_total", Help: "Number of waitlist entries created."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "waitlist", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "waitlist", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

var registerOnce sync.Once

// RegisterCollectors registers all collectors exactly once per process.
// Safe to call from multiple router builds (tests construct several).
func RegisterCollectors(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(UploadsRequested)
		reg.MustRegister(UploadsConfirmed)
		reg.MustRegister(WaitlistSignups)
		reg.MustRegister(RateLimitAllowed)
		reg.MustRegister(RateLimitRejected)
	})
}
