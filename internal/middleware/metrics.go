package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// SessionsCreated counts sessions established via login or signup.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_sessions_created_total",
		Help: "Total number of sessions created",
	})

	// SessionsRevoked counts sessions destroyed via logout or account deletion.
	SessionsRevoked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warbler_sessions_revoked_total",
		Help: "Total number of sessions revoked",
	})
)

// InitMetrics creates the Prometheus HTTP middleware for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
