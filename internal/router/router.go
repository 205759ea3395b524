package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carex-health/carex-api/internal/handler"
	"github.com/carex-health/carex-api/internal/middleware"
	"github.com/carex-health/carex-api/pkg/metrics"
)

// Handler registers its routes on a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit middleware.RateLimiterConfig
	CORS      middleware.CORSConfig
}

type Router struct {
	engine   *gin.Engine
	guard    *middleware.GateGuard
	userH    Handler
	patientH Handler
	apptH    Handler
	gateH    Handler
	adminH   Handler
	metrics  *metrics.Metrics
}

func NewRouter(
	guard *middleware.GateGuard,
	userH Handler,
	patientH Handler,
	apptH Handler,
	gateH Handler,
	adminH Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		guard:    guard,
		userH:    userH,
		patientH: patientH,
		apptH:    apptH,
		gateH:    gateH,
		adminH:   adminH,
		metrics:  m,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
	)
	engine.Use(middleware.CORS(config.CORS))

	rateLimiter := middleware.NewRateLimiter(config.RateLimit)
	engine.Use(rateLimiter.RateLimit())

	return r
}

// Setup mounts every route. Admin routes sit behind the gate guard.
func (r *Router) Setup() {
	r.engine.GET("/health", handler.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	r.userH.RegisterRoutes(api)
	r.patientH.RegisterRoutes(api)
	r.apptH.RegisterRoutes(api)
	r.gateH.RegisterRoutes(api)

	admin := api.Group("/admin", r.guard.RequireUnlocked())
	r.adminH.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}
