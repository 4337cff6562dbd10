package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	appointmentHandler "github.com/nazaclinic/booking-api/internal/handler/appointment"
	authHandler "github.com/nazaclinic/booking-api/internal/handler/auth"
	blockedslotHandler "github.com/nazaclinic/booking-api/internal/handler/blockedslot"
	healthHandler "github.com/nazaclinic/booking-api/internal/handler/health"
	patientHandler "github.com/nazaclinic/booking-api/internal/handler/patient"
	scheduleHandler "github.com/nazaclinic/booking-api/internal/handler/schedule"
	statsHandler "github.com/nazaclinic/booking-api/internal/handler/stats"
	"github.com/nazaclinic/booking-api/internal/middleware"
)

type Config struct {
	RateLimit rate.Limit
	RateBurst int
	CORS      middleware.CORSConfig
}

type Router struct {
	engine *gin.Engine
}

func New(
	cfg Config,
	auth *middleware.AuthMiddleware,
	scheduleH *scheduleHandler.Handler,
	appointmentH *appointmentHandler.Handler,
	blockedSlotH *blockedslotHandler.Handler,
	patientH *patientHandler.Handler,
	authH *authHandler.Handler,
	statsH *statsHandler.Handler,
	healthH *healthHandler.Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	healthH.RegisterRoutes(api)
	scheduleH.RegisterRoutes(api)
	authH.RegisterRoutes(api, auth)
	patientH.RegisterRoutes(api, auth)
	appointmentH.RegisterRoutes(api, auth)
	blockedSlotH.RegisterRoutes(api, auth)
	statsH.RegisterRoutes(api, auth)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
