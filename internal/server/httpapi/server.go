// Package httpapi serves the FitQuest JSON API over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/fitquest/internal/logging"
	"github.com/dmitrijs2005/fitquest/internal/server/config"
	"github.com/dmitrijs2005/fitquest/internal/server/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	metricsPath     = "/metrics"
	shutdownTimeout = 10 * time.Second
	limiterTTL      = 10 * time.Minute
)

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	activity  ActivityService
	metrics   *metrics.Metrics
	pinger    Pinger
	jwtSecret []byte

	corsOrigins []string
	loginLimit  *ipRateLimiter
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService, as ActivityService, m *metrics.Metrics, p Pinger) *Server {
	return &Server{
		address:     cfg.EndpointAddrHTTP,
		logger:      l.With("module", "http_server"),
		users:       us,
		activity:    as,
		metrics:     m,
		pinger:      p,
		jwtSecret:   []byte(cfg.SecretKey),
		corsOrigins: cfg.CORSAllowedOrigins,
		loginLimit:  newIPRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst, limiterTTL),
	}
}

// Handler builds the gin engine with every route and middleware.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	useJSONFieldNames()

	r := gin.New()
	r.Use(s.recovery(), requestID(), s.requestLogger(), s.instrument(), cors.New(s.corsConfig()))

	r.POST("/register", s.register)
	r.POST("/login", s.rateLimit(s.loginLimit), s.login)

	authed := r.Group("/", s.authRequired())
	{
		authed.GET("/profile", s.profile)
		authed.POST("/log-water", s.logWater)
		authed.GET("/today-water", s.todayWater)
		authed.POST("/log-workout", s.logWorkout)
	}

	r.GET("/healthz", s.healthz)
	r.GET(metricsPath, gin.WrapH(s.metrics.Handler()))

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.corsOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.corsOrigins
	}
	return cfg
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
