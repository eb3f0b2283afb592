// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"pipeaudit/internal/engine"
	"pipeaudit/internal/gateway"
	"pipeaudit/internal/score"
)

// Analyzer runs the full check suite for one repository. *engine.Analyzer
// implements it; tests substitute fakes.
type Analyzer interface {
	Analyze(ctx context.Context, repo gateway.RepoRef) (*score.Report, error)
}

const (
	// DefaultAnalyzeTimeout bounds one analyze request end to end.
	DefaultAnalyzeTimeout = 2 * time.Minute

	// maxTrackedClients caps the per-IP limiter map before it is reset.
	maxTrackedClients = 1000
)

type Server struct {
	analyzer Analyzer
	router   *gin.Engine
	timeout  time.Duration

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

type Option func(*Server)

// WithRate sets the per-client request allowance and burst size.
func WithRate(perSecond float64, burst int) Option {
	return func(s *Server) {
		s.rps = rate.Limit(perSecond)
		s.burst = burst
	}
}

// WithAnalyzeTimeout bounds a single analyze request.
func WithAnalyzeTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

func New(analyzer Analyzer, opts ...Option) (*Server, error) {
	if analyzer == nil {
		return nil, errors.New("server: analyzer must not be nil")
	}

	s := &Server{
		analyzer: analyzer,
		timeout:  DefaultAnalyzeTimeout,
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(1),
		burst:    5,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rps <= 0 || s.burst <= 0 {
		return nil, errors.New("server: rate and burst must be positive")
	}
	if s.timeout <= 0 {
		return nil, errors.New("server: analyze timeout must be positive")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/v1")
	api.Use(s.rateLimit())
	api.GET("/analyze", s.handleAnalyze)

	s.router = router
	return s, nil
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API on addr until ctx is canceled, then drains in-flight
// requests with a shutdown grace period.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("repo"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing repo query parameter"})
		return
	}
	repo, err := gateway.ParseRepo(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
	defer cancel()

	report, err := s.analyzer.Analyze(ctx, repo)
	if err != nil {
		var unreachable *engine.RepoUnreachableError
		if errors.As(err, &unreachable) {
			status := http.StatusBadGateway
			if unreachable.Reason == engine.ReasonNotFound || unreachable.Reason == engine.ReasonNoAccess {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": unreachable.Error(), "reason": unreachable.Reason})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// limiterFor returns the token bucket for one client, resetting the map
// once it grows past maxTrackedClients.
func (s *Server) limiterFor(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.limiters) > maxTrackedClients {
		s.limiters = make(map[string]*rate.Limiter)
	}
	lim, ok := s.limiters[ip]
	if !ok {
		lim = rate.NewLimiter(s.rps, s.burst)
		s.limiters[ip] = lim
	}
	return lim
}
