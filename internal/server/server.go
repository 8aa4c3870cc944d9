// Package server exposes the screening service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/cogniwise/cogniwise/internal/assessment"
	"github.com/cogniwise/cogniwise/internal/auth"
	"github.com/cogniwise/cogniwise/internal/chat"
	"github.com/cogniwise/cogniwise/internal/logger"
)

// Pinger reports database reachability for the health endpoints.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the router dispatches to.
type Deps struct {
	Assessments *assessment.Service
	Chat        *chat.Service
	Auth        *auth.Service
	DB          Pinger
	Log         *logger.Logger
	CORSOrigins []string
	ServiceName string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.ServiceName == "" {
		d.ServiceName = "cogniwise"
	}
	h := &handlers{Deps: d}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(d.ServiceName))
	r.Use(attachRequestID())
	r.Use(requestLogger(d.Log))
	r.Use(corsMiddleware(d.CORSOrigins))

	r.GET("/health", h.health)

	api := r.Group("/api")
	{
		api.GET("/health", h.health)

		api.POST("/submit-level1", h.submitLevel1)
		api.GET("/results/:user_id", h.level1Results)
		api.GET("/progress/:user_id", h.progress)
		api.GET("/progress/:user_id/history", h.progressHistory)

		api.POST("/level2/submit", h.submitLevel2)
		api.GET("/level2/results/:user_id", h.level2Results)

		api.GET("/level3/summary/:user_id", h.level3Summary)
		api.GET("/level3/find_doctors", h.findDoctors)
		api.GET("/level3/find_hospitals", h.findHospitals)

		api.GET("/reports/:type/:id/xlsx", h.downloadReport)

		api.GET("/chat/history", h.chatHistory)
		api.POST("/chat/send", h.chatSend)
		api.POST("/chat/upload", h.chatUpload)

		api.POST("/admin/login", h.adminLogin)
	}

	admin := api.Group("/admin")
	admin.Use(requireAdmin(d.Auth))
	{
		admin.GET("/users", h.adminUsers)
		admin.GET("/users/:user_id/assessments", h.adminUserAssessments)
		admin.POST("/assessments/:id/suggestion", h.adminSaveSuggestion)
	}

	return r
}

// Server owns the HTTP listener.
type Server struct {
	Engine *gin.Engine
	http   *http.Server
	log    *logger.Logger
}

// New binds the router to addr.
func New(addr string, d Deps) *Server {
	engine := NewRouter(d)
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		Engine: engine,
		log:    log,
		http: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	s.log.Info("http server shutting down")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
