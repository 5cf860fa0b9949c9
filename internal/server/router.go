package server

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yahyarisas/spark-app/internal/assessment"
	"github.com/yahyarisas/spark-app/internal/lookup"
	"github.com/yahyarisas/spark-app/internal/prediction"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Predictor is the prediction client surface the handlers need; tests
// substitute a fake.
type Predictor interface {
	PredictRisk(ctx context.Context, payload any) (prediction.Outcome, error)
	PredictClass(ctx context.Context, payload any) (prediction.Outcome, error)
	PredictClassBySubject(ctx context.Context, subjectID string) (prediction.Outcome, error)
}

type Server struct {
	store     *SessionStore
	variants  map[string]*assessment.Variant
	predictor Predictor
	source    lookup.Source // nil when no lookup backend is configured
	db        HealthChecker // nil when the database is disabled
	log       zerolog.Logger
}

func New(predictor Predictor, source lookup.Source, db HealthChecker, log zerolog.Logger) *Server {
	return &Server{
		store:     NewSessionStore(),
		variants:  assessment.Variants(),
		predictor: predictor,
		source:    source,
		db:        db,
		log:       log,
	}
}

func (s *Server) Router(staticRoot string) *gin.Engine {
	router := gin.New()
	router.Use(
		s.requestLogger(),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	if staticRoot != "" {
		router.Static("/static", staticRoot)
		router.StaticFile("/", filepath.Join(staticRoot, "index.html"))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", s.handleReadyz)

	api := router.Group("/api/v1")
	api.GET("/variants", s.handleVariants)
	api.POST("/assessments", s.handleCreate)
	api.GET("/assessments/:id", s.handleGet)
	api.POST("/assessments/:id/actions", s.handleAction)
	api.POST("/predict/subject", s.handlePredictSubject)

	return router
}

func (s *Server) handleReadyz(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"db":     "unhealthy: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok"})
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
