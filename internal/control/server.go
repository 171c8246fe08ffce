// Package control exposes ingestion over HTTP for long-running deployments.
package control

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rssingest/app"
	"rssingest/domain"
)

var ErrAlreadyRunning = errors.New("already running")

// TryListen tries to bind the control address. If it's already in use, we assume an instance is running.
func TryListen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return ln, nil
}

// Ingestion is what the server drives.
type Ingestion interface {
	Handle(ctx context.Context, ev app.Event) app.InvocationResult
	Busy() bool
	Snapshot(ctx context.Context) (*domain.ArticleCollection, error)
}

type Server struct {
	ingestion Ingestion
	logger    *slog.Logger
	engine    *gin.Engine
}

func NewServer(ingestion Ingestion, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{ingestion: ingestion, logger: logger, engine: gin.New()}
	s.engine.Use(gin.Recovery(), s.logRequests)
	s.engine.POST("/ingest", s.handleIngest)
	s.engine.GET("/collection", s.handleCollection)
	s.engine.GET("/healthz", s.handleHealth)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Serve answers requests on ln until ctx is done, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIngest(c *gin.Context) {
	var ev app.Event
	if err := c.ShouldBindJSON(&ev); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error", "error": err.Error()})
		return
	}
	if s.ingestion.Busy() {
		c.JSON(http.StatusConflict, gin.H{"message": "Error", "error": app.ErrRunInProgress.Error()})
		return
	}

	res := s.ingestion.Handle(c.Request.Context(), ev)
	c.Data(res.StatusCode, "application/json", []byte(res.Body))
}

func (s *Server) handleCollection(c *gin.Context) {
	collection, err := s.ingestion.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, collectionSummary{
		Metadata:         collection.Metadata,
		ArticleCount:     len(collection.Articles),
		IngestionHistory: collection.IngestionHistory,
	})
}

// collectionSummary is the stored document without its articles.
type collectionSummary struct {
	Metadata         domain.Metadata          `json:"metadata"`
	ArticleCount     int                      `json:"article_count"`
	IngestionHistory []domain.IngestionRecord `json:"ingestion_history"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "busy": s.ingestion.Busy()})
}

func (s *Server) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.logger.InfoContext(c.Request.Context(), "control request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
