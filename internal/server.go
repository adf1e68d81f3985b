package internal

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexPage []byte

// Server exposes the notes pipeline as a single-page web UI plus a small
// JSON API.
type Server struct {
	app    *App
	engine *gin.Engine
}

// NotesRequest is the JSON payload for POST /api/notes.
type NotesRequest struct {
	URL string `json:"url" binding:"required"`
}

// NotesResponse carries either notes or a classified failure. The
// thumbnail is included whenever a video ID could be extracted, so the
// page can show a preview even alongside a warning.
type NotesResponse struct {
	VideoID   string `json:"video_id,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Warning   string `json:"warning,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewServer constructs the Gin engine with registered routes.
func NewServer(app *App) *Server {
	if !app.config.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	// Minimal middleware: recovery; request logging only when verbose
	engine.Use(gin.Recovery())
	if app.config.Verbose {
		engine.Use(gin.Logger())
	}

	s := &Server{app: app, engine: engine}

	engine.GET("/", s.handleIndex)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/api/preview", s.handlePreview)
	engine.POST("/api/notes", s.handleNotes)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handlePreview resolves a URL to its video ID and thumbnail without
// touching any external service, so the page can preview while typing.
func (s *Server) handlePreview(c *gin.Context) {
	videoID, ok := ExtractVideoID(c.Query("url"))
	if !ok {
		c.JSON(http.StatusBadRequest, NotesResponse{Error: FormatFailure(ErrInvalidURL)})
		return
	}
	c.JSON(http.StatusOK, NotesResponse{
		VideoID:   videoID,
		Thumbnail: ThumbnailURL(videoID),
	})
}

func (s *Server) handleNotes(c *gin.Context) {
	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NotesResponse{Error: "invalid request: url is required"})
		return
	}

	result, err := s.app.GenerateNotes(c.Request.Context(), req.URL)
	if err != nil {
		resp := NotesResponse{}
		if videoID, ok := ExtractVideoID(req.URL); ok {
			resp.VideoID = videoID
			resp.Thumbnail = ThumbnailURL(videoID)
		}

		switch Classify(err) {
		case FailureInvalidInput:
			resp.Error = FormatFailure(err)
			c.JSON(http.StatusBadRequest, resp)
		case FailureWarning:
			resp.Warning = FormatFailure(err)
			c.JSON(http.StatusOK, resp)
		case FailureError:
			resp.Error = FormatFailure(err)
			c.JSON(http.StatusBadGateway, resp)
		default:
			resp.Error = FormatFailure(err)
			c.JSON(http.StatusInternalServerError, resp)
		}
		return
	}

	c.JSON(http.StatusOK, NotesResponse{
		VideoID:   result.VideoID,
		Thumbnail: result.Thumbnail,
		Notes:     result.Notes,
	})
}

// Run starts the HTTP server and shuts it down gracefully when the
// context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
