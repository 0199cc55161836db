package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/a1j9o94/visual-audio-books/application/ports/inbound"
	"github.com/a1j9o94/visual-audio-books/application/ports/outbound"
	"github.com/a1j9o94/visual-audio-books/domain"
	"github.com/a1j9o94/visual-audio-books/infrastructure/gin_interface/dto"
	"github.com/a1j9o94/visual-audio-books/middleware"
)

type VisualNovelController interface {
	CreateBookSession(c *gin.Context)
	GetState(c *gin.Context)
	Play(c *gin.Context)
	Pause(c *gin.Context)
	Advance(c *gin.Context)
	StreamEvents(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type visualNovelController struct {
	logger   outbound.LoggerPort
	sessions inbound.BookSessionManagerPort
}

func NewVisualNovelController(logger outbound.LoggerPort,
	sessions inbound.BookSessionManagerPort) VisualNovelController {
	return &visualNovelController{
		logger:   logger,
		sessions: sessions,
	}
}

func (v *visualNovelController) CreateBookSession(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := v.sessions.CreateSession(c.Request.Context(), inbound.CreateSessionParams{
		BookTitle: req.Title,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		v.logger.ErrorWithFields(err, "Failed to create book session", map[string]interface{}{
			"book_title": req.Title,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateBookResponse{
		SessionID:    info.SessionID,
		BookTitle:    info.BookTitle,
		SegmentCount: info.SegmentCount,
	})
}

func (v *visualNovelController) GetState(c *gin.Context) {
	sessionID := c.Param("id")
	snapshot, err := v.sessions.Snapshot(sessionID)
	if err != nil {
		v.abortWithPlaybackError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionStateResponse{SessionID: sessionID, Playback: snapshot})
}

func (v *visualNovelController) Play(c *gin.Context) {
	v.control(c, v.sessions.Play)
}

func (v *visualNovelController) Pause(c *gin.Context) {
	v.control(c, v.sessions.Pause)
}

func (v *visualNovelController) Advance(c *gin.Context) {
	v.control(c, v.sessions.Advance)
}

func (v *visualNovelController) control(c *gin.Context, op func(string) (domain.PlaybackSnapshot, error)) {
	sessionID := c.Param("id")
	snapshot, err := op(sessionID)
	if err != nil {
		v.abortWithPlaybackError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionStateResponse{SessionID: sessionID, Playback: snapshot})
}

// StreamEvents pushes session events over SSE until the client
// disconnects. Event names carry the event type; the payload is the
// full tagged union.
func (v *visualNovelController) StreamEvents(c *gin.Context) {
	events, cancel, err := v.sessions.Subscribe(c.Param("id"))
	if err != nil {
		v.abortWithPlaybackError(c, err)
		return
	}
	defer cancel()

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(ev.Type, ev)
			return true
		case <-clientGone:
			return false
		}
	})
}

func (v *visualNovelController) abortWithPlaybackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSegmentNotReady):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		v.logger.Error(err, "Playback operation failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (v *visualNovelController) RegisterRoutes(g *gin.Engine) {
	g.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	g.POST("/books", v.CreateBookSession)
	g.GET("/sessions/:id", v.GetState)
	g.POST("/sessions/:id/play", v.Play)
	g.POST("/sessions/:id/pause", v.Pause)
	g.POST("/sessions/:id/advance", v.Advance)
	g.GET("/sessions/:id/events", middleware.SSEMiddleware(), v.StreamEvents)
}
