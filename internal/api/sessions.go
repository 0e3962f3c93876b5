package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type sessionEventRequest struct {
	Type   string `json:"type"`
	CityID string `json:"cityId"`
}

func (h *Handler) createSession(c *gin.Context) {
	var req struct {
		ViewportWidth int `json:"viewportWidth"`
	}
	// An empty body keeps the default viewport.
	_ = c.ShouldBindJSON(&req)

	engine := h.sessions.Create(req.ViewportWidth)
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": engine.ID(),
		"state":     engine.Snapshot(),
	})
}

func (h *Handler) getSession(c *gin.Context) {
	engine, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}
	c.JSON(http.StatusOK, engine.Snapshot())
}

func (h *Handler) postSessionEvent(c *gin.Context) {
	engine, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}

	var req sessionEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	switch req.Type {
	case "activate", "compare":
		city, ok := h.repo.CityByID(req.CityID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown city"})
			return
		}
		if req.Type == "activate" {
			engine.Activate(city)
		} else {
			engine.RequestCompare(city)
		}
	case "close_panel":
		engine.ClosePanel()
	case "close_comparison":
		engine.CloseComparison()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event type"})
		return
	}

	c.JSON(http.StatusOK, engine.Snapshot())
}

func (h *Handler) deleteSession(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// streamSession pushes the session's commands as server-sent events until
// the client disconnects or the broadcaster shuts down.
func (h *Handler) streamSession(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.sessions.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}

	subID, ch := h.broadcaster.Subscribe(id)
	defer h.broadcaster.Unsubscribe(subID)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case cmd, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("command", cmd)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
