package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Manager *Manager
}

func NewHandler(m *Manager) *Handler {
	return &Handler{Manager: m}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.create)     // POST /sessions
	rg.DELETE("/:id", h.drop) // DELETE /sessions/:id
}

// create hands out a session id whose catalog starts as a copy of the
// shared base catalog. Clients pass it back as X-Session-ID.
func (h *Handler) create(c *gin.Context) {
	id := h.Manager.Create()
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

func (h *Handler) drop(c *gin.Context) {
	h.Manager.Drop(c.Param("id"))
	c.Status(http.StatusNoContent)
}
