package recommend

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookrec/internal/catalog"
	"bookrec/internal/metrics"
)

// Catalogs maps a session id to the catalog recommendations should be
// computed against.
type Catalogs interface {
	Resolve(id string) *catalog.Catalog
}

type Handler struct {
	Catalogs Catalogs
}

func NewHandler(catalogs Catalogs) *Handler {
	return &Handler{Catalogs: catalogs}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.recommend) // GET /recommendations?title=&limit=
}

func (h *Handler) recommend(c *gin.Context) {
	title := c.Query("title")
	if strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	limit := DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	cat := h.Catalogs.Resolve(c.GetHeader("X-Session-ID"))

	start := time.Now()
	results, err := Rank(cat, title, limit)
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	metrics.RecommendTotal.Inc()

	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no book with that title"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
		return
	}

	reference, _ := cat.ByTitle(title)
	c.JSON(http.StatusOK, gin.H{
		"reference": reference,
		"count":     len(results),
		"items":     results,
	})
}
