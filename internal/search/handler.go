// Package search drives the remote-search flow: fetch records from the
// configured remote source, merge them into the caller's catalog, and
// announce what changed. The core never retries; a caller that gets an
// empty result decides for itself whether to reformulate the query.
package search

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bookrec/internal/catalog"
	"bookrec/internal/metrics"
	"bookrec/internal/notify"
	"bookrec/internal/source"
)

// Catalogs maps a session id to the catalog search results merge into.
type Catalogs interface {
	Resolve(id string) *catalog.Catalog
}

// Detailer looks up extended work metadata. Best-effort: an empty
// detail means nothing was found.
type Detailer interface {
	Work(ctx context.Context, key string) source.WorkDetail
}

type Handler struct {
	Remote   source.Source
	Details  Detailer // optional
	Catalogs Catalogs
	Hub      *notify.Hub
}

func NewHandler(remote source.Source, details Detailer, catalogs Catalogs, hub *notify.Hub) *Handler {
	return &Handler{Remote: remote, Details: details, Catalogs: catalogs, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.search)   // POST /search
	rg.GET("/work", h.work) // GET /search/work?key=
}

type searchRequest struct {
	Query string `json:"query"`
	Kind  string `json:"kind"` // "author", "title", "subject" or empty
	Max   int    `json:"max"`
}

// search fetches from the remote source and merges the results into
// the caller's catalog. A failed fetch degrades to a warning: the
// caller keeps whatever catalog it already has.
func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	if req.Max <= 0 {
		req.Max = 20
	}

	sessionID := c.GetHeader("X-Session-ID")
	cat := h.Catalogs.Resolve(sessionID)

	books, err := h.Remote.Fetch(c.Request.Context(), req.Query, req.Max, source.ParseKind(req.Kind))
	if err != nil {
		log.Printf("[search] %s fetch %q failed: %v", h.Remote.Name(), req.Query, err)
		metrics.SearchTotal.WithLabelValues(h.Remote.Name(), "error").Inc()
		c.JSON(http.StatusOK, gin.H{
			"warning": "search source unavailable, showing existing catalog only",
			"fetched": 0,
			"added":   0,
			"total":   cat.Len(),
		})
		return
	}

	metrics.SearchTotal.WithLabelValues(h.Remote.Name(), "ok").Inc()

	added := cat.Merge(books)
	if added > 0 {
		metrics.BooksMerged.Add(float64(added))
		h.Hub.BroadcastJSON(notify.CatalogEvent{
			Type:      "catalog.merge",
			SessionID: sessionID,
			Query:     req.Query,
			Added:     added,
			Total:     cat.Len(),
			At:        time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"fetched": len(books),
		"added":   added,
		"total":   cat.Len(),
		"items":   books,
	})
}

// work proxies the detail endpoint for a fetched book's source key.
// Failures come back as an empty object, never an error.
func (h *Handler) work(c *gin.Context) {
	key := c.Query("key")
	if strings.TrimSpace(key) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}
	if h.Details == nil {
		c.JSON(http.StatusOK, source.WorkDetail{})
		return
	}
	c.JSON(http.StatusOK, h.Details.Work(c.Request.Context(), key))
}
