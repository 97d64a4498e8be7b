package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bookrec/pkg/models"
)

// Resolver maps a session id to the catalog it should read. An empty
// or unknown id resolves to the shared base catalog.
type Resolver interface {
	Resolve(id string) *Catalog
}

type Handler struct {
	Catalogs Resolver
}

func NewHandler(catalogs Resolver) *Handler {
	return &Handler{Catalogs: catalogs}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.list)            // GET /books
	rg.GET("/detail", h.detail)   // GET /books/detail?title=
	rg.GET("/stats", h.stats)     // GET /books/stats
	rg.GET("/authors", h.authors) // GET /books/authors
	rg.GET("/categories", h.tags) // GET /books/categories
}

// list serves the browse flows: exact author match, category
// containment, or case-insensitive title search. Exactly one filter is
// applied; with none set, the whole catalog is returned (truncated).
func (h *Handler) list(c *gin.Context) {
	cat := h.Catalogs.Resolve(c.GetHeader("X-Session-ID"))
	limit := parseInt(c.Query("limit"), 20)

	var books []models.Book
	switch {
	case c.Query("author") != "":
		books = cat.ByAuthor(c.Query("author"))
	case c.Query("category") != "":
		books = cat.ByCategory(c.Query("category"))
	case c.Query("q") != "":
		books = cat.SearchTitle(c.Query("q"))
	default:
		books = cat.Books()
	}

	total := len(books)
	if limit > 0 && len(books) > limit {
		books = books[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"total": total,
		"limit": limit,
		"items": books,
	})
}

func (h *Handler) detail(c *gin.Context) {
	title := c.Query("title")
	if strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	cat := h.Catalogs.Resolve(c.GetHeader("X-Session-ID"))
	book, ok := cat.ByTitle(title)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *Handler) stats(c *gin.Context) {
	cat := h.Catalogs.Resolve(c.GetHeader("X-Session-ID"))
	c.JSON(http.StatusOK, cat.Summary())
}

func (h *Handler) authors(c *gin.Context) {
	cat := h.Catalogs.Resolve(c.GetHeader("X-Session-ID"))
	c.JSON(http.StatusOK, gin.H{"authors": cat.Authors()})
}

func (h *Handler) tags(c *gin.Context) {
	cat := h.Catalogs.Resolve(c.GetHeader("X-Session-ID"))
	c.JSON(http.StatusOK, gin.H{"categories": cat.Categories()})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
