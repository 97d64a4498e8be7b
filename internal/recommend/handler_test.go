package recommend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"bookrec/internal/catalog"
	"bookrec/pkg/models"
)

type staticCatalogs struct {
	cat *catalog.Catalog
}

func (s staticCatalogs) Resolve(string) *catalog.Catalog { return s.cat }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load([]models.Book{
		{Title: "Dune", Authors: "Frank Herbert", Categories: "Science Fiction, Adventure"},
		{Title: "Dune Messiah", Authors: "Frank Herbert", Categories: "Science Fiction"},
		{Title: "The Art of War", Authors: "Sun Tzu", Categories: "Strategy"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	router := gin.New()
	NewHandler(staticCatalogs{cat}).RegisterRoutes(router.Group("/recommendations"))
	return router
}

func TestRecommendEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recommendations?title=Dune&limit=5", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Reference models.Book      `json:"reference"`
		Count     int              `json:"count"`
		Items     []Recommendation `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Reference.Title != "Dune" {
		t.Errorf("reference = %q, want Dune", resp.Reference.Title)
	}
	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}
	if resp.Items[0].Book.Title != "Dune Messiah" {
		t.Errorf("top result = %q, want Dune Messiah", resp.Items[0].Book.Title)
	}
}

func TestRecommendEndpointUnknownTitle(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recommendations?title=Nope", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestRecommendEndpointMissingTitle(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recommendations", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
