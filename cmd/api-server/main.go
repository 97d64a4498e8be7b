package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookrec/internal/catalog"
	"bookrec/internal/metrics"
	"bookrec/internal/notify"
	"bookrec/internal/recommend"
	"bookrec/internal/search"
	"bookrec/internal/session"
	"bookrec/internal/source"
	"bookrec/pkg/utils"
)

func main() {
	cfg := utils.LoadConfig()
	metrics.Init()

	library := source.NewOpenLibrary(cfg.OpenLibraryURL, cfg.FetchTimeout, cfg.FetchRate)

	base, err := loadInitialCatalog(cfg, library)
	if err != nil {
		// No catalog means no recommendations; nothing else to do.
		log.Fatalf("initial catalog load failed: %v", err)
	}
	log.Printf("catalog loaded: %d books, %d authors, %d categories",
		base.Len(), len(base.Authors()), len(base.Categories()))

	sessions := session.NewManager(base)
	hub := notify.NewHub()

	router := gin.Default()

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "books": base.Len()})
	})

	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"books":      base.Len(),
			"sessions":   sessions.Count(),
			"ws_clients": hub.Count(),
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", notify.WSHandler(hub))

	catalogHandler := catalog.NewHandler(sessions)
	catalogHandler.RegisterRoutes(router.Group("/books"))

	recommendHandler := recommend.NewHandler(sessions)
	recommendHandler.RegisterRoutes(router.Group("/recommendations"))

	searchHandler := search.NewHandler(library, library, sessions, hub)
	searchHandler.RegisterRoutes(router.Group("/search"))

	sessionHandler := session.NewHandler(sessions)
	sessionHandler.RegisterRoutes(router.Group("/sessions"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("HTTP API server listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	log.Println("server stopped")
}

// loadInitialCatalog builds the shared base catalog from whichever
// source the config declares. Any failure here is fatal to the caller.
func loadInitialCatalog(cfg utils.Config, library *source.OpenLibrary) (*catalog.Catalog, error) {
	switch cfg.DataFormat {
	case "sqlite":
		src, err := source.OpenSQLite(cfg.DataPath)
		if err != nil {
			return nil, err
		}
		defer src.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		books, err := src.Books(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.Load(books)

	case "seed":
		if cfg.SeedQuery == "" {
			return nil, errors.New("seed format requires BOOKREC_SEED_QUERY")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		books, err := library.Fetch(ctx, cfg.SeedQuery, cfg.SeedMax, source.None)
		if err != nil {
			// A dead remote with no local fallback is fatal at startup.
			return nil, err
		}
		return catalog.Load(books)

	default: // csv
		src, err := source.OpenCSV(cfg.DataPath)
		if err != nil {
			return nil, err
		}
		return catalog.Load(src.Books())
	}
}
