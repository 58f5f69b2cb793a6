// Package server wires repositories, handlers and middleware into the HTTP
// surface and runs it until its context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/tiendaonline/tienda-api/app/catalog"
	"github.com/tiendaonline/tienda-api/app/categories"
	"github.com/tiendaonline/tienda-api/app/config"
	"github.com/tiendaonline/tienda-api/app/database"
	"github.com/tiendaonline/tienda-api/app/health"
	"github.com/tiendaonline/tienda-api/app/logging"
	"github.com/tiendaonline/tienda-api/app/metrics"
	"github.com/tiendaonline/tienda-api/models"
)

// NewRouter builds the HTTP handler backed by db.
func NewRouter(db *gorm.DB, log *slog.Logger) http.Handler {
	categoryHandler := categories.NewCategoryHandler(models.NewCategoriesRepository(db))
	catalogHandler := catalog.NewCatalogHandler(models.NewProductsRepository(db))
	healthHandler := health.NewHealthHandler(database.NewChecker(db))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metrics.Middleware())
	r.Use(logging.Middleware(log))
	r.Use(middleware.Recoverer)

	r.Get("/test-connection", healthHandler.HandleTestConnection)
	r.Get("/metrics", metrics.Handler())

	r.Route("/categorias", func(r chi.Router) {
		r.Get("/", categoryHandler.HandleGetAll)
		r.Post("/", categoryHandler.HandleCreate)
		r.Get("/{id}", categoryHandler.HandleGet)
		r.Put("/{id}", categoryHandler.HandleUpdate)
		r.Delete("/{id}", categoryHandler.HandleDelete)
	})

	r.Route("/productos", func(r chi.Router) {
		r.Get("/", catalogHandler.HandleGet)
		r.Post("/", catalogHandler.HandleCreate)
		r.Get("/{id}", catalogHandler.HandleGetProduct)
		r.Put("/{id}", catalogHandler.HandleUpdate)
		r.Delete("/{id}", catalogHandler.HandleDelete)
	})

	return r
}

// Run opens the database, serves HTTP on cfg.HTTP.Addr and shuts down
// gracefully once ctx is done.
func Run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	db, closeDB, err := database.New(cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeDB()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           NewRouter(db, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.HTTP.Addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
