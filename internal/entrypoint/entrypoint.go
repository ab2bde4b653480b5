package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ycyaw66/library-backoffice/internal/config"
	"github.com/ycyaw66/library-backoffice/internal/database"
	"github.com/ycyaw66/library-backoffice/internal/database/books"
	"github.com/ycyaw66/library-backoffice/internal/database/borrows"
	"github.com/ycyaw66/library-backoffice/internal/database/cards"
	http_controllers "github.com/ycyaw66/library-backoffice/internal/http"
	"github.com/ycyaw66/library-backoffice/internal/scheduler"
	"github.com/ycyaw66/library-backoffice/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the store, repositories, service and router together and serves.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting library back office v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	library := services.NewLibrary(
		books.NewRepository(db.DB),
		cards.NewRepository(db.DB),
		borrows.NewRepository(db.DB),
		db,
	)

	var reportScheduler *scheduler.InventoryReportScheduler
	if cfg.Report.Enabled {
		reportScheduler = scheduler.NewInventoryReportScheduler(db, cfg.Report.Schedule)
		if err := reportScheduler.Start(context.Background()); err != nil {
			log.Printf("WARNING: Failed to start inventory report scheduler: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Library:  library,
		Database: db,
		Version:  version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		if reportScheduler != nil {
			reportScheduler.Stop()
		}
	})
}
