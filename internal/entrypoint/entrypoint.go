package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Antho1426/vcf-parser/internal/busycontacts"
	"github.com/Antho1426/vcf-parser/internal/config"
	"github.com/Antho1426/vcf-parser/internal/database"
	"github.com/Antho1426/vcf-parser/internal/exporters"
	http_controllers "github.com/Antho1426/vcf-parser/internal/http"
	"github.com/Antho1426/vcf-parser/internal/scheduler"
	"github.com/Antho1426/vcf-parser/internal/vcf"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the sync scheduler)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting VCF parser v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Build the field registry, from JSON overrides when configured
	var registry *vcf.Registry
	if cfg.FieldTables.HasFieldTables() {
		registry, err = vcf.LoadRegistry(cfg.FieldTables.StandardPath, cfg.FieldTables.CustomPath, cfg.FieldTables.SocialPath)
		if err != nil {
			log.Fatalf("Failed to load field tables: %v", err)
		}
		log.Printf("Field tables loaded from %s", cfg.FieldTables.StandardPath)
	} else {
		registry = vcf.NewRegistry()
	}

	// The database exporter implements both ContactReader and ContactExporter
	exporter := exporters.NewDatabaseExporter(db)

	// Start the periodic backup sync when enabled. Besides the database, a
	// sync run regenerates the exported documents in the output directory.
	var syncScheduler *scheduler.VCFSyncScheduler
	if cfg.Sync.Enabled {
		var locator *busycontacts.Locator
		if cfg.BusyContacts.BackupDir != "" {
			locator = busycontacts.NewLocator(cfg.BusyContacts.BackupDir)
		} else {
			locator = busycontacts.NewDefaultLocator()
		}

		syncExporter := exporters.NewDatabaseExporter(db,
			exporters.NewJSONExporter(filepath.Join(cfg.Output.Dir, cfg.Output.JSONFileName)),
			exporters.NewExcelExporter(filepath.Join(cfg.Output.Dir, cfg.Output.WorkbookName), registry.PictureFieldName()),
		)

		syncScheduler = scheduler.NewVCFSyncScheduler(locator, registry, syncExporter, cfg.Sync.Enabled, cfg.Sync.Schedule)
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start sync scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:        db,
		ContactExporter: exporter,
		ContactReader:   exporter,
		Registry:        registry,
		SyncScheduler:   syncScheduler,
		Version:         version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if syncScheduler != nil {
			syncScheduler.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
