package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Antho1426/vcf-parser/internal/database"
	"github.com/Antho1426/vcf-parser/internal/exporters"
	"github.com/Antho1426/vcf-parser/internal/scheduler"
	"github.com/Antho1426/vcf-parser/internal/vcf"
)

// RouterConfig holds all the dependencies of the HTTP router.
type RouterConfig struct {
	Database        *database.Database
	ContactExporter exporters.ContactExporter
	ContactReader   exporters.ContactReader
	Registry        *vcf.Registry
	SyncScheduler   *scheduler.VCFSyncScheduler
	Version         string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.SyncScheduler, cfg.Version)
	contactsController := NewContactsController(cfg.ContactReader, cfg.Database)
	importController := NewVCFImportController(cfg.ContactExporter, cfg.Registry, cfg.Database)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Contacts API endpoints
	router.GET("/api/contacts", contactsController.GetAllContacts)
	router.GET("/api/contacts/search", contactsController.SearchContacts)
	router.GET("/api/contacts/stats", contactsController.GetContactStats)
	router.GET("/api/contacts/:id", contactsController.GetContactByID)

	// Import endpoints
	router.POST("/api/import/vcf", importController.Import)
	router.GET("/api/import/sessions", importController.ListSessions)

	return router
}
