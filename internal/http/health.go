package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Antho1426/vcf-parser/internal/database"
	"github.com/Antho1426/vcf-parser/internal/scheduler"
)

// SyncStatus reports the backup sync scheduler's state.
type SyncStatus struct {
	Running bool   `json:"running"`
	Outcome string `json:"outcome,omitempty"`
	Error   string `json:"error,omitempty"`
	LastRun string `json:"last_run,omitempty"`
	NextRun string `json:"next_run,omitempty"`
}

type HealthResponse struct {
	Status        string      `json:"status"`
	Time          string      `json:"time"`
	Version       string      `json:"version,omitempty"`
	Database      string      `json:"database"`
	TotalContacts int64       `json:"total_contacts"`
	TotalFields   int64       `json:"total_fields"`
	Sync          *SyncStatus `json:"sync,omitempty"`
}

type HealthController struct {
	db      *database.Database
	sync    *scheduler.VCFSyncScheduler
	version string
}

func NewHealthController(db *database.Database, sync *scheduler.VCFSyncScheduler, version string) *HealthController {
	return &HealthController{
		db:      db,
		sync:    sync,
		version: version,
	}
}

// Status reports service health: database reachability, how many contacts
// and fields are stored, and the sync scheduler's last outcome when the
// scheduler is active.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
	}

	if h.db == nil {
		health.Database = "not configured"
	} else if contacts, fields, err := h.db.GetStats(); err != nil {
		health.Status = "unhealthy"
		health.Database = "error: " + err.Error()
	} else {
		health.Database = "ok"
		health.TotalContacts = contacts
		health.TotalFields = fields
	}

	if h.sync != nil {
		status := &SyncStatus{Running: h.sync.IsRunning()}
		outcome, errMsg, lastRun := h.sync.LastStatus()
		status.Outcome = outcome
		status.Error = errMsg
		if lastRun != nil {
			status.LastRun = lastRun.Format(time.RFC3339)
		}
		if next := h.sync.GetNextRunTime(); next != nil {
			status.NextRun = next.Format(time.RFC3339)
		}
		health.Sync = status
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
