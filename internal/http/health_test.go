package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Antho1426/vcf-parser/internal/database"
	"github.com/Antho1426/vcf-parser/internal/entities"
	"github.com/Antho1426/vcf-parser/internal/scheduler"
)

func setupHealthTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_health_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func healthRequest(t *testing.T, controller *HealthController) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()

	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("reports healthy with stored totals", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		require.NoError(t, db.SaveContact(&entities.Contact{
			FirstName: "John",
			LastName:  "Doe",
			Fields: []entities.ContactField{
				{Position: 0, Name: "First Name", Value: "John"},
				{Position: 1, Name: "Email", Value: "john@example.com"},
			},
		}))

		w, response := healthRequest(t, NewHealthController(db, nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Database)
		assert.Equal(t, int64(1), response.TotalContacts)
		assert.Equal(t, int64(2), response.TotalFields)
		assert.Nil(t, response.Sync)
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports unconfigured database", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		w, response := healthRequest(t, NewHealthController(nil, nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "not configured", response.Database)
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		db.Close()

		w, response := healthRequest(t, NewHealthController(db, nil, "1.0.0"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Database, "error")
	})

	t.Run("includes sync scheduler state when configured", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		sync := scheduler.NewVCFSyncScheduler(nil, nil, nil, false, "0 * * * *")

		w, response := healthRequest(t, NewHealthController(db, sync, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, response.Sync)
		assert.False(t, response.Sync.Running)
		assert.Empty(t, response.Sync.Outcome)
	})
}
