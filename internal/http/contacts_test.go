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
	"github.com/Antho1426/vcf-parser/internal/exporters"
)

func setupContactsTestDB(t *testing.T) (*database.Database, *exporters.DatabaseExporter, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_contacts_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	exporter := exporters.NewDatabaseExporter(db)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, exporter, cleanup
}

func TestContactsController_GetAllContacts(t *testing.T) {
	t.Run("returns empty list when no contacts", func(t *testing.T) {
		db, exporter, cleanup := setupContactsTestDB(t)
		defer cleanup()

		controller := NewContactsController(exporter, db)

		router := gin.New()
		router.GET("/api/contacts", controller.GetAllContacts)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/contacts", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, float64(0), response["count"])
		assert.Empty(t, response["contacts"])
	})

	t.Run("returns contacts with count", func(t *testing.T) {
		db, exporter, cleanup := setupContactsTestDB(t)
		defer cleanup()

		require.NoError(t, db.SaveContact(&entities.Contact{FirstName: "John", LastName: "Doe"}))
		require.NoError(t, db.SaveContact(&entities.Contact{FirstName: "Jane", LastName: "Smith"}))

		controller := NewContactsController(exporter, db)

		router := gin.New()
		router.GET("/api/contacts", controller.GetAllContacts)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/contacts", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, float64(2), response["count"])
		contacts := response["contacts"].([]interface{})
		assert.Len(t, contacts, 2)
	})
}

func TestContactsController_GetContactByID(t *testing.T) {
	t.Run("returns 400 for invalid id", func(t *testing.T) {
		db, exporter, cleanup := setupContactsTestDB(t)
		defer cleanup()

		controller := NewContactsController(exporter, db)

		router := gin.New()
		router.GET("/api/contacts/:id", controller.GetContactByID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/contacts/abc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid contact id")
	})

	t.Run("returns 404 when contact not found", func(t *testing.T) {
		db, exporter, cleanup := setupContactsTestDB(t)
		defer cleanup()

		controller := NewContactsController(exporter, db)

		router := gin.New()
		router.GET("/api/contacts/:id", controller.GetContactByID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/contacts/999", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "contact not found")
	})

	t.Run("returns contact with fields", func(t *testing.T) {
		db, exporter, cleanup := setupContactsTestDB(t)
		defer cleanup()

		saved := &entities.Contact{
			FirstName: "John",
			LastName:  "Doe",
			Fields: []entities.ContactField{
				{Position: 0, Name: "First Name", Value: "John"},
				{Position: 1, Name: "Email", Value: "john@example.com"},
			},
		}
		require.NoError(t, db.SaveContact(saved))

		controller := NewContactsController(exporter, db)

		router := gin.New()
		router.GET("/api/contacts/:id", controller.GetContactByID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/contacts/1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var contact entities.Contact
		err := json.Unmarshal(w.Body.Bytes(), &contact)
		require.NoError(t, err)
		assert.Equal(t, "John", contact.FirstName)
		assert.Len(t, contact.Fields, 2)
	})
}

func TestContactsController_SearchContacts(t *testing.T) {
	t.Run("returns 400 when query is missing", func(t *testing.T) {
		db, exporter, cleanup := setupContactsTestDB(t)
		defer cleanup()

		controller := NewContactsController(exporter, db)

		router := gin.New()
		router.GET("/api/contacts/search", controller.SearchContacts)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/contacts/search", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "q query parameter is required")
	})

	t.Run("matches partial names", func(t *testing.T) {
		db, exporter, cleanup := setupContactsTestDB(t)
		defer cleanup()

		require.NoError(t, db.SaveContact(&entities.Contact{FirstName: "John", LastName: "Doe"}))
		require.NoError(t, db.SaveContact(&entities.Contact{FirstName: "Jane", LastName: "Smith"}))

		controller := NewContactsController(exporter, db)

		router := gin.New()
		router.GET("/api/contacts/search", controller.SearchContacts)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/contacts/search?q=smi", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, float64(1), response["count"])
	})
}

func TestContactsController_GetContactStats(t *testing.T) {
	t.Run("counts contacts and fields", func(t *testing.T) {
		db, exporter, cleanup := setupContactsTestDB(t)
		defer cleanup()

		require.NoError(t, db.SaveContact(&entities.Contact{
			FirstName: "John",
			LastName:  "Doe",
			Fields: []entities.ContactField{
				{Position: 0, Name: "First Name", Value: "John"},
				{Position: 1, Name: "Phone", Value: "+41 79 000 00 00"},
			},
		}))

		controller := NewContactsController(exporter, db)

		router := gin.New()
		router.GET("/api/contacts/stats", controller.GetContactStats)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/contacts/stats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, float64(1), response["total_contacts"])
		assert.Equal(t, float64(2), response["total_fields"])
	})
}
