package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Antho1426/vcf-parser/internal/database"
	"github.com/Antho1426/vcf-parser/internal/exporters"
)

type ContactsController struct {
	reader exporters.ContactReader
	db     *database.Database
}

func NewContactsController(reader exporters.ContactReader, db *database.Database) *ContactsController {
	return &ContactsController{
		reader: reader,
		db:     db,
	}
}

func (controller *ContactsController) GetAllContacts(c *gin.Context) {
	contacts, err := controller.reader.GetAllContacts()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"contacts": contacts, "count": len(contacts)})
}

func (controller *ContactsController) GetContactByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	contact, err := controller.reader.GetContactByID(uint(id))
	if err != nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}

	c.IndentedJSON(http.StatusOK, contact)
}

func (controller *ContactsController) SearchContacts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})
		return
	}

	contacts, err := controller.reader.SearchContacts(query)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"contacts": contacts, "count": len(contacts)})
}

func (controller *ContactsController) GetContactStats(c *gin.Context) {
	totalContacts, totalFields, err := controller.db.GetStats()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats := gin.H{
		"total_contacts": totalContacts,
		"total_fields":   totalFields,
	}

	c.IndentedJSON(http.StatusOK, stats)
}
