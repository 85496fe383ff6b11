package exporters

import (
	"log"

	"github.com/Antho1426/vcf-parser/internal/database"
	"github.com/Antho1426/vcf-parser/internal/entities"
)

// DatabaseExporter saves contacts to the sqlite database and then runs any
// attached file writers (JSON document, spreadsheet) over the same set.
type DatabaseExporter struct {
	db      *database.Database
	writers []ContactExporter
}

func NewDatabaseExporter(db *database.Database, writers ...ContactExporter) *DatabaseExporter {
	return &DatabaseExporter{db: db, writers: writers}
}

func (e *DatabaseExporter) Export(contacts []entities.Contact) (ExportResult, error) {
	result := ExportResult{}

	for i := range contacts {
		contact := &contacts[i]
		if err := e.db.SaveContact(contact); err != nil {
			log.Printf("Failed to save contact '%s %s' to database: %v", contact.FirstName, contact.LastName, err)
			result.ContactsFailed++
			continue
		}
		result.ContactsProcessed++
		result.FieldsProcessed += len(contact.Fields)
	}

	for _, writer := range e.writers {
		writerResult, err := writer.Export(contacts)
		if err != nil {
			return result, err
		}
		result.ContactsFailed += writerResult.ContactsFailed
	}

	log.Printf("Export completed: %d contacts processed, %d fields processed, %d contacts failed",
		result.ContactsProcessed, result.FieldsProcessed, result.ContactsFailed)

	return result, nil
}

// GetAllContacts implements the ContactReader interface.
func (e *DatabaseExporter) GetAllContacts() ([]entities.Contact, error) {
	return e.db.GetAllContacts()
}

// GetContactByID implements the ContactReader interface.
func (e *DatabaseExporter) GetContactByID(id uint) (*entities.Contact, error) {
	return e.db.GetContactByID(id)
}

// SearchContacts implements the ContactReader interface.
func (e *DatabaseExporter) SearchContacts(query string) ([]entities.Contact, error) {
	return e.db.SearchContacts(query)
}

// Compile-time interface implementation checks
var _ ContactReader = (*DatabaseExporter)(nil)
var _ ContactExporter = (*DatabaseExporter)(nil)
