package exporters

import (
	"sort"

	"github.com/Antho1426/vcf-parser/internal/entities"
	"github.com/Antho1426/vcf-parser/internal/vcf"
)

// ContactExporter persists contacts to storage.
type ContactExporter interface {
	Export(contacts []entities.Contact) (ExportResult, error)
}

// ContactReader provides read-only access to stored contacts.
type ContactReader interface {
	GetAllContacts() ([]entities.Contact, error)
	GetContactByID(id uint) (*entities.Contact, error)
	SearchContacts(query string) ([]entities.Contact, error)
}

type ExportResult struct {
	ContactsProcessed int `json:"contacts_processed"`
	FieldsProcessed   int `json:"fields_processed"`
	ContactsFailed    int `json:"contacts_failed"`
}

// ContactsFromStore converts the parser's store into entities ready for
// export, preserving identifiers and field order.
func ContactsFromStore(store *vcf.Store) []entities.Contact {
	stored := store.All()
	contacts := make([]entities.Contact, 0, len(stored))
	for _, item := range stored {
		contact := entities.Contact{ImportPosition: item.ID}
		for i, field := range item.Contact.Fields() {
			contact.Fields = append(contact.Fields, entities.ContactField{
				Position: i,
				Name:     field.Name,
				Value:    field.Value,
			})
			switch field.Name {
			case vcf.FieldFirstName:
				contact.FirstName = field.Value
			case vcf.FieldLastName:
				contact.LastName = field.Value
			}
		}
		contacts = append(contacts, contact)
	}
	return contacts
}

// leadingColumns is the fixed front of the column order; every other column
// present in the dataset follows alphabetically.
var leadingColumns = []string{
	"First Name", "Middle Name 1", "Middle Name 2", "Last Name",
	"Nickname", "Organization", "Profession", "Birthday", "Gender",
	"Nationality", "Tags", "Note", "Picture",
}

// ColumnOrder computes the shared column order of the exported documents
// from every field name appearing in the dataset.
func ColumnOrder(contacts []entities.Contact) []string {
	present := make(map[string]bool)
	for _, contact := range contacts {
		for _, field := range contact.Fields {
			present[field.Name] = true
		}
	}

	var ordered []string
	leading := make(map[string]bool)
	for _, name := range leadingColumns {
		leading[name] = true
		if present[name] {
			ordered = append(ordered, name)
		}
	}

	var rest []string
	for name := range present {
		if !leading[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(ordered, rest...)
}
