package entities

import (
	"time"

	"gorm.io/gorm"
)

type ImportStatus string

const (
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// Contact is one imported contact. The parsed fields are kept as ordered
// name/value rows so repeated fields (Email_1, Email_2, ...) and multi-line
// values survive the round trip unchanged.
type Contact struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ImportPosition int            `gorm:"index" json:"import_position"`
	FirstName      string         `gorm:"index;size:256" json:"first_name,omitempty"`
	LastName       string         `gorm:"index;size:256" json:"last_name,omitempty"`
	Fields         []ContactField `gorm:"foreignKey:ContactID" json:"fields,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// ContactField is one canonical name/value pair of a contact. Position is
// the field's encounter order within its record.
type ContactField struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ContactID uint   `gorm:"index" json:"contact_id"`
	Position  int    `json:"position"`
	Name      string `gorm:"size:128" json:"name"`
	Value     string `gorm:"type:text" json:"value"`
}

// FieldValue returns the value of the named field.
func (c *Contact) FieldValue(name string) (string, bool) {
	for _, field := range c.Fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return "", false
}

// ImportSession records one import run for auditing.
type ImportSession struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	SourceFile       string       `gorm:"size:1024" json:"source_file"`
	ContactsImported int          `json:"contacts_imported"`
	ContactsFailed   int          `json:"contacts_failed"`
	Status           ImportStatus `gorm:"size:20" json:"status"`
	Error            string       `gorm:"type:text" json:"error,omitempty"`
	StartedAt        time.Time    `json:"started_at"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
}
