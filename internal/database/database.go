package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Antho1426/vcf-parser/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Contact{},
		&entities.ContactField{},
		&entities.ImportSession{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveContact upserts a contact, matching existing rows by first and last
// name. On a match the stored fields are replaced wholesale with the newly
// parsed ones, so a re-import of a fresher backup wins.
func (d *Database) SaveContact(contact *entities.Contact) error {
	var existing entities.Contact
	result := d.DB.Where("first_name = ? AND last_name = ?", contact.FirstName, contact.LastName).First(&existing)

	if result.Error == nil {
		contact.ID = existing.ID
		contact.CreatedAt = existing.CreatedAt
		if err := d.DB.Where("contact_id = ?", existing.ID).Delete(&entities.ContactField{}).Error; err != nil {
			return fmt.Errorf("failed to clear fields of contact %d: %w", existing.ID, err)
		}
		for i := range contact.Fields {
			contact.Fields[i].ID = 0
			contact.Fields[i].ContactID = existing.ID
		}
		return d.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(contact).Error
	}
	if result.Error != gorm.ErrRecordNotFound {
		return result.Error
	}

	return d.DB.Create(contact).Error
}

// GetAllContacts returns every contact with its fields in record order,
// ordered by import position.
func (d *Database) GetAllContacts() ([]entities.Contact, error) {
	var contacts []entities.Contact
	err := d.DB.
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("import_position ASC").
		Find(&contacts).Error
	return contacts, err
}

func (d *Database) GetContactByID(id uint) (*entities.Contact, error) {
	var contact entities.Contact
	err := d.DB.
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&contact, id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// SearchContacts matches first or last name, case-insensitive partial match.
func (d *Database) SearchContacts(query string) ([]entities.Contact, error) {
	var contacts []entities.Contact
	pattern := "%" + query + "%"
	err := d.DB.
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)", pattern, pattern).
		Order("import_position ASC").
		Find(&contacts).Error
	return contacts, err
}

func (d *Database) DeleteContact(id uint) error {
	if err := d.DB.Where("contact_id = ?", id).Delete(&entities.ContactField{}).Error; err != nil {
		return err
	}
	return d.DB.Delete(&entities.Contact{}, id).Error
}

func (d *Database) GetStats() (totalContacts int64, totalFields int64, err error) {
	if err = d.DB.Model(&entities.Contact{}).Count(&totalContacts).Error; err != nil {
		return
	}
	err = d.DB.Model(&entities.ContactField{}).Count(&totalFields).Error
	return
}

func (d *Database) CreateImportSession(sourceFile string) (*entities.ImportSession, error) {
	session := &entities.ImportSession{
		SourceFile: sourceFile,
		Status:     entities.ImportStatusRunning,
		StartedAt:  time.Now(),
	}
	if err := d.DB.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (d *Database) CompleteImportSession(session *entities.ImportSession, imported, failed int, importErr error) error {
	now := time.Now()
	session.CompletedAt = &now
	session.ContactsImported = imported
	session.ContactsFailed = failed
	if importErr != nil {
		session.Status = entities.ImportStatusFailed
		session.Error = importErr.Error()
	} else {
		session.Status = entities.ImportStatusCompleted
	}
	return d.DB.Save(session).Error
}

func (d *Database) GetImportSessions(limit int) ([]entities.ImportSession, error) {
	var sessions []entities.ImportSession
	err := d.DB.Order("started_at DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}
