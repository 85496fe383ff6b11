package exporters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Antho1426/vcf-parser/internal/entities"
	"github.com/Antho1426/vcf-parser/internal/vcf"
)

func contactFixture(position int, pairs ...string) entities.Contact {
	contact := entities.Contact{ImportPosition: position}
	for i := 0; i+1 < len(pairs); i += 2 {
		contact.Fields = append(contact.Fields, entities.ContactField{
			Position: i / 2,
			Name:     pairs[i],
			Value:    pairs[i+1],
		})
		switch pairs[i] {
		case vcf.FieldFirstName:
			contact.FirstName = pairs[i+1]
		case vcf.FieldLastName:
			contact.LastName = pairs[i+1]
		}
	}
	return contact
}

func TestContactsFromStore(t *testing.T) {
	store := vcf.NewStore()

	record := vcf.NewContact()
	record.Set(vcf.FieldLastName, "Doe")
	record.Set(vcf.FieldFirstName, "John")
	record.Set("Phone", "+41 79 555 01 23")
	store.Append(record)

	contacts := ContactsFromStore(store)

	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	contact := contacts[0]
	if contact.ImportPosition != 0 {
		t.Errorf("expected import position 0, got %d", contact.ImportPosition)
	}
	if contact.FirstName != "John" || contact.LastName != "Doe" {
		t.Errorf("name columns not extracted: %q %q", contact.FirstName, contact.LastName)
	}
	if len(contact.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(contact.Fields))
	}
	if contact.Fields[2].Name != "Phone" || contact.Fields[2].Position != 2 {
		t.Errorf("field order not preserved: %+v", contact.Fields[2])
	}
}

func TestColumnOrder(t *testing.T) {
	contacts := []entities.Contact{
		contactFixture(0,
			"Zulu Field", "z",
			vcf.FieldLastName, "Doe",
			"Tags", "A",
			"Email", "a@example.com",
		),
		contactFixture(1,
			vcf.FieldFirstName, "Anna",
			"Alpha Field", "a",
		),
	}

	columns := ColumnOrder(contacts)

	want := []string{"First Name", "Last Name", "Tags", "Alpha Field", "Email", "Zulu Field"}
	if len(columns) != len(want) {
		t.Fatalf("expected %d columns, got %d: %v", len(want), len(columns), columns)
	}
	for i := range want {
		if columns[i] != want[i] {
			t.Errorf("column %d: expected %q, got %q", i, want[i], columns[i])
		}
	}
}

func TestJSONExporter(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "contacts_dict.json")

	contacts := []entities.Contact{
		contactFixture(0,
			vcf.FieldLastName, "Doe",
			vcf.FieldFirstName, "John",
			"Note", "Line one\nLine two",
		),
		contactFixture(1, vcf.FieldFirstName, "Anna"),
	}

	exporter := NewJSONExporter(outputPath)
	result, err := exporter.Export(contacts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ContactsProcessed != 2 {
		t.Errorf("expected 2 contacts processed, got %d", result.ContactsProcessed)
	}

	contents, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var document map[string]map[string]string
	if err := json.Unmarshal(contents, &document); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if document["0"]["Note"] != "Line one\nLine two" {
		t.Errorf("multi-line value not preserved: %q", document["0"]["Note"])
	}
	if document["1"]["First Name"] != "Anna" {
		t.Errorf("unexpected contact 1: %v", document["1"])
	}

	// First Name must be emitted ahead of Last Name and Note.
	text := string(contents)
	if strings.Index(text, `"First Name"`) > strings.Index(text, `"Note"`) {
		t.Errorf("shared column order not preserved in document:\n%s", text)
	}
}

func TestExcelExporter(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "contacts.xlsx")

	contacts := []entities.Contact{
		contactFixture(0,
			vcf.FieldLastName, "Doe",
			vcf.FieldFirstName, "John",
			"Phone", "+41 79 555 01 23",
		),
	}

	exporter := NewExcelExporter(outputPath, "Picture")
	result, err := exporter.Export(contacts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ContactsProcessed != 1 {
		t.Errorf("expected 1 contact processed, got %d", result.ContactsProcessed)
	}

	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("expected workbook to be written: %v", err)
	}
}

func TestExcelExporter_EmptyDataset(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "empty.xlsx")

	exporter := NewExcelExporter(outputPath, "Picture")
	if _, err := exporter.Export(nil); err != nil {
		t.Fatalf("empty dataset must still produce a workbook: %v", err)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("expected workbook to be written: %v", err)
	}
}
