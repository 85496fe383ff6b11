package exporters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Antho1426/vcf-parser/internal/entities"
)

// JSONExporter writes the contacts as one pretty-printed JSON document,
// keyed by identifier. The document is built by hand so the shared column
// order is preserved, which encoding/json's map marshalling would not do.
type JSONExporter struct {
	OutputPath string
}

func NewJSONExporter(outputPath string) *JSONExporter {
	return &JSONExporter{OutputPath: outputPath}
}

func (e *JSONExporter) Export(contacts []entities.Contact) (ExportResult, error) {
	result := ExportResult{}

	document, err := marshalContacts(contacts)
	if err != nil {
		return result, fmt.Errorf("failed to marshal contacts: %w", err)
	}

	if dir := filepath.Dir(e.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return result, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(e.OutputPath, document, 0o644); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", e.OutputPath, err)
	}

	result.ContactsProcessed = len(contacts)
	for _, contact := range contacts {
		result.FieldsProcessed += len(contact.Fields)
	}
	return result, nil
}

func marshalContacts(contacts []entities.Contact) ([]byte, error) {
	columns := ColumnOrder(contacts)

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, contact := range contacts {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		buf.WriteString(strconv.Quote(strconv.Itoa(contact.ImportPosition)))
		buf.WriteString(": {")

		values := make(map[string]string, len(contact.Fields))
		for _, field := range contact.Fields {
			values[field.Name] = field.Value
		}

		wrote := false
		for _, column := range columns {
			value, ok := values[column]
			if !ok {
				continue
			}
			if wrote {
				buf.WriteString(",")
			}
			wrote = true
			buf.WriteString("\n    ")
			name, err := json.Marshal(column)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteString(": ")
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, err
			}
			buf.Write(encoded)
		}
		buf.WriteString("\n  }")
	}
	buf.WriteString("\n}\n")

	return buf.Bytes(), nil
}
