package vcf

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// FieldTable maps raw VCF keys to the canonical column names used in the
// assembled contacts.
type FieldTable map[string]string

// Canonical names the parser assigns itself, outside the three tables.
const (
	FieldLastName    = "Last Name"
	FieldFirstName   = "First Name"
	FieldMiddleName1 = "Middle Name 1"
	FieldMiddleName2 = "Middle Name 2"
)

// Raw keys with dedicated decoding rules.
const (
	keyAddress    = "ADR"
	keyNote       = "NOTE"
	keyPhoto      = "PHOTO"
	keyBirthday   = "BDAY"
	keyCategories = "CATEGORIES"
)

// DefaultStandardFields covers the BusyContacts built-in fields.
var DefaultStandardFields = FieldTable{
	"NICKNAME":   "Nickname",
	"ORG":        "Organization",
	"TITLE":      "Profession",
	"BDAY":       "Birthday",
	"X-GENDER":   "Gender",
	"ADR":        "Address",
	"TEL":        "Phone",
	"EMAIL":      "Email",
	"URL":        "URL",
	"CATEGORIES": "Tags",
	"NOTE":       "Note",
	"PHOTO":      "Picture",
}

// DefaultCustomFields covers the user-defined BusyContacts fields. The raw
// keys are matched by substring search against X-CUSTOM lines.
var DefaultCustomFields = FieldTable{
	"Nationality": "Nationality",
	"Languages":   "Languages",
	"Hobbies":     "Hobbies",
	"Met":         "Met",
}

// DefaultSocialProfileFields maps the TYPE= parameter of X-SOCIALPROFILE
// lines to canonical names.
var DefaultSocialProfileFields = FieldTable{
	"twitter":   "Twitter",
	"facebook":  "Facebook",
	"linkedin":  "LinkedIn",
	"instagram": "Instagram",
	"github":    "GitHub",
}

// Registry holds the three field tables. It is immutable after
// construction and safe to share across concurrent parses; the per-record
// occurrence counters live in the parser's own state.
type Registry struct {
	standard FieldTable
	custom   FieldTable
	social   FieldTable

	// standardKeys and customKeys are kept sorted so classification is
	// deterministic regardless of map iteration order.
	standardKeys []string
	customKeys   []string
}

// NewRegistry creates a registry with the default BusyContacts field tables.
func NewRegistry() *Registry {
	return NewRegistryWithTables(DefaultStandardFields, DefaultCustomFields, DefaultSocialProfileFields)
}

// NewRegistryWithTables creates a registry from explicit tables.
func NewRegistryWithTables(standard, custom, social FieldTable) *Registry {
	r := &Registry{
		standard: standard,
		custom:   custom,
		social:   social,
	}
	for key := range standard {
		r.standardKeys = append(r.standardKeys, key)
	}
	for key := range custom {
		r.customKeys = append(r.customKeys, key)
	}
	sort.Strings(r.standardKeys)
	sort.Strings(r.customKeys)
	return r
}

// LoadRegistry reads the three field tables from JSON files, each a flat
// object of raw key to canonical name. Deployments use this to override the
// built-in tables without rebuilding.
func LoadRegistry(standardPath, customPath, socialPath string) (*Registry, error) {
	standard, err := loadTable(standardPath)
	if err != nil {
		return nil, err
	}
	custom, err := loadTable(customPath)
	if err != nil {
		return nil, err
	}
	social, err := loadTable(socialPath)
	if err != nil {
		return nil, err
	}
	return NewRegistryWithTables(standard, custom, social), nil
}

func loadTable(path string) (FieldTable, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field table %s: %w", path, err)
	}
	var table FieldTable
	if err := json.Unmarshal(contents, &table); err != nil {
		return nil, fmt.Errorf("failed to parse field table %s: %w", path, err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("field table %s is empty", path)
	}
	return table, nil
}

// Standard resolves a standard raw key to its canonical name.
func (r *Registry) Standard(rawKey string) (string, bool) {
	name, ok := r.standard[rawKey]
	return name, ok
}

// Custom resolves a custom raw key to its canonical name.
func (r *Registry) Custom(rawKey string) (string, bool) {
	name, ok := r.custom[rawKey]
	return name, ok
}

// Social resolves a social-profile raw key to its canonical name.
func (r *Registry) Social(rawKey string) (string, bool) {
	name, ok := r.social[rawKey]
	return name, ok
}

// IsSocial reports whether the raw key belongs to the social-profile table.
func (r *Registry) IsSocial(rawKey string) bool {
	_, ok := r.social[rawKey]
	return ok
}

// TagsFieldName returns the canonical name of the tags field.
func (r *Registry) TagsFieldName() string {
	name, ok := r.standard[keyCategories]
	if !ok {
		return "Tags"
	}
	return name
}

// PictureFieldName returns the canonical name of the photo field.
func (r *Registry) PictureFieldName() string {
	name, ok := r.standard[keyPhoto]
	if !ok {
		return "Picture"
	}
	return name
}
