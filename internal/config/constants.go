package config

// Default paths for the database and the exported documents
const (
	// DefaultDatabasePath is the default path for the contacts database
	DefaultDatabasePath = "./vcf-parser.db"

	// DefaultOutputDir is where the exported documents are written
	DefaultOutputDir = "./out"

	// DefaultJSONFileName is the name of the exported JSON document
	DefaultJSONFileName = "contacts_dict.json"

	// DefaultWorkbookName is the name of the exported spreadsheet
	DefaultWorkbookName = "contacts.xlsx"
)
