package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Antho1426/vcf-parser/internal/busycontacts"
	"github.com/Antho1426/vcf-parser/internal/config"
	"github.com/Antho1426/vcf-parser/internal/database"
	"github.com/Antho1426/vcf-parser/internal/exporters"
	"github.com/Antho1426/vcf-parser/internal/vcf"
)

// VCFImportCommand handles importing contacts from a BusyContacts VCF export
type VCFImportCommand struct {
	VCFPath      string
	BackupDir    string
	TagList      string
	LogicOp      string
	TablesDir    string
	DatabasePath string
	OutputDir    string
	ExportJSON   bool
	ExportExcel  bool
	Verbose      bool
	DryRun       bool

	tags []string
	op   vcf.LogicOp
}

func NewVCFImportCommand() *VCFImportCommand {
	return &VCFImportCommand{}
}

func (cmd *VCFImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("vcf-import", flag.ExitOnError)

	fs.StringVar(&cmd.VCFPath, "file", "", "Path to the VCF file (default: Contacts.vcf of the latest BusyContacts backup)")
	fs.StringVar(&cmd.BackupDir, "backup-dir", "", "Directory holding BusyContacts .babu backup bundles (used when -file is not given)")
	fs.StringVar(&cmd.TagList, "tags", "", "Comma-separated list of tags identifying contacts of interest (empty imports every contact)")
	fs.StringVar(&cmd.LogicOp, "op", "or", "How the tags combine: \"and\" requires all of them, \"or\" at least one (\"&\" and \"|\" also accepted)")
	fs.StringVar(&cmd.TablesDir, "tables", "", "Directory with field table overrides (standard_fields.json, custom_fields.json, social_profile_fields.json)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the local database file for storing imported contacts")
	fs.StringVar(&cmd.OutputDir, "output", config.DefaultOutputDir, "Output directory for the JSON document and the spreadsheet")
	fs.BoolVar(&cmd.ExportJSON, "json", false, "Also write the contacts as a pretty-printed JSON document")
	fs.BoolVar(&cmd.ExportExcel, "xlsx", false, "Also write the contacts as a spreadsheet with embedded pictures")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be imported without making changes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s vcf-import [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import contacts from a BusyContacts VCF export to a local database.\n\n")
		fmt.Fprintf(os.Stderr, "Without -file, the Contacts.vcf inside the most recent .babu backup\n")
		fmt.Fprintf(os.Stderr, "bundle is imported.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Import every contact from an explicit file:\n")
		fmt.Fprintf(os.Stderr, "  %s vcf-import -file Contacts.vcf\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Import contacts tagged 1m02, 2m02 or 3m02 and write a spreadsheet:\n")
		fmt.Fprintf(os.Stderr, "  %s vcf-import -file Contacts.vcf -tags 1m02,2m02,3m02 -op or -xlsx\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Preview what the latest backup would import:\n")
		fmt.Fprintf(os.Stderr, "  %s vcf-import -dry-run -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.TagList != "" {
		for _, tag := range strings.Split(cmd.TagList, ",") {
			if tag != "" {
				cmd.tags = append(cmd.tags, tag)
			}
		}
	}

	op, err := vcf.ParseLogicOp(cmd.LogicOp)
	if err != nil {
		return err
	}
	cmd.op = op

	return nil
}

func (cmd *VCFImportCommand) Run() error {
	fmt.Println("VCF Import")
	fmt.Println("==========")

	if cmd.DryRun {
		fmt.Println("DRY RUN MODE - No changes will be made")
		fmt.Println()
	}

	vcfPath, err := cmd.resolveVCFPath()
	if err != nil {
		return err
	}

	fmt.Printf("File: %s\n", vcfPath)
	if len(cmd.tags) > 0 {
		fmt.Printf("Tags: %s (%s)\n", strings.Join(cmd.tags, ", "), cmd.op)
	}

	registry, err := cmd.buildRegistry()
	if err != nil {
		return err
	}

	fmt.Println("\nReading contacts from VCF file...")

	file, err := os.Open(vcfPath)
	if err != nil {
		return fmt.Errorf("failed to open VCF file: %w", err)
	}
	defer file.Close()

	parser := vcf.NewParser(registry)
	store, err := parser.Parse(file, vcf.Filter{Tags: cmd.tags, Op: cmd.op})
	if err != nil {
		return fmt.Errorf("failed to parse VCF file: %w", err)
	}

	if store.Len() == 0 {
		fmt.Println("No matching contacts found in VCF file")
		return nil
	}

	contacts := exporters.ContactsFromStore(store)
	fmt.Printf("Found %d matching contacts\n", len(contacts))

	if cmd.Verbose {
		fmt.Println("\n=== Contacts Found ===")
		for i, contact := range contacts {
			name := strings.TrimSpace(contact.FirstName + " " + contact.LastName)
			if name == "" {
				name = "(no name)"
			}
			fmt.Printf("%d. %s (%d fields)\n", i+1, name, len(contact.Fields))
		}
	}

	if cmd.DryRun {
		fmt.Println("\nDry run complete. Use without -dry-run to import.")
		return nil
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("\nSaving to database: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	var writers []exporters.ContactExporter
	if cmd.ExportJSON {
		writers = append(writers, exporters.NewJSONExporter(filepath.Join(cmd.OutputDir, config.DefaultJSONFileName)))
	}
	if cmd.ExportExcel {
		writers = append(writers, exporters.NewExcelExporter(filepath.Join(cmd.OutputDir, config.DefaultWorkbookName), registry.PictureFieldName()))
	}

	session, err := db.CreateImportSession(vcfPath)
	if err != nil {
		return fmt.Errorf("failed to record import session: %w", err)
	}

	exporter := exporters.NewDatabaseExporter(db, writers...)
	result, exportErr := exporter.Export(contacts)

	if err := db.CompleteImportSession(session, result.ContactsProcessed, result.ContactsFailed, exportErr); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to finalize import session: %v\n", err)
	}
	if exportErr != nil {
		return fmt.Errorf("failed to export contacts: %w", exportErr)
	}

	fmt.Println("\n=== Import Summary ===")
	fmt.Printf("Contacts saved: %d/%d\n", result.ContactsProcessed, len(contacts))
	fmt.Printf("Fields saved: %d\n", result.FieldsProcessed)
	if result.ContactsFailed > 0 {
		fmt.Printf("Contacts failed: %d\n", result.ContactsFailed)
	}

	fmt.Println("\nImport complete!")
	return nil
}

func (cmd *VCFImportCommand) resolveVCFPath() (string, error) {
	if cmd.VCFPath != "" {
		if _, err := os.Stat(cmd.VCFPath); os.IsNotExist(err) {
			return "", fmt.Errorf("VCF file not found: %s", cmd.VCFPath)
		}
		return cmd.VCFPath, nil
	}

	var locator *busycontacts.Locator
	if cmd.BackupDir != "" {
		locator = busycontacts.NewLocator(cmd.BackupDir)
	} else {
		locator = busycontacts.NewDefaultLocator()
	}

	fmt.Println("Locating latest BusyContacts backup...")
	path, err := locator.FindLatestContactsVCF()
	if err != nil {
		return "", fmt.Errorf("failed to locate latest backup: %w", err)
	}
	return path, nil
}

func (cmd *VCFImportCommand) buildRegistry() (*vcf.Registry, error) {
	if cmd.TablesDir == "" {
		return vcf.NewRegistry(), nil
	}
	return vcf.LoadRegistry(
		filepath.Join(cmd.TablesDir, "standard_fields.json"),
		filepath.Join(cmd.TablesDir, "custom_fields.json"),
		filepath.Join(cmd.TablesDir, "social_profile_fields.json"),
	)
}
