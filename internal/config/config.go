package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		BusyContacts
		FieldTables
		Output
		Sync
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	BusyContacts struct {
		BackupDir string
	}
	// FieldTables optionally overrides the built-in field tables with JSON
	// files. All three paths must be set together.
	FieldTables struct {
		StandardPath string
		CustomPath   string
		SocialPath   string
	}
	Output struct {
		Dir          string
		JSONFileName string
		WorkbookName string
	}
	Sync struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

// HasFieldTables reports whether all three field table overrides are set.
func (f FieldTables) HasFieldTables() bool {
	return f.StandardPath != "" && f.CustomPath != "" && f.SocialPath != ""
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8189)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("busycontacts_backup_dir", "")
	v.SetDefault("field_table_standard_path", "")
	v.SetDefault("field_table_custom_path", "")
	v.SetDefault("field_table_social_path", "")
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("output_json_file_name", DefaultJSONFileName)
	v.SetDefault("output_workbook_name", DefaultWorkbookName)
	v.SetDefault("vcf_sync_enabled", false)
	v.SetDefault("vcf_sync_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		BusyContacts: BusyContacts{
			BackupDir: v.GetString("BUSYCONTACTS_BACKUP_DIR"),
		},
		FieldTables: FieldTables{
			StandardPath: v.GetString("FIELD_TABLE_STANDARD_PATH"),
			CustomPath:   v.GetString("FIELD_TABLE_CUSTOM_PATH"),
			SocialPath:   v.GetString("FIELD_TABLE_SOCIAL_PATH"),
		},
		Output: Output{
			Dir:          v.GetString("OUTPUT_DIR"),
			JSONFileName: v.GetString("OUTPUT_JSON_FILE_NAME"),
			WorkbookName: v.GetString("OUTPUT_WORKBOOK_NAME"),
		},
		Sync: Sync{
			Enabled:  v.GetBool("VCF_SYNC_ENABLED"),
			Schedule: v.GetString("VCF_SYNC_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
