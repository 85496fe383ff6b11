// Package busycontacts locates the VCF export inside BusyContacts backup
// bundles.
package busycontacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// BackupBundleSuffix marks a BusyContacts backup bundle directory.
	BackupBundleSuffix = ".babu"
	// ContactsFileName is the VCF export inside a backup bundle.
	ContactsFileName = "Contacts.vcf"
)

// BackupInfo describes one backup bundle.
type BackupInfo struct {
	Path    string
	ModTime time.Time
}

// Locator finds BusyContacts backup bundles under a lookup directory.
type Locator struct {
	LookupDir string
}

// NewLocator creates a Locator with the given lookup directory.
func NewLocator(lookupDir string) *Locator {
	return &Locator{LookupDir: lookupDir}
}

// NewDefaultLocator creates a Locator with the default Dropbox backup
// location.
func NewDefaultLocator() *Locator {
	homeDir, _ := os.UserHomeDir()
	defaultPath := filepath.Join(homeDir, "Library", "CloudStorage", "Dropbox", "Applications", "BusyContactsBackups")
	return &Locator{LookupDir: defaultPath}
}

// FindLatestBackup returns the most recent backup bundle. Bundle names
// embed their timestamp, so lexical order is chronological order.
func (l *Locator) FindLatestBackup() (*BackupInfo, error) {
	if _, err := os.Stat(l.LookupDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("lookup directory does not exist: %s", l.LookupDir)
	}

	entries, err := os.ReadDir(l.LookupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup directory: %w", err)
	}

	var bundles []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), BackupBundleSuffix) {
			bundles = append(bundles, entry.Name())
		}
	}

	if len(bundles) == 0 {
		return nil, fmt.Errorf("no %s bundles found in %s", BackupBundleSuffix, l.LookupDir)
	}

	sort.Strings(bundles)
	latest := filepath.Join(l.LookupDir, bundles[len(bundles)-1])

	info, err := os.Stat(latest)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup bundle: %w", err)
	}

	return &BackupInfo{Path: latest, ModTime: info.ModTime()}, nil
}

// FindLatestContactsVCF resolves the Contacts.vcf inside the most recent
// backup bundle. The bundle wraps the export in a single inner directory.
func (l *Locator) FindLatestContactsVCF() (string, error) {
	backup, err := l.FindLatestBackup()
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(backup.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read backup bundle: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(backup.Path, entry.Name(), ContactsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no %s found inside %s", ContactsFileName, backup.Path)
}
