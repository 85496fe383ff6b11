package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Antho1426/vcf-parser/internal/busycontacts"
	"github.com/Antho1426/vcf-parser/internal/exporters"
	"github.com/Antho1426/vcf-parser/internal/vcf"
)

// VCFSyncScheduler periodically re-imports the latest BusyContacts backup so
// the database tracks the contact list without manual imports.
type VCFSyncScheduler struct {
	locator  *busycontacts.Locator
	registry *vcf.Registry
	exporter exporters.ContactExporter

	enabled  bool
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	lastStatus string
	lastError  string
	lastRun    *time.Time
}

func NewVCFSyncScheduler(locator *busycontacts.Locator, registry *vcf.Registry, exporter exporters.ContactExporter, enabled bool, schedule string) *VCFSyncScheduler {
	return &VCFSyncScheduler{
		locator:  locator,
		registry: registry,
		exporter: exporter,
		enabled:  enabled,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if sync is enabled
func (s *VCFSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		log.Printf("VCF sync scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("VCF sync scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *VCFSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("VCF sync scheduler: stopped")
}

// RunNow triggers an immediate sync
func (s *VCFSyncScheduler) RunNow() error {
	go s.runSync()
	return nil
}

// IsRunning returns whether the scheduler is active
func (s *VCFSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next sync will occur
func (s *VCFSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entries := s.cron.Entries()
	for _, entry := range entries {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// LastStatus returns the outcome of the most recent sync run.
func (s *VCFSyncScheduler) LastStatus() (status, errMsg string, lastRun *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastStatus, s.lastError, s.lastRun
}

// runSync performs the actual sync operation
func (s *VCFSyncScheduler) runSync() {
	log.Printf("VCF sync: locating latest backup")
	startTime := time.Now()

	vcfPath, err := s.locator.FindLatestContactsVCF()
	if err != nil {
		s.recordFailure(fmt.Sprintf("Failed to locate latest backup: %v", err))
		return
	}

	file, err := os.Open(vcfPath)
	if err != nil {
		s.recordFailure(fmt.Sprintf("Failed to open %s: %v", vcfPath, err))
		return
	}
	defer file.Close()

	// A scheduled sync imports every contact; tag filters are a per-import
	// concern of the CLI and the upload endpoint.
	parser := vcf.NewParser(s.registry)
	store, err := parser.Parse(file, vcf.Filter{})
	if err != nil {
		s.recordFailure(fmt.Sprintf("Failed to parse %s: %v", vcfPath, err))
		return
	}

	if store.Len() == 0 {
		s.recordSuccess("No contacts found in the latest backup")
		return
	}

	contacts := exporters.ContactsFromStore(store)
	result, err := s.exporter.Export(contacts)
	if err != nil {
		s.recordFailure(fmt.Sprintf("Export failed: %v", err))
		return
	}

	duration := time.Since(startTime)
	s.recordSuccess(fmt.Sprintf("Imported %d contacts (%d fields) from %s in %v",
		result.ContactsProcessed, result.FieldsProcessed, vcfPath, duration.Round(time.Millisecond)))
}

func (s *VCFSyncScheduler) recordSuccess(msg string) {
	log.Printf("VCF sync: %s", msg)
	now := time.Now()
	s.mu.Lock()
	s.lastStatus = "success"
	s.lastError = ""
	s.lastRun = &now
	s.mu.Unlock()
}

func (s *VCFSyncScheduler) recordFailure(msg string) {
	log.Printf("VCF sync: %s", msg)
	now := time.Now()
	s.mu.Lock()
	s.lastStatus = "failed"
	s.lastError = msg
	s.lastRun = &now
	s.mu.Unlock()
}
