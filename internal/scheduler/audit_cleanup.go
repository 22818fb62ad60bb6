package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// CleanupEnqueuer hands audit cleanup to the background task queue.
type CleanupEnqueuer interface {
	EnqueueAuditCleanup(ctx context.Context, retentionDays int) (string, error)
}

// AuditCleanupScheduler periodically removes audit events past their retention.
// With an enqueuer the work runs as a queued task; otherwise it runs inline.
type AuditCleanupScheduler struct {
	schedule      string
	retentionDays int
	cleaner       tasks.AuditEventCleaner
	enqueuer      CleanupEnqueuer

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isCleaning bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a new scheduler instance. enqueuer may be nil.
func NewAuditCleanupScheduler(schedule string, retentionDays int, cleaner tasks.AuditEventCleaner, enqueuer CleanupEnqueuer) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		schedule:      schedule,
		retentionDays: retentionDays,
		cleaner:       cleaner,
		enqueuer:      enqueuer,
		cron:          cron.New(cron.WithParser(cronParser)),
	}
}

// Start registers the cleanup job and starts the cron loop.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runCleanup()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s', retention %d days. Next run: %v",
		s.schedule, s.retentionDays, s.cron.Entry(entryID).Next)

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Audit cleanup scheduler: stopped")
}

// IsRunning returns whether the scheduler is active
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next cleanup will occur
func (s *AuditCleanupScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() {
		return nil
	}
	t := entry.Next
	return &t
}

// RunNow triggers an immediate cleanup in the background
func (s *AuditCleanupScheduler) RunNow() {
	go s.runCleanup()
}

// runCleanup performs a single cleanup pass
func (s *AuditCleanupScheduler) runCleanup() {
	s.mu.Lock()
	if s.isCleaning {
		s.mu.Unlock()
		log.Printf("Audit cleanup: skipped (already running)")
		return
	}
	s.isCleaning = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isCleaning = false
		s.mu.Unlock()
	}()

	if s.enqueuer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		taskID, err := s.enqueuer.EnqueueAuditCleanup(ctx, s.retentionDays)
		if err != nil {
			log.Printf("Audit cleanup: failed to enqueue task: %v", err)
			return
		}
		log.Printf("Audit cleanup: enqueued task %s", taskID)
		return
	}

	if _, err := tasks.CleanupAuditEvents(s.cleaner, s.retentionDays); err != nil {
		log.Printf("Audit cleanup: %v", err)
	}
}
