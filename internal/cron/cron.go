package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Marga-Ghale/daily-schedule-backend/internal/repository"
)

const (
	// PurgeDisabled turns the purge job off.
	PurgeDisabled = "off"

	jobTimeout = 2 * time.Minute
)

type Options struct {
	PurgeSpec string
	Retention time.Duration
	// PoolStats is called hourly when set.
	PoolStats func()
}

// Scheduler handles scheduled maintenance tasks
type Scheduler struct {
	cron         *cron.Cron
	scheduleRepo repository.ScheduleRepository
	opts         Options
	now          func() time.Time
}

// NewScheduler creates a new scheduler
func NewScheduler(scheduleRepo repository.ScheduleRepository, opts Options) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		scheduleRepo: scheduleRepo,
		opts:         opts,
		now:          time.Now,
	}
}

// Start registers the jobs and starts the scheduler. It fails on an invalid
// cron spec without starting anything.
func (s *Scheduler) Start() error {
	if s.opts.PurgeSpec != "" && s.opts.PurgeSpec != PurgeDisabled {
		_, err := s.cron.AddFunc(s.opts.PurgeSpec, func() {
			log.Println("[Cron] Running soft-deleted schedule purge...")
			if _, err := s.purgeDeletedSchedules(); err != nil {
				log.Printf("[Cron] Error purging schedules: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid purge spec %q: %w", s.opts.PurgeSpec, err)
		}
	}

	if s.opts.PoolStats != nil {
		if _, err := s.cron.AddFunc("@hourly", s.opts.PoolStats); err != nil {
			return err
		}
	}

	s.cron.Start()
	log.Printf("[Cron] Scheduler started (%d jobs)", len(s.cron.Entries()))
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[Cron] Scheduler stopped")
}

// purgeDeletedSchedules hard-deletes schedules soft-deleted longer ago than
// the retention period.
func (s *Scheduler) purgeDeletedSchedules() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := s.now().Add(-s.opts.Retention)
	n, err := s.scheduleRepo.PurgeDeletedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("[Cron] Purged %d schedules deleted before %s", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}
