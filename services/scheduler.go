package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/models"
)

// Scheduler runs the nightly maintenance jobs in farm-local time.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
	loc  *time.Location
	log  *zap.Logger
}

// NewScheduler registers the jobs; call Start to begin running them.
func NewScheduler(db *gorm.DB, loc *time.Location, log *zap.Logger) *Scheduler {
	s := &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		db:   db,
		loc:  loc,
		log:  log,
	}

	// Shortly after midnight, flip past-dated activities to completed.
	if _, err := s.cron.AddFunc("5 0 * * *", s.completePastActivities); err != nil {
		log.Error("failed to register activity completion job", zap.Error(err))
	}

	return s
}

// Start launches the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

// completePastActivities marks upcoming/active activities whose end (or
// start, when no end is set) has passed as completed.
func (s *Scheduler) completePastActivities() {
	now := time.Now().In(s.loc)

	res := s.db.Model(&models.Activity{}).
		Where("status IN ?", []string{models.ActivityUpcoming, models.ActivityActive}).
		Where("COALESCE(end_date, date) < ?", now).
		Update("status", models.ActivityCompleted)

	if res.Error != nil {
		s.log.Error("activity completion job failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		s.log.Info("activities marked completed", zap.Int64("count", res.RowsAffected))
	}
}
