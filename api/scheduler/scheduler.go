package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/natan-gtecnologia/admin-panel-sub000/realtime"
)

// Scheduler handles periodic background jobs for the open moderation sessions
type Scheduler struct {
	cron    *cron.Cron
	Manager *realtime.Manager
}

// NewScheduler creates a new scheduler instance
func NewScheduler(manager *realtime.Manager) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		Manager: manager,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Refresh each open session's livestream description every minute so the
	// panel sees state changes made elsewhere, and close finished streams
	_, err := s.cron.AddFunc("* * * * *", s.refreshSessions)
	if err != nil {
		zap.S().Errorw("failed to register session refresh job", "error", err)
	}

	// Sweep sessions whose upstream connection permanently failed, hourly
	_, err = s.cron.AddFunc("0 * * * *", s.sweepFailed)
	if err != nil {
		zap.S().Errorw("failed to register failed-session sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Live session scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Live session scheduler stopped")
}

func (s *Scheduler) refreshSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s.Manager.RefreshSessions(ctx)
}

func (s *Scheduler) sweepFailed() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s.Manager.SweepFailed(ctx)
}
