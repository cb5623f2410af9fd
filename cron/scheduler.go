package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"smatching/config"
	"smatching/services/notice"
	"smatching/utils"
)

const scanTimeout = 5 * time.Minute

// Scheduler drives the daily notice sweeps. Both scans run on the same
// cron spec, expiry first so a notice cannot expire and warn in one run.
type Scheduler struct {
	cron  *cron.Cron
	scans notice.ScanService
}

// NewScheduler registers the notice scans at config.AppConfig.ScanSpec.
func NewScheduler(scans notice.ScanService) (*Scheduler, error) {
	s := &Scheduler{
		cron:  cron.New(),
		scans: scans,
	}

	spec := config.AppConfig.ScanSpec
	if _, err := s.cron.AddFunc(spec, s.runScans); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	utils.GetLogger().Sugar().Infow("notice scan scheduler started",
		"spec", config.AppConfig.ScanSpec)
}

// Stop halts the cron loop and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) runScans() {
	log := utils.GetLogger().Sugar()
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	now := time.Now().UTC()

	if _, err := s.scans.ScanExpiredNotices(ctx, now); err != nil {
		log.Errorw("expiry scan failed", "error", err)
	}
	if _, err := s.scans.ScanThreeDaysLeft(ctx, now); err != nil {
		log.Errorw("closing-soon scan failed", "error", err)
	}
}
