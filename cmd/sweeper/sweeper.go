package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// sweepTimeout bounds a single sweep run
const sweepTimeout = 10 * time.Minute

// OrphanSweeper releases media left behind by deleted lessons
type OrphanSweeper interface {
	// SweepOrphans returns the number of released lesson directories
	SweepOrphans(ctx context.Context) (int, error)
}

// Sweeper runs the orphaned media sweep on a cron schedule
type Sweeper struct {
	cron   *cron.Cron
	job    cron.Job
	media  OrphanSweeper
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewSweeper creates a sweeper for a standard 5-field cron schedule
func NewSweeper(media OrphanSweeper, schedule string, logger *zap.Logger) (*Sweeper, error) {
	s := &Sweeper{
		media:  media,
		logger: logger,
		cron:   cron.New(),
	}

	// The start-up run and the scheduled runs share one job, so they never overlap
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger))
	s.job = cron.NewChain(
		cron.Recover(cronLogger),
		cron.SkipIfStillRunning(cronLogger),
	).Then(cron.FuncJob(s.Sweep))

	if _, err := s.cron.AddJob(schedule, s.job); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start runs one sweep immediately and then follows the schedule
func (s *Sweeper) Start() {
	s.logger.Info("Sweeper started")
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.job.Run()
	}()
	s.cron.Start()
}

// Stop stops scheduling and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.logger.Info("Sweeper stopped")
}

// Sweep runs a single sweep
func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	started := time.Now()
	released, err := s.media.SweepOrphans(ctx)
	if err != nil {
		s.logger.Error("Failed to sweep orphaned media", zap.Int("released", released), zap.Error(err))
		return
	}
	s.logger.Info("Swept orphaned media",
		zap.Int("released", released),
		zap.Duration("duration", time.Since(started)),
	)
}
