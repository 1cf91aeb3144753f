package services

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/logger"
)

// sweepTimeout bounds one scheduled run of the overdue sweep
const sweepTimeout = 5 * time.Minute

// Sweeper is the job the scheduler drives
type Sweeper interface {
	ExpireOverdue(ctx context.Context) (*SweepResult, error)
}

// RunStatus describes the last scheduled sweep
type RunStatus struct {
	At      time.Time    `json:"at"`
	Success bool         `json:"success"`
	Result  *SweepResult `json:"result,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// CronService triggers the overdue sweep on a cron schedule
type CronService struct {
	cron    *cron.Cron
	sweeper Sweeper
	spec    string
	log     zerolog.Logger

	mu   sync.RWMutex
	last *RunStatus
}

// NewCronService creates a scheduler for spec (standard 5-field cron)
func NewCronService(sweeper Sweeper, spec string) *CronService {
	log := logger.Component("cron")
	cl := cronLogger{log: log}

	return &CronService{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		sweeper: sweeper,
		spec:    spec,
		log:     log,
	}
}

// Start registers the sweep and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunExpiration); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("schedule", s.spec).Msg("expiration sweep scheduled")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunExpiration is the scheduled job. A failure is logged and recorded; the
// next tick runs normally.
func (s *CronService) RunExpiration() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	status := &RunStatus{At: time.Now()}
	result, err := s.sweeper.ExpireOverdue(ctx)
	status.Result = result
	if err != nil {
		status.Error = err.Error()
		s.log.Error().Err(err).Msg("scheduled expiration run failed")
	} else {
		status.Success = true
	}

	s.mu.Lock()
	s.last = status
	s.mu.Unlock()
}

// LastRun returns the status of the most recent scheduled run, nil before the first
func (s *CronService) LastRun() *RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
