package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	ledgerapp "github.com/bitcorn/backend/internal/application/ledger"
	"go.uber.org/zap"
)

// cronTickerInterval is the interval at which the scheduler checks whether
// the daily run is due.
const cronTickerInterval = 1 * time.Minute

// BatchRunner executes one stake reward pass.
type BatchRunner interface {
	Run(ctx context.Context) (*ledgerapp.BatchReport, error)
}

// StakeRewardSchedulerConfig holds configuration for the daily stake
// reward scheduler.
type StakeRewardSchedulerConfig struct {
	// Enabled indicates if the scheduler is enabled
	Enabled bool
	// CronHour is the hour (0-23) to run the daily reward pass
	CronHour int
	// CronMinute is the minute (0-59) to run the daily reward pass
	CronMinute int
	// JobTimeout is the maximum time a single run may take
	JobTimeout time.Duration
}

// DefaultStakeRewardSchedulerConfig returns default scheduler configuration.
// Defaults to running at 2:00 AM daily.
func DefaultStakeRewardSchedulerConfig() StakeRewardSchedulerConfig {
	return StakeRewardSchedulerConfig{
		Enabled:    true,
		CronHour:   2,
		CronMinute: 0,
		JobTimeout: 10 * time.Minute,
	}
}

// ParseCronSchedule parses a cron expression "minute hour * * *" to extract
// hour and minute. Returns defaults (2:00) if the expression is empty or
// incomplete.
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	hour = 2
	minute = 0

	if cronExpr == "" {
		return hour, minute, nil
	}

	parts := strings.Fields(cronExpr)
	if len(parts) < 2 {
		return hour, minute, nil
	}

	if parts[0] != "*" {
		if val, parseErr := parseIntOrDefault(parts[0], 0); parseErr == nil {
			minute = val
		}
	}
	if parts[1] != "*" {
		if val, parseErr := parseIntOrDefault(parts[1], 2); parseErr == nil {
			hour = val
		}
	}

	if minute < 0 || minute > 59 {
		return 2, 0, fmt.Errorf("minute must be 0-59, got %d", minute)
	}
	if hour < 0 || hour > 23 {
		return 2, 0, fmt.Errorf("hour must be 0-23, got %d", hour)
	}

	return hour, minute, nil
}

// parseIntOrDefault parses an int string or returns default
func parseIntOrDefault(s string, defaultVal int) (int, error) {
	if s == "" || s == "*" {
		return defaultVal, nil
	}
	var val int
	for _, c := range s {
		if c < '0' || c > '9' {
			return defaultVal, ErrInvalidConfig
		}
		val = val*10 + int(c-'0')
	}
	return val, nil
}

// StakeRewardScheduler runs the stake reward batch once a day at the
// configured time.
type StakeRewardScheduler struct {
	config StakeRewardSchedulerConfig
	runner BatchRunner
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunAt *time.Time
	nextRunAt *time.Time
}

// NewStakeRewardScheduler creates a new StakeRewardScheduler
func NewStakeRewardScheduler(config StakeRewardSchedulerConfig, runner BatchRunner, logger *zap.Logger) *StakeRewardScheduler {
	return &StakeRewardScheduler{
		config: config,
		runner: runner,
		logger: logger,
	}
}

// Start starts the scheduler loop
func (s *StakeRewardScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.calculateNextRunTime()

	s.wg.Add(1)
	go s.cronLoop(ctx)

	s.logger.Info("Stake reward scheduler started",
		zap.Int("cron_hour", s.config.CronHour),
		zap.Int("cron_minute", s.config.CronMinute),
		zap.Timep("next_run_at", s.nextRunAt),
	)
	return nil
}

// Stop stops the scheduler and waits for an in-flight run to finish
func (s *StakeRewardScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Stake reward scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Stake reward scheduler stop timed out")
		return ctx.Err()
	}
}

// NextRunAt returns the next scheduled run time, if known
func (s *StakeRewardScheduler) NextRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunAt
}

// cronLoop runs the main scheduling loop
func (s *StakeRewardScheduler) cronLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(cronTickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.runOnce(ctx)
				s.calculateNextRunTime()
			}
		}
	}
}

// shouldRun reports whether the daily run is due at the given time
func (s *StakeRewardScheduler) shouldRun(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nextRunAt == nil {
		return false
	}
	return !now.Before(*s.nextRunAt)
}

// runOnce executes one stake reward pass with the configured timeout
func (s *StakeRewardScheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	started := time.Now()
	report, err := s.runner.Run(runCtx)

	s.mu.Lock()
	s.lastRunAt = &started
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Stake reward run failed", zap.Error(err))
		return
	}

	s.logger.Info("Stake reward run completed",
		zap.Bool("aborted", report.Aborted),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)
}

// calculateNextRunTime computes the next occurrence of the configured
// hour and minute.
func (s *StakeRewardScheduler) calculateNextRunTime() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.config.CronHour, s.config.CronMinute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	s.nextRunAt = &next
}
